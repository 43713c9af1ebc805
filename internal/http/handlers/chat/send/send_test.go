package send

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/legal-assistant/internal/http/middlewarectx"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

// senderMock реализует Sender через подменяемую функцию.
type senderMock struct {
	send func(ctx context.Context, conversationID int, userUID, content string) (int, bool, error)
}

func (m *senderMock) Send(ctx context.Context, conversationID int, userUID, content string) (int, bool, error) {
	return m.send(ctx, conversationID, userUID, content)
}

func request(t *testing.T, id, body string, authenticated bool) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/conversations/"+id+"/messages", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	if authenticated {
		p := &models.Principal{UID: "uid-1", Role: models.RoleUser, Plan: models.PlanFree, Active: true}
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.PrincipalKey, p))
	}
	return req
}

func TestSendHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		body           string
		authenticated  bool
		mock           *senderMock
		expectedStatus int
		expectedBody   string
	}{
		{
			name:          "сообщение принято и задание в очереди",
			id:            "5",
			body:          `{"content":"What are my options?"}`,
			authenticated: true,
			mock: &senderMock{send: func(_ context.Context, conversationID int, uid, content string) (int, bool, error) {
				assert.Equal(t, 5, conversationID)
				assert.Equal(t, "uid-1", uid)
				assert.Equal(t, "What are my options?", content)
				return 77, true, nil
			}},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"assistant_queued":true`,
		},
		{
			name:          "сбой очереди не теряет сообщение",
			id:            "5",
			body:          `{"content":"What are my options?"}`,
			authenticated: true,
			mock: &senderMock{send: func(context.Context, int, string, string) (int, bool, error) {
				return 78, false, nil
			}},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"assistant_queued":false`,
		},
		{
			name:          "чужой диалог",
			id:            "5",
			body:          `{"content":"hello"}`,
			authenticated: true,
			mock: &senderMock{send: func(context.Context, int, string, string) (int, bool, error) {
				return 0, false, storage.ErrNotFound
			}},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"code":"NOT_FOUND"`,
		},
		{
			name:           "пустое сообщение",
			id:             "5",
			body:           `{"content":""}`,
			authenticated:  true,
			mock:           &senderMock{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"VALIDATION_ERROR"`,
		},
		{
			name:           "некорректный id диалога",
			id:             "abc",
			body:           `{"content":"hello"}`,
			authenticated:  true,
			mock:           &senderMock{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"VALIDATION_ERROR"`,
		},
		{
			name:           "без аутентификации",
			id:             "5",
			body:           `{"content":"hello"}`,
			authenticated:  false,
			mock:           &senderMock{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"code":"TOKEN_REQUIRED"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(logger, tt.mock)

			req := request(t, tt.id, tt.body, tt.authenticated)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
		})
	}
}
