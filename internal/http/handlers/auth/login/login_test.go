package login

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
	authservice "github.com/magabrotheeeer/legal-assistant/internal/services/auth"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

// loginerMock реализует Loginer через подменяемую функцию.
type loginerMock struct {
	login func(ctx context.Context, username, rawPassword string) (string, *models.User, error)
}

func (m *loginerMock) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	return m.login(ctx, username, rawPassword)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	okUser := &models.User{
		UID:      "uid-1",
		Username: "testuser",
		Email:    "test@example.com",
		Role:     models.RoleUser,
		Plan:     models.PlanPremium,
		Active:   true,
	}

	tests := []struct {
		name           string
		body           string
		mock           *loginerMock
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			body: `{"username":"testuser","password":"secret"}`,
			mock: &loginerMock{login: func(_ context.Context, username, rawPassword string) (string, *models.User, error) {
				assert.Equal(t, "testuser", username)
				assert.Equal(t, "secret", rawPassword)
				return "jwt-token", okUser, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"jwt-token"`,
		},
		{
			name: "неверные учётные данные",
			body: `{"username":"testuser","password":"wrong"}`,
			mock: &loginerMock{login: func(context.Context, string, string) (string, *models.User, error) {
				return "", nil, authservice.ErrInvalidCredentials
			}},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"code":"INVALID_TOKEN"`,
		},
		{
			name: "неизвестное имя пользователя даёт ту же ошибку",
			body: `{"username":"ghost","password":"secret"}`,
			mock: &loginerMock{login: func(context.Context, string, string) (string, *models.User, error) {
				return "", nil, storage.ErrNotFound
			}},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"message":"invalid credentials"`,
		},
		{
			name: "сбой сервиса",
			body: `{"username":"testuser","password":"secret"}`,
			mock: &loginerMock{login: func(context.Context, string, string) (string, *models.User, error) {
				return "", nil, errors.New("db error")
			}},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"code":"INTERNAL_ERROR"`,
		},
		{
			name:           "пустое тело",
			body:           `{}`,
			mock:           &loginerMock{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"VALIDATION_ERROR"`,
		},
		{
			name:           "некорректный JSON",
			body:           `not json`,
			mock:           &loginerMock{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"code":"VALIDATION_ERROR"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(logger, tt.mock)

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
		})
	}
}
