package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

type repoMock struct {
	readMessage   func(ctx context.Context, id int) (*models.Message, error)
	createMessage func(ctx context.Context, m models.Message) (int, error)
}

func (m *repoMock) ReadMessage(ctx context.Context, id int) (*models.Message, error) {
	return m.readMessage(ctx, id)
}

func (m *repoMock) CreateMessage(ctx context.Context, msg models.Message) (int, error) {
	return m.createMessage(ctx, msg)
}

func jobBody(t *testing.T, job models.AssistantJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestHandle_StoresAssistantReply(t *testing.T) {
	var stored models.Message
	repo := &repoMock{
		readMessage: func(_ context.Context, id int) (*models.Message, error) {
			return &models.Message{
				ID:             id,
				ConversationID: 5,
				Sender:         models.SenderUser,
				Content:        "Can my landlord keep the deposit?",
			}, nil
		},
		createMessage: func(_ context.Context, m models.Message) (int, error) {
			stored = m
			return 99, nil
		},
	}
	worker := NewWorker(repo, slog.New(discardHandler{}))

	err := worker.Handle(context.Background(), jobBody(t, models.AssistantJob{
		ConversationID: 5,
		MessageID:      42,
		UserUID:        "uid-1",
	}))
	require.NoError(t, err)

	assert.Equal(t, 5, stored.ConversationID)
	assert.Equal(t, models.SenderAssistant, stored.Sender)
	assert.Contains(t, stored.Content, "Can my landlord keep the deposit?")
}

func TestHandle_MalformedJobIsDropped(t *testing.T) {
	repo := &repoMock{
		readMessage: func(context.Context, int) (*models.Message, error) {
			t.Fatal("storage should not be touched")
			return nil, nil
		},
	}
	worker := NewWorker(repo, slog.New(discardHandler{}))

	// nil вместо ошибки, чтобы брокер не возвращал задание бесконечно.
	assert.NoError(t, worker.Handle(context.Background(), []byte("{not json")))
}

func TestHandle_MissingMessageRequeues(t *testing.T) {
	repo := &repoMock{
		readMessage: func(context.Context, int) (*models.Message, error) {
			return nil, storage.ErrNotFound
		},
	}
	worker := NewWorker(repo, slog.New(discardHandler{}))

	err := worker.Handle(context.Background(), jobBody(t, models.AssistantJob{MessageID: 1}))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHandle_CreateFailureRequeues(t *testing.T) {
	repo := &repoMock{
		readMessage: func(_ context.Context, id int) (*models.Message, error) {
			return &models.Message{ID: id, Content: "question"}, nil
		},
		createMessage: func(context.Context, models.Message) (int, error) {
			return 0, errors.New("db down")
		},
	}
	worker := NewWorker(repo, slog.New(discardHandler{}))

	err := worker.Handle(context.Background(), jobBody(t, models.AssistantJob{MessageID: 1}))
	assert.Error(t, err)
}

func TestComposeReply_EmptyQuestion(t *testing.T) {
	assert.Equal(t,
		"Could you describe your situation in more detail?",
		composeReply("   "))
}
