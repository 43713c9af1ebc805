// Package assistant обрабатывает задания на генерацию ответа помощника,
// прочитанные из очереди. Ответ строится по шаблону на основе текста
// сообщения пользователя и сохраняется в тот же диалог.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// Repository определяет методы хранилища, нужные обработчику.
type Repository interface {
	ReadMessage(ctx context.Context, id int) (*models.Message, error)
	CreateMessage(ctx context.Context, m models.Message) (int, error)
}

// Worker потребляет задания и пишет ответы помощника.
type Worker struct {
	repo Repository
	log  *slog.Logger
}

// NewWorker создает новый экземпляр Worker.
func NewWorker(repo Repository, log *slog.Logger) *Worker {
	return &Worker{
		repo: repo,
		log:  log,
	}
}

// Handle обрабатывает одно задание из очереди. Ошибка ведёт к возврату
// задания в очередь, поэтому обработка должна быть идемпотентной по
// смыслу: повторный ответ на то же сообщение допустим.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	const op = "assistant.Handle"

	var job models.AssistantJob
	if err := json.Unmarshal(body, &job); err != nil {
		// Нечитаемое задание не станет читаемым при повторе.
		w.log.Error("dropping malformed assistant job", slog.Any("err", err))
		return nil
	}

	msg, err := w.repo.ReadMessage(ctx, job.MessageID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	reply := composeReply(msg.Content)
	if _, err := w.repo.CreateMessage(ctx, models.Message{
		ConversationID: job.ConversationID,
		Sender:         models.SenderAssistant,
		Content:        reply,
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w.log.Info("assistant reply stored",
		slog.Int("conversation_id", job.ConversationID),
		slog.Int("message_id", job.MessageID))
	return nil
}

// composeReply строит ответ помощника. Подменяется на вызов внешней
// модели, когда она подключена.
func composeReply(question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return "Could you describe your situation in more detail?"
	}
	return fmt.Sprintf(
		"Thank you for your question. Based on what you described — %q — "+
			"I recommend collecting any related documents and consulting "+
			"a licensed attorney for advice specific to your jurisdiction.",
		question)
}
