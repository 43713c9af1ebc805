// Package chat содержит бизнес-логику диалогов с помощником.
//
// Сообщение пользователя сначала надёжно сохраняется, и лишь затем
// публикуется задание на генерацию ответа. Сбой публикации не
// откатывает сохранённое сообщение: клиент получает признак того,
// что ответ не поставлен в очередь, и может повторить запрос.
package chat

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// Repository определяет методы для работы с диалогами в хранилище.
type Repository interface {
	CreateConversation(ctx context.Context, c models.Conversation) (int, error)
	ReadConversation(ctx context.Context, id int, userUID string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userUID string, limit, offset int) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, m models.Message) (int, error)
	ListMessages(ctx context.Context, conversationID int, limit, offset int) ([]*models.Message, error)
}

// JobPublisher публикует задания на генерацию ответа помощника.
type JobPublisher interface {
	PublishAssistantJob(job models.AssistantJob) error
}

// Service реализует бизнес-логику чата.
type Service struct {
	repo      Repository
	publisher JobPublisher
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, publisher JobPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// StartConversation создает новый диалог пользователя.
func (s *Service) StartConversation(ctx context.Context, userUID, title string) (int, error) {
	if title == "" {
		title = "New conversation"
	}
	return s.repo.CreateConversation(ctx, models.Conversation{
		UserUID: userUID,
		Title:   title,
	})
}

// ListConversations возвращает диалоги пользователя.
func (s *Service) ListConversations(ctx context.Context, userUID string, limit, offset int) ([]*models.Conversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListConversations(ctx, userUID, limit, offset)
}

// Messages возвращает сообщения диалога, предварительно проверив владение.
func (s *Service) Messages(ctx context.Context, conversationID int, userUID string, limit, offset int) ([]*models.Message, error) {
	if _, err := s.repo.ReadConversation(ctx, conversationID, userUID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListMessages(ctx, conversationID, limit, offset)
}

// Send сохраняет сообщение пользователя и ставит задание на ответ.
// Возвращает ID сообщения и признак того, что задание дошло до очереди.
func (s *Service) Send(ctx context.Context, conversationID int, userUID, content string) (int, bool, error) {
	if _, err := s.repo.ReadConversation(ctx, conversationID, userUID); err != nil {
		return 0, false, err
	}

	msgID, err := s.repo.CreateMessage(ctx, models.Message{
		ConversationID: conversationID,
		Sender:         models.SenderUser,
		Content:        content,
	})
	if err != nil {
		return 0, false, err
	}

	job := models.AssistantJob{
		ConversationID: conversationID,
		MessageID:      msgID,
		UserUID:        userUID,
	}
	if err := s.publisher.PublishAssistantJob(job); err != nil {
		// Сообщение уже записано и не откатывается.
		s.log.Error("failed to enqueue assistant job",
			slog.Int("message_id", msgID), slog.Any("err", err))
		return msgID, false, nil
	}
	return msgID, true, nil
}
