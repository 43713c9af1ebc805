package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// CreateConversation вставляет новый диалог и возвращает его ID.
func (s *Storage) CreateConversation(ctx context.Context, c models.Conversation) (int, error) {
	const op = "storage.CreateConversation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO conversations (user_uid, title)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, c.UserUID, c.Title).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadConversation возвращает диалог по ID в пределах владельца.
func (s *Storage) ReadConversation(ctx context.Context, id int, userUID string) (*models.Conversation, error) {
	const op = "storage.ReadConversation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, created_at
			  FROM conversations WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	c := &models.Conversation{}
	if err := row.Scan(&c.ID, &c.UserUID, &c.Title, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// ListConversations возвращает диалоги пользователя с пагинацией.
func (s *Storage) ListConversations(ctx context.Context, userUID string, limit, offset int) ([]*models.Conversation, error) {
	const op = "storage.ListConversations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, created_at
			  FROM conversations
			  WHERE user_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Conversation
	for rows.Next() {
		c := &models.Conversation{}
		if err := rows.Scan(&c.ID, &c.UserUID, &c.Title, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateMessage вставляет сообщение диалога и возвращает его ID.
func (s *Storage) CreateMessage(ctx context.Context, m models.Message) (int, error) {
	const op = "storage.CreateMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO messages (conversation_id, sender, content)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, m.ConversationID, m.Sender, m.Content).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadMessage возвращает сообщение по ID.
func (s *Storage) ReadMessage(ctx context.Context, id int) (*models.Message, error) {
	const op = "storage.ReadMessage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, conversation_id, sender, content, created_at
			  FROM messages WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	m := &models.Message{}
	if err := row.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// ListMessages возвращает сообщения диалога в порядке отправки.
func (s *Storage) ListMessages(ctx context.Context, conversationID int, limit, offset int) ([]*models.Message, error) {
	const op = "storage.ListMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, conversation_id, sender, content, created_at
			  FROM messages
			  WHERE conversation_id = $1
			  ORDER BY created_at
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Message
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
