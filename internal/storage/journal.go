package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"strings"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// CreateJournalEntry вставляет новую запись журнала и возвращает её ID.
func (s *Storage) CreateJournalEntry(ctx context.Context, e models.JournalEntry) (int, error) {
	const op = "storage.CreateJournalEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO journal_entries (user_uid, title, content, tags)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, e.UserUID, e.Title, e.Content, joinTags(e.Tags)).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadJournalEntry возвращает запись журнала по ID в пределах владельца.
func (s *Storage) ReadJournalEntry(ctx context.Context, id int, userUID string) (*models.JournalEntry, error) {
	const op = "storage.ReadJournalEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, content, tags, created_at
			  FROM journal_entries WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	e := &models.JournalEntry{}
	var tags string
	if err := row.Scan(&e.ID, &e.UserUID, &e.Title, &e.Content, &tags, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e.Tags = splitTags(tags)
	return e, nil
}

// ListJournalEntries возвращает записи журнала пользователя по фильтру.
func (s *Storage) ListJournalEntries(ctx context.Context, f models.JournalFilter) ([]*models.JournalEntry, error) {
	const op = "storage.ListJournalEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, content, tags, created_at
			  FROM journal_entries
			  WHERE user_uid = $1
			    AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR content ILIKE '%' || $2 || '%')
			  ORDER BY created_at DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, f.UserUID, f.Search, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.JournalEntry
	for rows.Next() {
		e := &models.JournalEntry{}
		var tags string
		if err := rows.Scan(&e.ID, &e.UserUID, &e.Title, &e.Content, &tags, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		e.Tags = splitTags(tags)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveJournalEntry удаляет запись журнала и возвращает количество удалённых строк.
func (s *Storage) RemoveJournalEntry(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveJournalEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM journal_entries WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// Метки хранятся одной строкой через запятую.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
