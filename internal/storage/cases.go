package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// CreateCase вставляет новое дело и возвращает его ID.
func (s *Storage) CreateCase(ctx context.Context, c models.Case) (int, error) {
	const op = "storage.CreateCase"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cases (user_uid, title, description, case_type, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		c.UserUID, c.Title, c.Description, c.CaseType, c.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadCase возвращает дело по ID в пределах одного владельца.
func (s *Storage) ReadCase(ctx context.Context, id int, userUID string) (*models.Case, error) {
	const op = "storage.ReadCase"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, description, case_type, status, created_at, updated_at
			  FROM cases WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Case
	if err := row.Scan(&result.ID, &result.UserUID, &result.Title, &result.Description,
		&result.CaseType, &result.Status, &result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListCases возвращает список дел пользователя по фильтру с пагинацией.
// Поиск выполняется по подстроке в названии и описании.
func (s *Storage) ListCases(ctx context.Context, f models.CaseFilter) ([]*models.Case, error) {
	const op = "storage.ListCases"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, description, case_type, status, created_at, updated_at
			  FROM cases
			  WHERE user_uid = $1
			    AND ($2 = '' OR status = $2)
			    AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR description ILIKE '%' || $3 || '%')
			  ORDER BY updated_at DESC
			  LIMIT $4 OFFSET $5`
	rows, err := s.DB.QueryContext(ctx, query, f.UserUID, f.Status, f.Search, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Case
	for rows.Next() {
		c := &models.Case{}
		if err := rows.Scan(&c.ID, &c.UserUID, &c.Title, &c.Description,
			&c.CaseType, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCase обновляет данные дела и возвращает количество изменённых строк.
func (s *Storage) UpdateCase(ctx context.Context, c models.Case, id int, userUID string) (int, error) {
	const op = "storage.UpdateCase"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cases
			  SET title = $1, description = $2, case_type = $3, status = $4, updated_at = now()
			  WHERE id = $5 AND user_uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		c.Title, c.Description, c.CaseType, c.Status, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCase удаляет дело по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveCase(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveCase"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cases WHERE id = $1 AND user_uid = $2`
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
