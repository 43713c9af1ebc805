package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// CreateDocument сохраняет метаданные загруженного файла и возвращает ID.
func (s *Storage) CreateDocument(ctx context.Context, d models.Document) (int, error) {
	const op = "storage.CreateDocument"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO documents (user_uid, case_id, file_name, content_type, size_bytes, storage_key)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var caseID sql.NullInt64
	if d.CaseID != nil {
		caseID = sql.NullInt64{Int64: int64(*d.CaseID), Valid: true}
	}
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		d.UserUID, caseID, d.FileName, d.ContentType, d.SizeBytes, d.StorageKey).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadDocument возвращает метаданные документа по ID в пределах владельца.
func (s *Storage) ReadDocument(ctx context.Context, id int, userUID string) (*models.Document, error) {
	const op = "storage.ReadDocument"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, case_id, file_name, content_type, size_bytes, storage_key, uploaded_at
			  FROM documents WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	d := &models.Document{}
	var caseID sql.NullInt64
	if err := row.Scan(&d.ID, &d.UserUID, &caseID, &d.FileName, &d.ContentType,
		&d.SizeBytes, &d.StorageKey, &d.UploadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if caseID.Valid {
		v := int(caseID.Int64)
		d.CaseID = &v
	}
	return d, nil
}

// ListDocuments возвращает документы пользователя, опционально по делу.
func (s *Storage) ListDocuments(ctx context.Context, userUID string, caseID *int, limit, offset int) ([]*models.Document, error) {
	const op = "storage.ListDocuments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var filterCase sql.NullInt64
	if caseID != nil {
		filterCase = sql.NullInt64{Int64: int64(*caseID), Valid: true}
	}
	query := `SELECT id, user_uid, case_id, file_name, content_type, size_bytes, storage_key, uploaded_at
			  FROM documents
			  WHERE user_uid = $1 AND ($2::bigint IS NULL OR case_id = $2)
			  ORDER BY uploaded_at DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, userUID, filterCase, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Document
	for rows.Next() {
		d := &models.Document{}
		var cid sql.NullInt64
		if err := rows.Scan(&d.ID, &d.UserUID, &cid, &d.FileName, &d.ContentType,
			&d.SizeBytes, &d.StorageKey, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if cid.Valid {
			v := int(cid.Int64)
			d.CaseID = &v
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveDocument удаляет метаданные документа и возвращает количество удалённых строк.
func (s *Storage) RemoveDocument(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveDocument"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM documents WHERE id = $1 AND user_uid = $2`
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
