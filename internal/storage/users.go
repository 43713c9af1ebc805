package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (uid, email, username, password_hash, role, plan, active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.Email, user.Username, user.PasswordHash, user.Role,
		string(user.Plan), user.Active).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, plan, active,
			      created_at, last_login_at
			  FROM users
			  WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// FindByUID возвращает пользователя по его UID или ErrNotFound.
func (s *Storage) FindByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.FindByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, plan, active,
			      created_at, last_login_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// TouchLastLogin отмечает время последнего входа пользователя.
func (s *Storage) TouchLastLogin(ctx context.Context, userUID string) error {
	const op = "storage.TouchLastLogin"
	query := `UPDATE users SET last_login_at = now() WHERE uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListUsers возвращает список пользователей с пагинацией.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, plan, active,
			      created_at, last_login_at
			  FROM users
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.User
	for rows.Next() {
		u := &models.User{}
		var plan string
		var lastLogin sql.NullTime
		if err := rows.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash,
			&u.Role, &plan, &u.Active, &u.CreatedAt, &lastLogin); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		u.Plan = models.ParsePlan(plan)
		if lastLogin.Valid {
			u.LastLoginAt = &lastLogin.Time
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var plan string
	var lastLogin sql.NullTime
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Role, &plan, &u.Active, &u.CreatedAt, &lastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Plan = models.ParsePlan(plan)
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}
