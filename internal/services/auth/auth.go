// Package auth содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/legal-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/password"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль
// и при попытке входа в отключённую учётную запись. Формулировка
// одна на оба случая, чтобы не раскрывать существование аккаунта.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// TouchLastLogin отмечает время последнего входа.
	TouchLastLogin(ctx context.Context, userUID string) error
}

// Service отвечает за регистрацию и вход пользователей.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля,
// ролью user и планом free.
func (s *Service) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		UID:          uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
		Plan:         models.PlanFree,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (token string, user *models.User, err error) {
	user, err = s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.Active {
		return "", nil, ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.UID, user.Role, string(user.Plan))
	if err != nil {
		return "", nil, err
	}
	_ = s.users.TouchLastLogin(ctx, user.UID)
	return token, user, nil
}
