package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtlib "github.com/magabrotheeeer/legal-assistant/internal/lib/jwt"
	"github.com/magabrotheeeer/legal-assistant/internal/lib/password"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

// userRepoMock реализует UserRepository через подменяемые функции.
type userRepoMock struct {
	registerUser      func(ctx context.Context, user models.User) (string, error)
	getUserByUsername func(ctx context.Context, username string) (*models.User, error)
	touchLastLogin    func(ctx context.Context, userUID string) error
}

func (m *userRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	return m.registerUser(ctx, user)
}

func (m *userRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.getUserByUsername(ctx, username)
}

func (m *userRepoMock) TouchLastLogin(ctx context.Context, userUID string) error {
	if m.touchLastLogin == nil {
		return nil
	}
	return m.touchLastLogin(ctx, userUID)
}

func TestRegister(t *testing.T) {
	var captured models.User
	repo := &userRepoMock{registerUser: func(_ context.Context, user models.User) (string, error) {
		captured = user
		return user.UID, nil
	}}
	svc := New(repo, jwtlib.NewJWTMaker("test-secret", time.Hour))

	uid, err := svc.Register(context.Background(), "test@example.com", "testuser", "password123")
	require.NoError(t, err)

	assert.NotEmpty(t, uid)
	assert.Equal(t, "test@example.com", captured.Email)
	assert.Equal(t, "testuser", captured.Username)
	assert.Equal(t, models.RoleUser, captured.Role)
	assert.Equal(t, models.PlanFree, captured.Plan)
	assert.True(t, captured.Active)

	// Пароль хранится только в виде bcrypt-хэша.
	assert.NotEqual(t, "password123", captured.PasswordHash)
	assert.NoError(t, password.CompareHash(captured.PasswordHash, "password123"))
}

func TestRegister_RepoError(t *testing.T) {
	repo := &userRepoMock{registerUser: func(context.Context, models.User) (string, error) {
		return "", errors.New("db error")
	}}
	svc := New(repo, jwtlib.NewJWTMaker("test-secret", time.Hour))

	_, err := svc.Register(context.Background(), "test@example.com", "testuser", "password123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestLogin(t *testing.T) {
	hashed, err := password.GetHash("correct-password")
	require.NoError(t, err)

	storedUser := &models.User{
		UID:          "uid-1",
		Username:     "testuser",
		PasswordHash: hashed,
		Role:         models.RoleUser,
		Plan:         models.PlanPremium,
		Active:       true,
	}

	tests := []struct {
		name     string
		username string
		password string
		setup    func() *models.User
		repoErr  error
		wantErr  error
	}{
		{
			name:     "успешный вход",
			username: "testuser",
			password: "correct-password",
			setup:    func() *models.User { return storedUser },
		},
		{
			name:     "неверный пароль",
			username: "testuser",
			password: "wrong-password",
			setup:    func() *models.User { return storedUser },
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "неактивная учётная запись",
			username: "testuser",
			password: "correct-password",
			setup: func() *models.User {
				inactive := *storedUser
				inactive.Active = false
				return &inactive
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "пользователь не найден",
			username: "ghost",
			password: "correct-password",
			setup:    func() *models.User { return nil },
			repoErr:  storage.ErrNotFound,
			wantErr:  storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var touched bool
			repo := &userRepoMock{
				getUserByUsername: func(_ context.Context, username string) (*models.User, error) {
					assert.Equal(t, tt.username, username)
					return tt.setup(), tt.repoErr
				},
				touchLastLogin: func(context.Context, string) error {
					touched = true
					return nil
				},
			}
			maker := jwtlib.NewJWTMaker("test-secret", time.Hour)
			svc := New(repo, maker)

			token, user, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.True(t, touched)

			// Токен несёт uid, роль и план на момент входа.
			claims, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, "uid-1", claims.UserUID)
			assert.Equal(t, models.RoleUser, claims.Role)
			assert.Equal(t, "premium", claims.Plan)
		})
	}
}
