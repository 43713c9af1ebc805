// Package cases содержит бизнес-логику работы с юридическими делами,
// включая кеширование чтения по ID.
package cases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// Repository определяет методы для работы с делами в хранилище.
type Repository interface {
	CreateCase(ctx context.Context, c models.Case) (int, error)
	ReadCase(ctx context.Context, id int, userUID string) (*models.Case, error)
	ListCases(ctx context.Context, f models.CaseFilter) ([]*models.Case, error)
	UpdateCase(ctx context.Context, c models.Case, id int, userUID string) (int, error)
	RemoveCase(ctx context.Context, id int, userUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует бизнес-логику работы с делами.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(id int, userUID string) string {
	return fmt.Sprintf("case:%s:%d", userUID, id)
}

// Create создает новое дело пользователя и возвращает его ID.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyCase) (int, error) {
	status := req.Status
	if status == "" {
		status = "open"
	}
	c := models.Case{
		UserUID:     userUID,
		Title:       req.Title,
		Description: req.Description,
		CaseType:    req.CaseType,
		Status:      status,
	}
	id, err := s.repo.CreateCase(ctx, c)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new case", slog.Int("id", id))
	return id, nil
}

// Read возвращает дело по ID, используя кеш или репозиторий.
func (s *Service) Read(ctx context.Context, id int, userUID string) (*models.Case, error) {
	var result *models.Case
	key := cacheKey(id, userUID)
	found, err := s.cache.Get(ctx, key, &result)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadCase(ctx, id, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, result, time.Hour); err != nil {
		s.log.Warn("failed to cache case", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает дела пользователя по фильтру.
func (s *Service) List(ctx context.Context, f models.CaseFilter) ([]*models.Case, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.ListCases(ctx, f)
}

// Update обновляет дело и инвалидирует кеш.
func (s *Service) Update(ctx context.Context, req models.DummyCase, id int, userUID string) (int, error) {
	c := models.Case{
		Title:       req.Title,
		Description: req.Description,
		CaseType:    req.CaseType,
		Status:      req.Status,
	}
	if c.Status == "" {
		c.Status = "open"
	}
	count, err := s.repo.UpdateCase(ctx, c, id, userUID)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(ctx, cacheKey(id, userUID)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.Any("err", err))
	}
	return count, nil
}

// Remove удаляет дело и инвалидирует кеш.
func (s *Service) Remove(ctx context.Context, id int, userUID string) (int, error) {
	if err := s.cache.Invalidate(ctx, cacheKey(id, userUID)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.Any("err", err))
	}
	return s.repo.RemoveCase(ctx, id, userUID)
}
