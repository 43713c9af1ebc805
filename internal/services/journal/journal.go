// Package journal содержит бизнес-логику личного журнала пользователя.
package journal

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// Repository определяет методы для работы с записями журнала в хранилище.
type Repository interface {
	CreateJournalEntry(ctx context.Context, e models.JournalEntry) (int, error)
	ReadJournalEntry(ctx context.Context, id int, userUID string) (*models.JournalEntry, error)
	ListJournalEntries(ctx context.Context, f models.JournalFilter) ([]*models.JournalEntry, error)
	RemoveJournalEntry(ctx context.Context, id int, userUID string) (int, error)
}

// Service реализует бизнес-логику журнала.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create создает новую запись журнала и возвращает её ID.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyJournalEntry) (int, error) {
	e := models.JournalEntry{
		UserUID: userUID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}
	id, err := s.repo.CreateJournalEntry(ctx, e)
	if err != nil {
		return 0, err
	}
	s.log.Info("created journal entry", slog.Int("id", id))
	return id, nil
}

// Read возвращает запись журнала по ID.
func (s *Service) Read(ctx context.Context, id int, userUID string) (*models.JournalEntry, error) {
	return s.repo.ReadJournalEntry(ctx, id, userUID)
}

// List возвращает записи журнала по фильтру.
func (s *Service) List(ctx context.Context, f models.JournalFilter) ([]*models.JournalEntry, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.ListJournalEntries(ctx, f)
}

// Remove удаляет запись журнала.
func (s *Service) Remove(ctx context.Context, id int, userUID string) (int, error) {
	return s.repo.RemoveJournalEntry(ctx, id, userUID)
}
