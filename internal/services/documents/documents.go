// Package documents содержит бизнес-логику загрузки и выдачи документов:
// метаданные в базе, содержимое в блоб-хранилище.
package documents

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/legal-assistant/internal/filestore"
	"github.com/magabrotheeeer/legal-assistant/internal/models"
)

// Repository определяет методы для работы с метаданными документов.
type Repository interface {
	CreateDocument(ctx context.Context, d models.Document) (int, error)
	ReadDocument(ctx context.Context, id int, userUID string) (*models.Document, error)
	ListDocuments(ctx context.Context, userUID string, caseID *int, limit, offset int) ([]*models.Document, error)
	RemoveDocument(ctx context.Context, id int, userUID string) (int, error)
}

// Service реализует бизнес-логику работы с документами.
type Service struct {
	repo  Repository
	blobs filestore.Store
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, blobs filestore.Store, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		log:   log,
	}
}

// Upload сохраняет содержимое файла в блоб-хранилище и метаданные в базе.
// Ключ хранения генерируется заново и не зависит от имени файла.
func (s *Service) Upload(ctx context.Context, userUID, fileName, contentType string, size int64, caseID *int, r io.Reader) (int, error) {
	key := uuid.NewString()
	if err := s.blobs.Save(ctx, key, contentType, r); err != nil {
		return 0, err
	}

	doc := models.Document{
		UserUID:     userUID,
		CaseID:      caseID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
		StorageKey:  key,
	}
	id, err := s.repo.CreateDocument(ctx, doc)
	if err != nil {
		// Метаданные не записались, подчищаем осиротевший блоб.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.log.Warn("failed to delete orphaned blob", slog.String("key", key), slog.Any("err", delErr))
		}
		return 0, err
	}
	s.log.Info("uploaded document", slog.Int("id", id), slog.String("file", fileName))
	return id, nil
}

// Open возвращает метаданные документа и поток его содержимого.
func (s *Service) Open(ctx context.Context, id int, userUID string) (*models.Document, io.ReadCloser, error) {
	doc, err := s.repo.ReadDocument(ctx, id, userUID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

// List возвращает документы пользователя с пагинацией.
func (s *Service) List(ctx context.Context, userUID string, caseID *int, limit, offset int) ([]*models.Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListDocuments(ctx, userUID, caseID, limit, offset)
}

// Remove удаляет метаданные и содержимое документа.
func (s *Service) Remove(ctx context.Context, id int, userUID string) (int, error) {
	doc, err := s.repo.ReadDocument(ctx, id, userUID)
	if err != nil {
		return 0, err
	}
	count, err := s.repo.RemoveDocument(ctx, id, userUID)
	if err != nil {
		return 0, err
	}
	if err := s.blobs.Delete(ctx, doc.StorageKey); err != nil {
		s.log.Warn("failed to delete blob", slog.String("key", doc.StorageKey), slog.Any("err", err))
	}
	return count, nil
}
