// Package filestore определяет блоб-хранилище для загружаемых документов.
// Метаданные документов живут в базе, содержимое — здесь, по ключу.
// Реализации: локальный каталог и S3-совместимое хранилище.
package filestore

import (
	"context"
	"fmt"
	"io"

	"github.com/magabrotheeeer/legal-assistant/internal/config"
)

// Store — контракт блоб-хранилища.
type Store interface {
	// Save сохраняет содержимое r под ключом key.
	Save(ctx context.Context, key, contentType string, r io.Reader) error
	// Open открывает содержимое по ключу для чтения.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete удаляет содержимое по ключу.
	Delete(ctx context.Context, key string) error
}

// New создаёт хранилище по конфигурации: local или s3.
func New(cfg config.FileStorage) (Store, error) {
	switch cfg.Backend {
	case "local", "":
		return NewLocalStore(cfg.LocalPath)
	case "s3":
		return NewS3Store(cfg.S3), nil
	default:
		return nil, fmt.Errorf("filestore: unknown backend %q", cfg.Backend)
	}
}
