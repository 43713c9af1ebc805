package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore хранит файлы в каталоге на диске. Ключ — имя файла,
// компоненты пути в ключе не допускаются.
type LocalStore struct {
	root string
}

// NewLocalStore создаёт хранилище в каталоге root, создавая его при необходимости.
func NewLocalStore(root string) (*LocalStore, error) {
	const op = "filestore.NewLocalStore"
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("filestore: invalid key %q", key)
	}
	return filepath.Join(s.root, key), nil
}

// Save сохраняет содержимое r в файл с именем key.
func (s *LocalStore) Save(_ context.Context, key, _ string, r io.Reader) error {
	const op = "filestore.LocalStore.Save"
	p, err := s.path(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Open открывает файл по ключу.
func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	const op = "filestore.LocalStore.Open"
	p, err := s.path(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

// Delete удаляет файл по ключу.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	const op = "filestore.LocalStore.Delete"
	p, err := s.path(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
