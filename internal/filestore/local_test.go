package filestore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/legal-assistant/internal/config"
)

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	err = store.Save(ctx, "doc-1.pdf", "application/pdf", strings.NewReader("file body"))
	require.NoError(t, err)

	rc, err := store.Open(ctx, "doc-1.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "file body", string(body))

	require.NoError(t, store.Delete(ctx, "doc-1.pdf"))

	_, err = store.Open(ctx, "doc-1.pdf")
	assert.Error(t, err)
}

func TestLocalStore_RejectsPathKeys(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		t.Run(key, func(t *testing.T) {
			err := store.Save(ctx, key, "text/plain", strings.NewReader("x"))
			assert.Error(t, err)
		})
	}

	// Каталог остался пустым.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStore_SaveRefusesOverwrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "doc.txt", "text/plain", strings.NewReader("first")))
	err = store.Save(ctx, "doc.txt", "text/plain", strings.NewReader("second"))
	assert.Error(t, err)
}

func TestLocalStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "missing.txt"))
}

func TestNew_SelectsBackend(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	store, err := New(config.FileStorage{Backend: "local", LocalPath: dir})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = os.Stat(dir)
	assert.NoError(t, err, "каталог должен быть создан")

	_, err = New(config.FileStorage{Backend: "ftp"})
	assert.Error(t, err)
}
