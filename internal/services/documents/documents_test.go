package documents

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/legal-assistant/internal/models"
	"github.com/magabrotheeeer/legal-assistant/internal/storage"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

func testLogger() *slog.Logger { return slog.New(discardHandler{}) }

type docRepoMock struct {
	createDocument func(ctx context.Context, d models.Document) (int, error)
	readDocument   func(ctx context.Context, id int, userUID string) (*models.Document, error)
	listDocuments  func(ctx context.Context, userUID string, caseID *int, limit, offset int) ([]*models.Document, error)
	removeDocument func(ctx context.Context, id int, userUID string) (int, error)
}

func (m *docRepoMock) CreateDocument(ctx context.Context, d models.Document) (int, error) {
	return m.createDocument(ctx, d)
}

func (m *docRepoMock) ReadDocument(ctx context.Context, id int, userUID string) (*models.Document, error) {
	return m.readDocument(ctx, id, userUID)
}

func (m *docRepoMock) ListDocuments(ctx context.Context, userUID string, caseID *int, limit, offset int) ([]*models.Document, error) {
	return m.listDocuments(ctx, userUID, caseID, limit, offset)
}

func (m *docRepoMock) RemoveDocument(ctx context.Context, id int, userUID string) (int, error) {
	return m.removeDocument(ctx, id, userUID)
}

// blobMock хранит блобы в map-е по ключу.
type blobMock struct {
	blobs   map[string]string
	saveErr error
	deleted []string
}

func newBlobMock() *blobMock {
	return &blobMock{blobs: map[string]string{}}
}

func (m *blobMock) Save(_ context.Context, key, _ string, r io.Reader) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.blobs[key] = string(b)
	return nil
}

func (m *blobMock) Open(_ context.Context, key string) (io.ReadCloser, error) {
	body, ok := m.blobs[key]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (m *blobMock) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.blobs, key)
	return nil
}

func TestUpload_SavesBlobAndMetadata(t *testing.T) {
	var captured models.Document
	repo := &docRepoMock{
		createDocument: func(_ context.Context, d models.Document) (int, error) {
			captured = d
			return 11, nil
		},
	}
	blobs := newBlobMock()
	svc := New(repo, blobs, testLogger())

	id, err := svc.Upload(context.Background(),
		"uid-1", "contract.pdf", "application/pdf", 9, nil,
		strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, 11, id)

	assert.Equal(t, "uid-1", captured.UserUID)
	assert.Equal(t, "contract.pdf", captured.FileName)
	assert.Equal(t, int64(9), captured.SizeBytes)
	assert.NotEmpty(t, captured.StorageKey)
	assert.NotEqual(t, "contract.pdf", captured.StorageKey)
	assert.Equal(t, "pdf bytes", blobs.blobs[captured.StorageKey])
}

func TestUpload_CleansUpBlobWhenMetadataFails(t *testing.T) {
	repo := &docRepoMock{
		createDocument: func(context.Context, models.Document) (int, error) {
			return 0, errors.New("db down")
		},
	}
	blobs := newBlobMock()
	svc := New(repo, blobs, testLogger())

	_, err := svc.Upload(context.Background(),
		"uid-1", "contract.pdf", "application/pdf", 9, nil,
		strings.NewReader("pdf bytes"))
	require.Error(t, err)

	assert.Empty(t, blobs.blobs, "осиротевший блоб должен быть удалён")
	assert.Len(t, blobs.deleted, 1)
}

func TestUpload_BlobFailureSkipsMetadata(t *testing.T) {
	repo := &docRepoMock{
		createDocument: func(context.Context, models.Document) (int, error) {
			t.Fatal("metadata should not be written")
			return 0, nil
		},
	}
	blobs := newBlobMock()
	blobs.saveErr = errors.New("disk full")
	svc := New(repo, blobs, testLogger())

	_, err := svc.Upload(context.Background(),
		"uid-1", "contract.pdf", "application/pdf", 9, nil,
		strings.NewReader("pdf bytes"))
	assert.Error(t, err)
}

func TestOpen_StreamsStoredContent(t *testing.T) {
	blobs := newBlobMock()
	blobs.blobs["key-1"] = "stored content"
	repo := &docRepoMock{
		readDocument: func(_ context.Context, id int, userUID string) (*models.Document, error) {
			return &models.Document{ID: id, UserUID: userUID, StorageKey: "key-1"}, nil
		},
	}
	svc := New(repo, blobs, testLogger())

	doc, rc, err := svc.Open(context.Background(), 11, "uid-1")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	assert.Equal(t, "key-1", doc.StorageKey)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "stored content", string(body))
}

func TestOpen_NotFound(t *testing.T) {
	repo := &docRepoMock{
		readDocument: func(context.Context, int, string) (*models.Document, error) {
			return nil, storage.ErrNotFound
		},
	}
	svc := New(repo, newBlobMock(), testLogger())

	_, _, err := svc.Open(context.Background(), 11, "uid-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestList_ClampsPagination(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &docRepoMock{
		listDocuments: func(_ context.Context, _ string, _ *int, limit, offset int) ([]*models.Document, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	svc := New(repo, newBlobMock(), testLogger())

	_, err := svc.List(context.Background(), "uid-1", nil, -1, -1)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 0, gotOffset)
}

func TestRemove_DeletesMetadataAndBlob(t *testing.T) {
	blobs := newBlobMock()
	blobs.blobs["key-1"] = "stored content"
	repo := &docRepoMock{
		readDocument: func(_ context.Context, id int, userUID string) (*models.Document, error) {
			return &models.Document{ID: id, UserUID: userUID, StorageKey: "key-1"}, nil
		},
		removeDocument: func(context.Context, int, string) (int, error) {
			return 1, nil
		},
	}
	svc := New(repo, blobs, testLogger())

	count, err := svc.Remove(context.Background(), 11, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Empty(t, blobs.blobs)
}

func TestRemove_ForeignDocument(t *testing.T) {
	repo := &docRepoMock{
		readDocument: func(context.Context, int, string) (*models.Document, error) {
			return nil, storage.ErrNotFound
		},
	}
	blobs := newBlobMock()
	svc := New(repo, blobs, testLogger())

	_, err := svc.Remove(context.Background(), 11, "stranger")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, blobs.deleted)
}
