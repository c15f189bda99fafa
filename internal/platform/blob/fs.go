package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/payvue/paydesk/internal/models"
	cfgpkg "github.com/payvue/paydesk/pkg/config"
	"github.com/payvue/paydesk/pkg/tool"
)

// ErrNotFound is returned when a blob id does not resolve.
var ErrNotFound = errors.New("blob not found")

// Object is a streamed blob together with its stored metadata. The caller
// owns the reader and must close it.
type Object struct {
	io.ReadCloser
	Filename    string
	ContentType string
	Size        int64
}

// Store persists opaque file bytes keyed by an id it assigns. Both
// directions stream; neither side buffers the whole file.
type Store interface {
	Put(ctx context.Context, r io.Reader, filename, contentType string) (string, error)
	Open(ctx context.Context, id string) (*Object, error)
}

// fsStore keeps bytes on local disk and metadata in the database.
type fsStore struct {
	log *zap.SugaredLogger
	db  *gorm.DB
	dir string
}

func NewFSStore(log *zap.SugaredLogger, cfg *cfgpkg.Config, db *gorm.DB) (Store, error) {
	if err := os.MkdirAll(cfg.Blob.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	return &fsStore{log: log, db: db, dir: cfg.Blob.Dir}, nil
}

func (s *fsStore) Put(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	id := tool.GenerateUUIDV7()
	path := filepath.Join(s.dir, id)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	meta := &models.EvidenceFile{ID: id, Filename: filename, ContentType: contentType, SizeBytes: n}
	if err := s.db.WithContext(ctx).Create(meta).Error; err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to store blob metadata: %w", err)
	}
	s.log.Infow("blob stored", "id", id, "filename", filename, "size", n)
	return id, nil
}

func (s *fsStore) Open(ctx context.Context, id string) (*Object, error) {
	var meta models.EvidenceFile
	err := s.db.WithContext(ctx).First(&meta, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load blob metadata: %w", err)
	}

	f, err := os.Open(filepath.Join(s.dir, id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return &Object{ReadCloser: f, Filename: meta.Filename, ContentType: meta.ContentType, Size: meta.SizeBytes}, nil
}

// Module exposes the filesystem blob store via Fx.
var Module = fx.Options(
	fx.Provide(NewFSStore),
)
