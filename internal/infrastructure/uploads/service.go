// Package uploads stores chat file attachments on disk with SQLite metadata.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/swaroop-surya/chatroom/internal/domain"
)

var (
	ErrTooLarge     = errors.New("file too large")
	ErrRejectedType = errors.New("file type not allowed")
	ErrEmptyFile    = errors.New("empty file")
)

type Options struct {
	Dir          string
	MaxSizeBytes int64
	AllowedMIMEs []string
}

type Service struct {
	dir     string
	maxSize int64
	allowed map[string]bool
	store   *Store
}

func NewService(opts Options, store *Store) (*Service, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	allowed := make(map[string]bool, len(opts.AllowedMIMEs))
	for _, m := range opts.AllowedMIMEs {
		allowed[m] = true
	}

	return &Service{
		dir:     opts.Dir,
		maxSize: opts.MaxSizeBytes,
		allowed: allowed,
		store:   store,
	}, nil
}

// Save writes the uploaded file to disk, records its metadata and returns
// the attachment descriptor to embed in a chat message.
func (s *Service) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader, uploadedBy string) (*domain.FileAttachment, error) {
	if header.Size <= 0 {
		return nil, ErrEmptyFile
	}
	if header.Size > s.maxSize {
		return nil, ErrTooLarge
	}

	mime := header.Header.Get("Content-Type")
	if !s.allowed[mime] {
		return nil, ErrRejectedType
	}

	original := filepath.Base(header.Filename)
	if original == "" || original == "." || original == ".." {
		return nil, domain.ErrInvalidInput
	}

	id := uuid.NewString()
	storagePath := filepath.Join(s.dir, id+filepath.Ext(original))

	dst, err := os.Create(storagePath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(file, s.maxSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(storagePath)
		return nil, fmt.Errorf("write file: %w", err)
	}
	if written > s.maxSize {
		_ = os.Remove(storagePath)
		return nil, ErrTooLarge
	}

	meta := FileMeta{
		ID:           id,
		OriginalName: original,
		Mime:         mime,
		SizeBytes:    written,
		StoragePath:  storagePath,
		UploadedBy:   uploadedBy,
		UploadedAt:   time.Now(),
	}
	if err := s.store.Insert(ctx, meta); err != nil {
		_ = os.Remove(storagePath)
		return nil, fmt.Errorf("record metadata: %w", err)
	}

	return &domain.FileAttachment{
		URL:          "/uploads/" + filepath.Base(storagePath),
		OriginalName: original,
		Mime:         mime,
		Size:         written,
	}, nil
}

// Dir returns the directory uploads are written to, for static serving.
func (s *Service) Dir() string {
	return s.dir
}

// SweepExpired removes files uploaded before cutoff, both on disk and in
// the metadata store. Returns how many files were removed.
func (s *Service) SweepExpired(ctx context.Context, cutoff time.Time) (int, error) {
	expired, err := s.store.ExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, meta := range expired {
		if err := os.Remove(meta.StoragePath); err != nil && !os.IsNotExist(err) {
			continue
		}
		if err := s.store.Delete(ctx, meta.ID); err != nil {
			continue
		}
		removed++
	}
	return removed, nil
}
