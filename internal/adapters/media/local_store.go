package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"ecoreport/internal/core/domain"

	"github.com/gofiber/fiber/v2/log"
)

// LocalStore writes media under a directory served as static files
type LocalStore struct {
	baseDir   string
	publicURL string
	now       func() time.Time
}

// NewLocalStore creates the upload directory if needed
func NewLocalStore(baseDir, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", baseDir, err)
	}

	log.Infof("📁 Local media store at %s (served from %s)", baseDir, publicURL)
	return &LocalStore{
		baseDir:   baseDir,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}, nil
}

// Store writes the blob and returns its public reference
func (s *LocalStore) Store(ctx context.Context, blob []byte, mimeType string) (domain.MediaRef, error) {
	accepted, err := Classify(blob, mimeType)
	if err != nil {
		return domain.MediaRef{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.MediaRef{}, err
	}

	key := objectKey(s.now(), accepted.Extension)
	dst := filepath.Join(s.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return domain.MediaRef{}, fmt.Errorf("%w: create media dir: %v", domain.ErrCollaborator, err)
	}
	if err := os.WriteFile(dst, blob, 0644); err != nil {
		return domain.MediaRef{}, fmt.Errorf("%w: write media: %v", domain.ErrCollaborator, err)
	}

	return domain.MediaRef{
		Type:        accepted.Type,
		URL:         path.Join(s.publicURL, key),
		ReferenceID: key,
	}, nil
}

// Delete removes a previously stored file
func (s *LocalStore) Delete(ctx context.Context, referenceID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := filepath.Join(s.baseDir, filepath.FromSlash(path.Clean("/"+referenceID)))
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: delete media: %v", domain.ErrCollaborator, err)
	}
	return nil
}
