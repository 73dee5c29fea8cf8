package media

import (
	"fmt"
	"strings"
	"time"

	"ecoreport/internal/config"
	"ecoreport/internal/core/domain"
	"ecoreport/internal/core/services"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxFileSize is the largest blob either store accepts
const MaxFileSize = 10 << 20

// Blob is an accepted upload ready to be written
type Blob struct {
	Type      domain.MediaType
	MimeType  string
	Extension string
}

// Classify sniffs the blob and accepts only images and videos up to
// MaxFileSize. A declared type that disagrees with the content is rejected.
func Classify(blob []byte, declared string) (*Blob, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrValidation)
	}
	if len(blob) > MaxFileSize {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrMediaTooLarge)
	}

	detected := mimetype.Detect(blob)
	kind, ok := mediaType(detected.String())
	if !ok {
		return nil, fmt.Errorf("%w: %w (got %s)", domain.ErrValidation, domain.ErrUnsupportedMedia, detected.String())
	}

	if declared = strings.TrimSpace(declared); declared != "" && declared != "application/octet-stream" {
		if declaredKind, ok := mediaType(declared); !ok || declaredKind != kind {
			return nil, fmt.Errorf("%w: %w (declared %s, content is %s)", domain.ErrValidation, domain.ErrUnsupportedMedia, declared, detected.String())
		}
	}

	mime, _, _ := strings.Cut(detected.String(), ";")
	return &Blob{
		Type:      kind,
		MimeType:  mime,
		Extension: detected.Extension(),
	}, nil
}

func mediaType(mime string) (domain.MediaType, bool) {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return domain.MediaImage, true
	case strings.HasPrefix(mime, "video/"):
		return domain.MediaVideo, true
	}
	return "", false
}

// objectKey builds a unique date-partitioned key, e.g. 2025/01/31/<uuid>.jpg
func objectKey(now time.Time, ext string) string {
	return fmt.Sprintf("%s/%s%s", now.UTC().Format("2006/01/02"), uuid.New().String(), ext)
}

// NewStore returns the store selected by MEDIA_DRIVER
func NewStore(cfg config.MediaConfig) (services.MediaStore, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Store(cfg.S3)
	case "local", "":
		return NewLocalStore(cfg.UploadDir, cfg.PublicURL)
	}
	return nil, fmt.Errorf("unknown media driver %q", cfg.Driver)
}
