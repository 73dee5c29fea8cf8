package services

import (
	"context"
	"time"

	"ecoreport/internal/core/domain"
)

// MediaStore persists uploaded blobs and hands back a reference
type MediaStore interface {
	Store(ctx context.Context, blob []byte, mimeType string) (domain.MediaRef, error)
	// Delete removes a stored blob by its ReferenceID. A missing blob is not an error.
	Delete(ctx context.Context, referenceID string) error
}

// CredentialVerifier resolves a signed credential to a principal id
type CredentialVerifier interface {
	ResolvePrincipal(ctx context.Context, credential string) (uint, error)
}

// Clock returns the current time
type Clock func() time.Time
