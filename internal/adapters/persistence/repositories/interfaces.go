package repositories

import (
	"context"
	"time"

	"ecoreport/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ComplaintFilter narrows a complaint listing
type ComplaintFilter struct {
	Status    *domain.Status
	Category  *domain.Category
	OfficerID *uint
	OverdueAt *time.Time // only complaints overdue at this instant
	Offset    int
	Limit     int
}

// ComplaintRepository defines complaint repository interface
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByComplaintID(ctx context.Context, complaintID string) (*domain.Complaint, error)
	GetByOwner(ctx context.Context, ownerID uint, complaintID string) (*domain.Complaint, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*domain.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]*domain.Complaint, int64, error)
	// Update saves the complaint if its version still matches the stored one
	// and bumps the version. A stale version yields domain.ErrConflict.
	Update(ctx context.Context, complaint *domain.Complaint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.Status) (int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
}
