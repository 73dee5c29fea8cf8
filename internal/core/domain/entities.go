package domain

import "time"

// User represents an authentication principal
type User struct {
	ID         uint
	Name       string
	Email      string
	Phone      string
	Password   string // Hashed
	Role       Role
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Location is where the reported issue is
type Location struct {
	Address string
	Lat     *float64
	Lng     *float64
}

// MediaType tags a stored media reference
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaRef points at a blob held by the media store
type MediaRef struct {
	Type        MediaType
	URL         string
	ReferenceID string
}

// Feedback is a citizen's rating of how a complaint was handled
type Feedback struct {
	Rating      int
	Comment     string
	SubmittedAt time.Time
}

// Complaint is the unit of work tracked by the lifecycle engine
type Complaint struct {
	ID                uint   // storage key
	ComplaintID       string // public identifier
	OwnerID           uint
	Title             string
	Description       string
	Category          Category
	Location          Location
	Media             []MediaRef
	Status            Status
	AssignedOfficerID *uint
	ResolutionProof   []MediaRef
	Feedback          *Feedback
	MandatoryFeedback *Feedback
	CreatedAt         time.Time
	ResolvedAt        *time.Time
	DueAt             time.Time
	Version           uint
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked reports whether the token was revoked
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the token expired at now
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
