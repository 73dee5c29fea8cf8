package models

import (
	"time"

	"ecoreport/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// User represents users table
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone      string         `gorm:"size:30;not null" json:"phone"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Role       string         `gorm:"size:20;default:'user'" json:"role"`
	IsVerified bool           `gorm:"default:false" json:"is_verified"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain converts the row to a domain user
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Password:   u.Password,
		Role:       domain.Role(u.Role),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// UserFromDomain converts a domain user to a row
func UserFromDomain(u *domain.User) *User {
	return &User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Password:   u.Password,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) ToDomain() *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        rt.ID,
		UserID:    rt.UserID,
		TokenHash: rt.TokenHash,
		ExpiresAt: rt.ExpiresAt,
		CreatedAt: rt.CreatedAt,
		RevokedAt: rt.RevokedAt,
	}
}

// ============================================================
// Complaints
// ============================================================

// MediaRef is the JSON shape of a stored media reference
type MediaRef struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	ReferenceID string `json:"reference_id,omitempty"`
}

// Complaint represents complaints table
type Complaint struct {
	ID                uint       `gorm:"primaryKey"`
	ComplaintID       string     `gorm:"size:32;uniqueIndex;not null"`
	UserID            uint       `gorm:"index;not null"`
	Title             string     `gorm:"size:255;not null"`
	Description       string     `gorm:"type:text;not null"`
	Category          string     `gorm:"size:30;index;not null"`
	Address           string     `gorm:"size:500;not null"`
	Lat               *float64   `gorm:"type:decimal(10,7)"`
	Lng               *float64   `gorm:"type:decimal(10,7)"`
	Media             []MediaRef `gorm:"serializer:json;type:json"`
	Status            string     `gorm:"size:20;index;default:'pending'"`
	AssignedOfficerID *uint      `gorm:"index"`
	ResolutionProof   []MediaRef `gorm:"serializer:json;type:json"`

	FeedbackRating      *int
	FeedbackComment     *string `gorm:"type:text"`
	FeedbackSubmittedAt *time.Time

	MandatoryFeedbackRating      *int
	MandatoryFeedbackComment     *string `gorm:"type:text"`
	MandatoryFeedbackSubmittedAt *time.Time

	CreatedAt  time.Time `gorm:"index"`
	ResolvedAt *time.Time
	DueDate    time.Time `gorm:"index;not null"`
	Version    uint      `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	User            User  `gorm:"foreignKey:UserID"`
	AssignedOfficer *User `gorm:"foreignKey:AssignedOfficerID"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// ToDomain converts the row to a domain complaint
func (m *Complaint) ToDomain() *domain.Complaint {
	return &domain.Complaint{
		ID:                m.ID,
		ComplaintID:       m.ComplaintID,
		OwnerID:           m.UserID,
		Title:             m.Title,
		Description:       m.Description,
		Category:          domain.Category(m.Category),
		Location:          domain.Location{Address: m.Address, Lat: m.Lat, Lng: m.Lng},
		Media:             mediaToDomain(m.Media),
		Status:            domain.Status(m.Status),
		AssignedOfficerID: m.AssignedOfficerID,
		ResolutionProof:   mediaToDomain(m.ResolutionProof),
		Feedback:          feedbackToDomain(m.FeedbackRating, m.FeedbackComment, m.FeedbackSubmittedAt),
		MandatoryFeedback: feedbackToDomain(m.MandatoryFeedbackRating, m.MandatoryFeedbackComment, m.MandatoryFeedbackSubmittedAt),
		CreatedAt:         m.CreatedAt,
		ResolvedAt:        m.ResolvedAt,
		DueAt:             m.DueDate,
		Version:           m.Version,
	}
}

// ComplaintFromDomain converts a domain complaint to a row
func ComplaintFromDomain(c *domain.Complaint) *Complaint {
	m := &Complaint{
		ID:                c.ID,
		ComplaintID:       c.ComplaintID,
		UserID:            c.OwnerID,
		Title:             c.Title,
		Description:       c.Description,
		Category:          string(c.Category),
		Address:           c.Location.Address,
		Lat:               c.Location.Lat,
		Lng:               c.Location.Lng,
		Media:             mediaFromDomain(c.Media),
		Status:            string(c.Status),
		AssignedOfficerID: c.AssignedOfficerID,
		ResolutionProof:   mediaFromDomain(c.ResolutionProof),
		CreatedAt:         c.CreatedAt,
		ResolvedAt:        c.ResolvedAt,
		DueDate:           c.DueAt,
		Version:           c.Version,
	}
	if fb := c.Feedback; fb != nil {
		m.FeedbackRating, m.FeedbackComment, m.FeedbackSubmittedAt = &fb.Rating, &fb.Comment, &fb.SubmittedAt
	}
	if fb := c.MandatoryFeedback; fb != nil {
		m.MandatoryFeedbackRating, m.MandatoryFeedbackComment, m.MandatoryFeedbackSubmittedAt = &fb.Rating, &fb.Comment, &fb.SubmittedAt
	}
	return m
}

func mediaToDomain(refs []MediaRef) []domain.MediaRef {
	out := make([]domain.MediaRef, len(refs))
	for i, r := range refs {
		out[i] = domain.MediaRef{Type: domain.MediaType(r.Type), URL: r.URL, ReferenceID: r.ReferenceID}
	}
	return out
}

func mediaFromDomain(refs []domain.MediaRef) []MediaRef {
	out := make([]MediaRef, len(refs))
	for i, r := range refs {
		out[i] = MediaRef{Type: string(r.Type), URL: r.URL, ReferenceID: r.ReferenceID}
	}
	return out
}

func feedbackToDomain(rating *int, comment *string, at *time.Time) *domain.Feedback {
	if rating == nil || at == nil {
		return nil
	}
	fb := &domain.Feedback{Rating: *rating, SubmittedAt: *at}
	if comment != nil {
		fb.Comment = *comment
	}
	return fb
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Complaint{},
	)
}
