package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DueWindow is how long a complaint may stay open before it is overdue
const DueWindow = 15 * 24 * time.Hour

// Category classifies the reported issue
type Category string

const (
	CategoryRoadDamage      Category = "road_damage"
	CategoryTreeMaintenance Category = "tree_maintenance"
	CategoryInfrastructure  Category = "infrastructure"
	CategoryOther           Category = "other"
)

// ParseCategory rejects anything outside the four categories
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryRoadDamage, CategoryTreeMaintenance, CategoryInfrastructure, CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
}

// NewComplaintParams carries citizen-supplied fields for a new complaint
type NewComplaintParams struct {
	OwnerID     uint
	Title       string
	Description string
	Category    string
	Location    Location
	Media       []MediaRef
}

// NewComplaint builds a pending complaint with a fresh identifier and a due
// date DueWindow after now.
func NewComplaint(p NewComplaintParams, now time.Time) (*Complaint, error) {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	case strings.TrimSpace(p.Description) == "":
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	case p.Category == "":
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	case strings.TrimSpace(p.Location.Address) == "":
		return nil, fmt.Errorf("%w: address is required", ErrValidation)
	}
	category, err := ParseCategory(p.Category)
	if err != nil {
		return nil, err
	}

	return &Complaint{
		ComplaintID: NewComplaintID(),
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		Category:    category,
		Location:    p.Location,
		Media:       p.Media,
		Status:      StatusPending,
		CreatedAt:   now,
		DueAt:       now.Add(DueWindow),
	}, nil
}

// NewComplaintID returns a displayable identifier, independent of the storage key
func NewComplaintID() string {
	id := uuid.New()
	return "CMP-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:16])
}

// IsOverdue reports whether the complaint is still open past its due date
func (c *Complaint) IsOverdue(now time.Time) bool {
	return c.Status.IsOpen() && c.DueAt.Before(now)
}

// FeedbackPending reports whether the citizen still owes mandatory feedback
func (c *Complaint) FeedbackPending() bool {
	return c.Status == StatusClosed && c.MandatoryFeedback == nil
}

// IsOwnedBy reports whether userID filed the complaint
func (c *Complaint) IsOwnedBy(userID uint) bool {
	return c.OwnerID == userID
}
