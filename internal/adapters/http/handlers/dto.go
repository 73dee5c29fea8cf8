package handlers

import (
	"time"

	"ecoreport/internal/core/domain"
	"ecoreport/internal/core/services"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// LocationResponse represents a complaint location
type LocationResponse struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// MediaResponse represents a stored media reference
type MediaResponse struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	ReferenceID string `json:"reference_id,omitempty"`
}

// FeedbackResponse represents citizen feedback
type FeedbackResponse struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ComplaintResponse represents a complaint in API responses
type ComplaintResponse struct {
	ComplaintID       string            `json:"complaint_id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Category          string            `json:"category"`
	Location          LocationResponse  `json:"location"`
	Media             []MediaResponse   `json:"media"`
	Status            string            `json:"status"`
	OwnerID           uint              `json:"user_id"`
	AssignedOfficerID *uint             `json:"assigned_officer_id"`
	ResolutionProof   []MediaResponse   `json:"resolution_proof"`
	Feedback          *FeedbackResponse `json:"feedback"`
	MandatoryFeedback *FeedbackResponse `json:"mandatory_feedback"`
	CreatedAt         time.Time         `json:"created_at"`
	ResolvedAt        *time.Time        `json:"resolved_at"`
	DueDate           time.Time         `json:"due_date"`
	Overdue           bool              `json:"overdue"`
	FeedbackPending   bool              `json:"feedback_pending"`
	Version           uint              `json:"version"`
}

func toComplaintResponse(c *domain.Complaint, now time.Time) *ComplaintResponse {
	return &ComplaintResponse{
		ComplaintID:       c.ComplaintID,
		Title:             c.Title,
		Description:       c.Description,
		Category:          string(c.Category),
		Location:          LocationResponse{Address: c.Location.Address, Lat: c.Location.Lat, Lng: c.Location.Lng},
		Media:             toMediaResponses(c.Media),
		Status:            string(c.Status),
		OwnerID:           c.OwnerID,
		AssignedOfficerID: c.AssignedOfficerID,
		ResolutionProof:   toMediaResponses(c.ResolutionProof),
		Feedback:          toFeedbackResponse(c.Feedback),
		MandatoryFeedback: toFeedbackResponse(c.MandatoryFeedback),
		CreatedAt:         c.CreatedAt,
		ResolvedAt:        c.ResolvedAt,
		DueDate:           c.DueAt,
		Overdue:           c.IsOverdue(now),
		FeedbackPending:   c.FeedbackPending(),
		Version:           c.Version,
	}
}

func fromView(v *services.ComplaintView) *ComplaintResponse {
	resp := toComplaintResponse(v.Complaint, time.Now())
	resp.Overdue = v.Overdue
	resp.FeedbackPending = v.FeedbackPending
	return resp
}

func fromViews(views []*services.ComplaintView) []*ComplaintResponse {
	out := make([]*ComplaintResponse, len(views))
	for i, v := range views {
		out[i] = fromView(v)
	}
	return out
}

func toMediaResponses(refs []domain.MediaRef) []MediaResponse {
	out := make([]MediaResponse, len(refs))
	for i, r := range refs {
		out[i] = MediaResponse{Type: string(r.Type), URL: r.URL, ReferenceID: r.ReferenceID}
	}
	return out
}

func toFeedbackResponse(fb *domain.Feedback) *FeedbackResponse {
	if fb == nil {
		return nil
	}
	return &FeedbackResponse{Rating: fb.Rating, Comment: fb.Comment, SubmittedAt: fb.SubmittedAt}
}

// DashboardResponse represents the staff dashboard counts
type DashboardResponse struct {
	Total        int64            `json:"total"`
	Pending      int64            `json:"pending"`
	Resolved     int64            `json:"resolved"`
	Overdue      int64            `json:"overdue"`
	ByStatus     map[string]int64 `json:"by_status"`
	AssignedToMe int64            `json:"assigned_to_me"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

func toDashboardResponse(s *services.DashboardStats) *DashboardResponse {
	byStatus := make(map[string]int64, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[string(status)] = n
	}
	return &DashboardResponse{
		Total:        s.Total,
		Pending:      s.Pending,
		Resolved:     s.Resolved,
		Overdue:      s.Overdue,
		ByStatus:     byStatus,
		AssignedToMe: s.AssignedToMe,
		GeneratedAt:  s.GeneratedAt,
	}
}
