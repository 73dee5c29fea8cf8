package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecoreport/internal/adapters/persistence/repositories"
	"ecoreport/internal/core/domain"
	"ecoreport/internal/pkg/pagination"
	"ecoreport/internal/pkg/validate"

	"github.com/gofiber/fiber/v2/log"
)

// MaxMediaPerComplaint caps the attachments on one submission
const MaxMediaPerComplaint = 5

// ComplaintService runs the complaint lifecycle: submission, assignment,
// status changes and citizen feedback.
type ComplaintService struct {
	complaintRepo repositories.ComplaintRepository
	userRepo      repositories.UserRepository
	gate          *AuthorizationService
	media         MediaStore
	now           Clock
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaintRepo repositories.ComplaintRepository,
	userRepo repositories.UserRepository,
	gate *AuthorizationService,
	media MediaStore,
) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		gate:          gate,
		media:         media,
		now:           time.Now,
	}
}

// MediaUpload is one uploaded file awaiting storage
type MediaUpload struct {
	Data     []byte
	MimeType string
}

// SubmitComplaintInput represents submit complaint input
type SubmitComplaintInput struct {
	Title       string   `validate:"required,max=255"`
	Description string   `validate:"required"`
	Category    string   `validate:"required,oneof=road_damage tree_maintenance infrastructure other"`
	Address     string   `validate:"required,max=500"`
	Lat         *float64 `validate:"omitempty,latitude"`
	Lng         *float64 `validate:"omitempty,longitude"`
	Media       []MediaUpload
}

// FeedbackInput represents a citizen's rating and comment
type FeedbackInput struct {
	Rating  int    `validate:"required,min=1,max=5"`
	Comment string `validate:"max=2000"`
}

// ProofInput is one resolution-proof reference
type ProofInput struct {
	Type string `validate:"omitempty,oneof=image video"`
	URL  string `validate:"required,max=1000"`
}

// UpdateStatusInput represents a status change request
type UpdateStatusInput struct {
	Status          string       `validate:"required"`
	ResolutionProof []ProofInput `validate:"dive"`
}

// ListComplaintsInput represents list complaints input
type ListComplaintsInput struct {
	Page        int
	Limit       int
	Status      string
	Category    string
	OfficerID   *uint
	OverdueOnly bool
}

// ComplaintView is a complaint plus the flags derived at read time
type ComplaintView struct {
	*domain.Complaint
	Overdue         bool
	FeedbackPending bool
}

// ListComplaintsOutput represents list complaints output
type ListComplaintsOutput struct {
	Complaints []*ComplaintView
	Meta       *pagination.Meta
}

// SubmitComplaint files a new complaint for the calling citizen. Media is
// stored before the insert; if a later upload or the insert fails, the
// blobs already stored are deleted again.
func (s *ComplaintService) SubmitComplaint(ctx context.Context, principalID uint, input *SubmitComplaintInput) (*domain.Complaint, error) {
	if _, err := s.gate.Authorize(ctx, principalID, domain.CapManageOwnComplaints); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if len(input.Media) > MaxMediaPerComplaint {
		return nil, fmt.Errorf("%w: at most %d media files are allowed", domain.ErrValidation, MaxMediaPerComplaint)
	}

	complaint, err := domain.NewComplaint(domain.NewComplaintParams{
		OwnerID:     principalID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    domain.Location{Address: input.Address, Lat: input.Lat, Lng: input.Lng},
	}, s.now())
	if err != nil {
		return nil, err
	}

	// Store media only once the complaint itself is known to be valid
	complaint.Media = make([]domain.MediaRef, 0, len(input.Media))
	for _, upload := range input.Media {
		ref, err := s.media.Store(ctx, upload.Data, upload.MimeType)
		if err != nil {
			s.discardMedia(ctx, complaint.Media)
			return nil, err
		}
		complaint.Media = append(complaint.Media, ref)
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		s.discardMedia(ctx, complaint.Media)
		return nil, err
	}

	log.Infof("✅ Complaint submitted: %s by user %d", complaint.ComplaintID, principalID)
	return complaint, nil
}

// discardMedia removes blobs of a submission that never made it to the
// store. Failures are only logged; the caller already has an error to return.
func (s *ComplaintService) discardMedia(ctx context.Context, refs []domain.MediaRef) {
	ctx = context.WithoutCancel(ctx)
	for _, ref := range refs {
		if err := s.media.Delete(ctx, ref.ReferenceID); err != nil {
			log.Warnf("⚠️ Failed to discard orphaned media %s: %v", ref.ReferenceID, err)
		}
	}
}

// ListOwnComplaints lists the caller's complaints, newest first
func (s *ComplaintService) ListOwnComplaints(ctx context.Context, principalID uint) ([]*ComplaintView, error) {
	if _, err := s.gate.Authorize(ctx, principalID, domain.CapManageOwnComplaints); err != nil {
		return nil, err
	}

	complaints, err := s.complaintRepo.ListByOwner(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return s.views(complaints), nil
}

// GetOwnComplaint returns one of the caller's complaints
func (s *ComplaintService) GetOwnComplaint(ctx context.Context, principalID uint, complaintID string) (*ComplaintView, error) {
	if _, err := s.gate.Authorize(ctx, principalID, domain.CapManageOwnComplaints); err != nil {
		return nil, err
	}

	complaint, err := s.complaintRepo.GetByOwner(ctx, principalID, complaintID)
	if err != nil {
		return nil, err
	}
	return s.view(complaint), nil
}

// SubmitFeedback fills the optional first-feedback slot of a resolved complaint
func (s *ComplaintService) SubmitFeedback(ctx context.Context, principalID uint, complaintID string, input *FeedbackInput) (*domain.Complaint, error) {
	return s.submitFeedback(ctx, principalID, complaintID, domain.FeedbackOptional, input)
}

// SubmitMandatoryFeedback fills the feedback slot required once a complaint is closed
func (s *ComplaintService) SubmitMandatoryFeedback(ctx context.Context, principalID uint, complaintID string, input *FeedbackInput) (*domain.Complaint, error) {
	return s.submitFeedback(ctx, principalID, complaintID, domain.FeedbackMandatory, input)
}

func (s *ComplaintService) submitFeedback(ctx context.Context, principalID uint, complaintID string, mode domain.FeedbackMode, input *FeedbackInput) (*domain.Complaint, error) {
	if _, err := s.gate.Authorize(ctx, principalID, domain.CapManageOwnComplaints); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	complaint, err := s.complaintRepo.GetByOwner(ctx, principalID, complaintID)
	if err != nil {
		return nil, err
	}

	if err := complaint.SubmitFeedback(mode, input.Rating, input.Comment, s.now()); err != nil {
		return nil, err
	}
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	log.Infof("✅ %s feedback stored for complaint %s", mode, complaint.ComplaintID)
	return complaint, nil
}

// AssignComplaint hands a complaint to an officer
func (s *ComplaintService) AssignComplaint(ctx context.Context, principalID uint, complaintID string, officerID uint) (*domain.Complaint, error) {
	if _, err := s.gate.Authorize(ctx, principalID, domain.CapManageComplaints); err != nil {
		return nil, err
	}
	if officerID == 0 {
		return nil, fmt.Errorf("%w: officer_id is required", domain.ErrValidation)
	}

	complaint, err := s.complaintRepo.GetByComplaintID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	officer, err := s.userRepo.GetByID(ctx, officerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: officer %d", domain.ErrNotFound, officerID)
		}
		return nil, err
	}
	if !officer.Role.IsStaff() {
		return nil, fmt.Errorf("%w: user %d is not an officer", domain.ErrValidation, officerID)
	}

	if err := complaint.Assign(officer.ID); err != nil {
		return nil, err
	}
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	log.Infof("✅ Complaint %s assigned to officer %d by %d", complaint.ComplaintID, officer.ID, principalID)
	return complaint, nil
}

// UpdateComplaintStatus moves a complaint along its lifecycle
func (s *ComplaintService) UpdateComplaintStatus(ctx context.Context, principalID uint, complaintID string, input *UpdateStatusInput) (*domain.Complaint, error) {
	if _, err := s.gate.Authorize(ctx, principalID, domain.CapManageComplaints); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	complaint, err := s.complaintRepo.GetByComplaintID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	var proof []domain.MediaRef
	if input.ResolutionProof != nil {
		proof = make([]domain.MediaRef, len(input.ResolutionProof))
		for i, p := range input.ResolutionProof {
			proof[i] = domain.MediaRef{Type: domain.MediaType(p.Type), URL: p.URL}
			if p.Type == "" {
				proof[i].Type = domain.MediaImage
			}
		}
	}

	previous := complaint.Status
	if err := complaint.TransitionTo(status, proof, s.now()); err != nil {
		return nil, err
	}
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	log.Infof("✅ Complaint %s moved %s -> %s by %d", complaint.ComplaintID, previous, status, principalID)
	return complaint, nil
}

// ListAllComplaints lists every complaint for staff
func (s *ComplaintService) ListAllComplaints(ctx context.Context, principalID uint, input *ListComplaintsInput) (*ListComplaintsOutput, error) {
	if _, err := s.gate.Authorize(ctx, principalID, domain.CapViewAllComplaints); err != nil {
		return nil, err
	}

	params := pagination.New(input.Page, input.Limit)
	filter := repositories.ComplaintFilter{
		OfficerID: input.OfficerID,
		Offset:    params.Offset,
		Limit:     params.Limit,
	}
	if input.Status != "" {
		status, err := domain.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if input.Category != "" {
		category, err := domain.ParseCategory(input.Category)
		if err != nil {
			return nil, err
		}
		filter.Category = &category
	}
	if input.OverdueOnly {
		now := s.now()
		filter.OverdueAt = &now
	}

	complaints, total, err := s.complaintRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListComplaintsOutput{
		Complaints: s.views(complaints),
		Meta:       pagination.GetMeta(params, total),
	}, nil
}

// GetComplaint returns any complaint to staff
func (s *ComplaintService) GetComplaint(ctx context.Context, principalID uint, complaintID string) (*ComplaintView, error) {
	if _, err := s.gate.Authorize(ctx, principalID, domain.CapViewAllComplaints); err != nil {
		return nil, err
	}

	complaint, err := s.complaintRepo.GetByComplaintID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	return s.view(complaint), nil
}

func (s *ComplaintService) view(c *domain.Complaint) *ComplaintView {
	return &ComplaintView{
		Complaint:       c,
		Overdue:         c.IsOverdue(s.now()),
		FeedbackPending: c.FeedbackPending(),
	}
}

func (s *ComplaintService) views(complaints []*domain.Complaint) []*ComplaintView {
	out := make([]*ComplaintView, len(complaints))
	for i, c := range complaints {
		out[i] = s.view(c)
	}
	return out
}
