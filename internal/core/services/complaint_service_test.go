package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ecoreport/internal/core/domain"
	"ecoreport/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	citizenID      uint = 1
	otherCitizenID uint = 2
	officerID      uint = 10
	adminID        uint = 20
)

var t0 = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

type complaintFixture struct {
	svc   *ComplaintService
	repo  *memComplaints
	users memUsers
	media *mocks.MockMediaStore
	clock *clock
}

func newComplaintFixture() *complaintFixture {
	users := memUsers{
		citizenID:      {ID: citizenID, Email: "citizen@example.com", Role: domain.RoleUser},
		otherCitizenID: {ID: otherCitizenID, Email: "other@example.com", Role: domain.RoleUser},
		officerID:      {ID: officerID, Email: "officer@example.com", Role: domain.RoleOfficer},
		adminID:        {ID: adminID, Email: "admin@example.com", Role: domain.RoleAdmin},
	}
	repo := newMemComplaints()
	media := new(mocks.MockMediaStore)
	c := &clock{t: t0}

	svc := NewComplaintService(repo, users, NewAuthorizationService(users), media)
	svc.now = c.now

	return &complaintFixture{svc: svc, repo: repo, users: users, media: media, clock: c}
}

func validInput() *SubmitComplaintInput {
	return &SubmitComplaintInput{
		Title:       "Pothole on Main St",
		Description: "Deep pothole near the bus stop",
		Category:    "road_damage",
		Address:     "12 Main St",
	}
}

func (f *complaintFixture) submit(t *testing.T) *domain.Complaint {
	t.Helper()
	c, err := f.svc.SubmitComplaint(context.Background(), citizenID, validInput())
	require.NoError(t, err)
	return c
}

func TestSubmitComplaint(t *testing.T) {
	f := newComplaintFixture()

	c := f.submit(t)

	assert.Equal(t, domain.StatusPending, c.Status)
	assert.Regexp(t, `^CMP-[0-9A-F]{16}$`, c.ComplaintID)
	assert.Equal(t, t0, c.CreatedAt)
	assert.Equal(t, t0.Add(15*24*time.Hour), c.DueAt)
	assert.Equal(t, citizenID, c.OwnerID)
	assert.Nil(t, c.AssignedOfficerID)
	assert.Nil(t, c.ResolvedAt)
	assert.Empty(t, c.Media)
}

func TestSubmitComplaint_UniqueIDs(t *testing.T) {
	f := newComplaintFixture()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		c := f.submit(t)
		assert.False(t, seen[c.ComplaintID], "duplicate id %s", c.ComplaintID)
		seen[c.ComplaintID] = true
	}
}

func TestSubmitComplaint_StoresMediaInOrder(t *testing.T) {
	f := newComplaintFixture()
	first := domain.MediaRef{Type: domain.MediaImage, URL: "/uploads/a.png", ReferenceID: "a.png"}
	second := domain.MediaRef{Type: domain.MediaVideo, URL: "/uploads/b.mp4", ReferenceID: "b.mp4"}
	f.media.On("Store", mock.Anything, []byte("a"), "image/png").Return(first, nil).Once()
	f.media.On("Store", mock.Anything, []byte("b"), "video/mp4").Return(second, nil).Once()

	input := validInput()
	input.Media = []MediaUpload{{Data: []byte("a"), MimeType: "image/png"}, {Data: []byte("b"), MimeType: "video/mp4"}}

	c, err := f.svc.SubmitComplaint(context.Background(), citizenID, input)
	require.NoError(t, err)
	assert.Equal(t, []domain.MediaRef{first, second}, c.Media)
	f.media.AssertExpectations(t)
}

func TestSubmitComplaint_MediaRejected(t *testing.T) {
	f := newComplaintFixture()
	f.media.On("Store", mock.Anything, mock.Anything, "application/pdf").
		Return(domain.MediaRef{}, errors.Join(domain.ErrValidation, domain.ErrUnsupportedMedia))

	input := validInput()
	input.Media = []MediaUpload{{Data: []byte("%PDF"), MimeType: "application/pdf"}}

	_, err := f.svc.SubmitComplaint(context.Background(), citizenID, input)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedMedia))

	n, _ := f.repo.Count(context.Background())
	assert.Zero(t, n)
}

func TestSubmitComplaint_DiscardsStoredMediaOnUploadFailure(t *testing.T) {
	f := newComplaintFixture()
	first := domain.MediaRef{Type: domain.MediaImage, URL: "/uploads/a.png", ReferenceID: "a.png"}
	f.media.On("Store", mock.Anything, []byte("a"), "image/png").Return(first, nil).Once()
	f.media.On("Store", mock.Anything, []byte("b"), "video/mp4").
		Return(domain.MediaRef{}, fmt.Errorf("%w: upload failed", domain.ErrCollaborator)).Once()
	f.media.On("Delete", mock.Anything, "a.png").Return(nil).Once()

	input := validInput()
	input.Media = []MediaUpload{{Data: []byte("a"), MimeType: "image/png"}, {Data: []byte("b"), MimeType: "video/mp4"}}

	_, err := f.svc.SubmitComplaint(context.Background(), citizenID, input)
	assert.True(t, errors.Is(err, domain.ErrCollaborator))

	n, _ := f.repo.Count(context.Background())
	assert.Zero(t, n)
	f.media.AssertExpectations(t)
}

func TestSubmitComplaint_DiscardsStoredMediaOnInsertFailure(t *testing.T) {
	users := memUsers{citizenID: {ID: citizenID, Role: domain.RoleUser}}
	repo := new(mocks.MockComplaintRepository)
	media := new(mocks.MockMediaStore)
	svc := NewComplaintService(repo, users, NewAuthorizationService(users), media)

	ref := domain.MediaRef{Type: domain.MediaImage, URL: "/uploads/a.png", ReferenceID: "a.png"}
	media.On("Store", mock.Anything, []byte("a"), "image/png").Return(ref, nil).Once()
	media.On("Delete", mock.Anything, "a.png").Return(nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("%w: db down", domain.ErrCollaborator))

	input := validInput()
	input.Media = []MediaUpload{{Data: []byte("a"), MimeType: "image/png"}}

	_, err := svc.SubmitComplaint(context.Background(), citizenID, input)
	assert.True(t, errors.Is(err, domain.ErrCollaborator))
	media.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestSubmitComplaint_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitComplaintInput)
	}{
		{"empty title", func(in *SubmitComplaintInput) { in.Title = "" }},
		{"empty description", func(in *SubmitComplaintInput) { in.Description = "" }},
		{"empty category", func(in *SubmitComplaintInput) { in.Category = "" }},
		{"unknown category", func(in *SubmitComplaintInput) { in.Category = "noise" }},
		{"empty address", func(in *SubmitComplaintInput) { in.Address = "" }},
		{"blank title", func(in *SubmitComplaintInput) { in.Title = "   " }},
		{"too many files", func(in *SubmitComplaintInput) { in.Media = make([]MediaUpload, MaxMediaPerComplaint+1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newComplaintFixture()
			input := validInput()
			tt.mutate(input)

			_, err := f.svc.SubmitComplaint(context.Background(), citizenID, input)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
			f.media.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitComplaint_StaffDenied(t *testing.T) {
	f := newComplaintFixture()
	_, err := f.svc.SubmitComplaint(context.Background(), officerID, validInput())
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestListOwnComplaints_RoundTrip(t *testing.T) {
	f := newComplaintFixture()
	input := validInput()
	_, err := f.svc.SubmitComplaint(context.Background(), citizenID, input)
	require.NoError(t, err)

	_, err = f.svc.SubmitComplaint(context.Background(), otherCitizenID, validInput())
	require.NoError(t, err)

	list, err := f.svc.ListOwnComplaints(context.Background(), citizenID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.CategoryRoadDamage, list[0].Category)
	assert.Equal(t, input.Title, list[0].Title)
	assert.Equal(t, input.Description, list[0].Description)
	assert.False(t, list[0].FeedbackPending)
	assert.False(t, list[0].Overdue)
}

func TestGetOwnComplaint_OtherOwnerIsNotFound(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)

	_, err := f.svc.GetOwnComplaint(context.Background(), otherCitizenID, c.ComplaintID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	got, err := f.svc.GetOwnComplaint(context.Background(), citizenID, c.ComplaintID)
	require.NoError(t, err)
	assert.Equal(t, c.ComplaintID, got.ComplaintID)
}

func TestAssignComplaint(t *testing.T) {
	for _, caller := range []uint{officerID, adminID} {
		f := newComplaintFixture()
		c := f.submit(t)

		got, err := f.svc.AssignComplaint(context.Background(), caller, c.ComplaintID, officerID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAssigned, got.Status)
		require.NotNil(t, got.AssignedOfficerID)
		assert.Equal(t, officerID, *got.AssignedOfficerID)
	}
}

func TestAssignComplaint_UserDenied(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)

	_, err := f.svc.AssignComplaint(context.Background(), citizenID, c.ComplaintID, officerID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	stored, _ := f.repo.GetByComplaintID(context.Background(), c.ComplaintID)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestAssignComplaint_Errors(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)

	_, err := f.svc.AssignComplaint(context.Background(), adminID, "CMP-0000000000000000", officerID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "unknown complaint")

	_, err = f.svc.AssignComplaint(context.Background(), adminID, c.ComplaintID, 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "unknown officer")

	_, err = f.svc.AssignComplaint(context.Background(), adminID, c.ComplaintID, citizenID)
	assert.True(t, errors.Is(err, domain.ErrValidation), "citizen as officer")

	_, err = f.svc.AssignComplaint(context.Background(), adminID, c.ComplaintID, 0)
	assert.True(t, errors.Is(err, domain.ErrValidation), "missing officer")
}

func TestAssignComplaint_ReassignOverwrites(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)

	_, err := f.svc.AssignComplaint(context.Background(), adminID, c.ComplaintID, officerID)
	require.NoError(t, err)
	got, err := f.svc.AssignComplaint(context.Background(), adminID, c.ComplaintID, adminID)
	require.NoError(t, err)
	assert.Equal(t, adminID, *got.AssignedOfficerID)
}

func TestAssignComplaint_RejectedOnceResolved(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)
	_, err := f.svc.UpdateComplaintStatus(context.Background(), officerID, c.ComplaintID, &UpdateStatusInput{Status: "resolved"})
	require.NoError(t, err)

	_, err = f.svc.AssignComplaint(context.Background(), adminID, c.ComplaintID, officerID)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

func TestUpdateComplaintStatus(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)

	_, err := f.svc.UpdateComplaintStatus(context.Background(), officerID, c.ComplaintID, &UpdateStatusInput{Status: "archived"})
	assert.True(t, errors.Is(err, domain.ErrValidation), "unknown status")

	_, err = f.svc.UpdateComplaintStatus(context.Background(), citizenID, c.ComplaintID, &UpdateStatusInput{Status: "closed"})
	assert.True(t, errors.Is(err, domain.ErrForbidden), "citizen")

	_, err = f.svc.UpdateComplaintStatus(context.Background(), officerID, "CMP-MISSING", &UpdateStatusInput{Status: "closed"})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "unknown complaint")

	f.clock.advance(time.Hour)
	got, err := f.svc.UpdateComplaintStatus(context.Background(), officerID, c.ComplaintID, &UpdateStatusInput{
		Status:          "resolved",
		ResolutionProof: []ProofInput{{Type: "image", URL: "/uploads/after.jpg"}, {URL: "/uploads/after2.jpg"}},
	})
	require.NoError(t, err)
	require.NotNil(t, got.ResolvedAt)
	assert.Equal(t, t0.Add(time.Hour), *got.ResolvedAt)
	require.Len(t, got.ResolutionProof, 2)
	assert.Equal(t, domain.MediaImage, got.ResolutionProof[1].Type)

	_, err = f.svc.UpdateComplaintStatus(context.Background(), officerID, c.ComplaintID, &UpdateStatusInput{Status: "in_progress"})
	assert.True(t, errors.Is(err, domain.ErrInvalidState), "backward")
}

func TestUpdateComplaintStatus_ProofNeedsURL(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)

	_, err := f.svc.UpdateComplaintStatus(context.Background(), officerID, c.ComplaintID, &UpdateStatusInput{
		Status:          "resolved",
		ResolutionProof: []ProofInput{{Type: "image"}},
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "url is required")

	stored, _ := f.repo.GetByComplaintID(context.Background(), c.ComplaintID)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestUpdateComplaintStatus_StaleVersionConflicts(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)

	stale, _ := f.repo.GetByComplaintID(context.Background(), c.ComplaintID)
	_, err := f.svc.AssignComplaint(context.Background(), adminID, c.ComplaintID, officerID)
	require.NoError(t, err)

	require.NoError(t, stale.TransitionTo(domain.StatusClosed, nil, t0))
	err = f.repo.Update(context.Background(), stale)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestSubmitMandatoryFeedback_RequiresClosed(t *testing.T) {
	for _, status := range []string{"assigned", "in_progress", "resolved"} {
		t.Run(status, func(t *testing.T) {
			f := newComplaintFixture()
			c := f.submit(t)
			_, err := f.svc.UpdateComplaintStatus(context.Background(), officerID, c.ComplaintID, &UpdateStatusInput{Status: status})
			require.NoError(t, err)

			_, err = f.svc.SubmitMandatoryFeedback(context.Background(), citizenID, c.ComplaintID, &FeedbackInput{Rating: 5, Comment: "ok"})
			assert.True(t, errors.Is(err, domain.ErrInvalidState), "got %v", err)
		})
	}

	t.Run("pending", func(t *testing.T) {
		f := newComplaintFixture()
		c := f.submit(t)
		_, err := f.svc.SubmitMandatoryFeedback(context.Background(), citizenID, c.ComplaintID, &FeedbackInput{Rating: 5, Comment: "ok"})
		assert.True(t, errors.Is(err, domain.ErrInvalidState))
	})
}

func TestSubmitMandatoryFeedback_Validation(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)
	_, err := f.svc.UpdateComplaintStatus(context.Background(), adminID, c.ComplaintID, &UpdateStatusInput{Status: "closed"})
	require.NoError(t, err)

	_, err = f.svc.SubmitMandatoryFeedback(context.Background(), citizenID, c.ComplaintID, &FeedbackInput{Rating: 4})
	assert.True(t, errors.Is(err, domain.ErrValidation), "missing comment")

	_, err = f.svc.SubmitMandatoryFeedback(context.Background(), citizenID, c.ComplaintID, &FeedbackInput{Rating: 6, Comment: "x"})
	assert.True(t, errors.Is(err, domain.ErrValidation), "rating out of range")

	_, err = f.svc.SubmitMandatoryFeedback(context.Background(), otherCitizenID, c.ComplaintID, &FeedbackInput{Rating: 4, Comment: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "not the owner")
}

func TestSubmitFeedback_Optional(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)

	_, err := f.svc.SubmitFeedback(context.Background(), citizenID, c.ComplaintID, &FeedbackInput{Rating: 3})
	assert.True(t, errors.Is(err, domain.ErrInvalidState), "still pending")

	_, err = f.svc.UpdateComplaintStatus(context.Background(), officerID, c.ComplaintID, &UpdateStatusInput{Status: "resolved"})
	require.NoError(t, err)

	got, err := f.svc.SubmitFeedback(context.Background(), citizenID, c.ComplaintID, &FeedbackInput{Rating: 3})
	require.NoError(t, err)
	require.NotNil(t, got.Feedback)
	assert.Equal(t, 3, got.Feedback.Rating)
	assert.Empty(t, got.Feedback.Comment)
	assert.Nil(t, got.MandatoryFeedback)

	got, err = f.svc.SubmitFeedback(context.Background(), citizenID, c.ComplaintID, &FeedbackInput{Rating: 5, Comment: "better now"})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Feedback.Rating, "resubmission overwrites")
}

func TestListAllComplaints(t *testing.T) {
	f := newComplaintFixture()
	first := f.submit(t)
	f.clock.advance(time.Minute)
	second := f.submit(t)
	_, err := f.svc.AssignComplaint(context.Background(), adminID, second.ComplaintID, officerID)
	require.NoError(t, err)

	out, err := f.svc.ListAllComplaints(context.Background(), officerID, &ListComplaintsInput{})
	require.NoError(t, err)
	require.Len(t, out.Complaints, 2)
	assert.Equal(t, second.ComplaintID, out.Complaints[0].ComplaintID, "newest first")
	assert.Equal(t, int64(2), out.Meta.Total)

	out, err = f.svc.ListAllComplaints(context.Background(), officerID, &ListComplaintsInput{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, out.Complaints, 1)
	assert.Equal(t, first.ComplaintID, out.Complaints[0].ComplaintID)

	_, err = f.svc.ListAllComplaints(context.Background(), officerID, &ListComplaintsInput{Category: "noise"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.svc.ListAllComplaints(context.Background(), citizenID, &ListComplaintsInput{})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestListAllComplaints_OverdueOnly(t *testing.T) {
	f := newComplaintFixture()
	f.submit(t)
	f.clock.advance(16 * 24 * time.Hour)
	f.submit(t)

	out, err := f.svc.ListAllComplaints(context.Background(), adminID, &ListComplaintsInput{OverdueOnly: true})
	require.NoError(t, err)
	require.Len(t, out.Complaints, 1)
	assert.True(t, out.Complaints[0].Overdue)
}

// Created at T0, assigned at +1h, resolved at +2d, closed at +3d, then the
// citizen owes mandatory feedback until it is submitted.
func TestComplaintLifecycleScenario(t *testing.T) {
	f := newComplaintFixture()
	ctx := context.Background()
	c := f.submit(t)

	f.clock.advance(time.Hour)
	got, err := f.svc.AssignComplaint(ctx, adminID, c.ComplaintID, officerID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, got.Status)

	f.clock.t = t0.Add(2 * 24 * time.Hour)
	got, err = f.svc.UpdateComplaintStatus(ctx, officerID, c.ComplaintID, &UpdateStatusInput{Status: "resolved"})
	require.NoError(t, err)
	require.NotNil(t, got.ResolvedAt)
	assert.Equal(t, t0.Add(2*24*time.Hour), *got.ResolvedAt)
	assert.False(t, got.IsOverdue(f.clock.now()))

	f.clock.t = t0.Add(3 * 24 * time.Hour)
	_, err = f.svc.UpdateComplaintStatus(ctx, adminID, c.ComplaintID, &UpdateStatusInput{Status: "closed"})
	require.NoError(t, err)

	list, err := f.svc.ListOwnComplaints(ctx, citizenID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].FeedbackPending)

	got, err = f.svc.SubmitMandatoryFeedback(ctx, citizenID, c.ComplaintID, &FeedbackInput{Rating: 4, Comment: "Fixed well"})
	require.NoError(t, err)
	require.NotNil(t, got.MandatoryFeedback)
	assert.Equal(t, 4, got.MandatoryFeedback.Rating)
	assert.Equal(t, "Fixed well", got.MandatoryFeedback.Comment)
	assert.Equal(t, f.clock.now(), got.MandatoryFeedback.SubmittedAt)

	list, err = f.svc.ListOwnComplaints(ctx, citizenID)
	require.NoError(t, err)
	assert.False(t, list[0].FeedbackPending)
}

func TestGetComplaint_StaffOnly(t *testing.T) {
	f := newComplaintFixture()
	c := f.submit(t)

	view, err := f.svc.GetComplaint(context.Background(), officerID, c.ComplaintID)
	require.NoError(t, err)
	assert.Equal(t, c.ComplaintID, view.ComplaintID)
	assert.False(t, view.Overdue)

	_, err = f.svc.GetComplaint(context.Background(), citizenID, c.ComplaintID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = f.svc.GetComplaint(context.Background(), adminID, "CMP-MISSING")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
