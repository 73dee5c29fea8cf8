package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"ecoreport/internal/core/domain"
	"ecoreport/internal/core/services"
	"ecoreport/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ComplaintHandler handles citizen complaint endpoints
type ComplaintHandler struct {
	complaintService *services.ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
	}
}

// FeedbackRequest represents feedback request body
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Submit files a new complaint
// @Summary Submit complaint
// @Description Submit a complaint with up to 5 image or video attachments (10MB each)
// @Tags Complaints
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param category formData string true "road_damage, tree_maintenance, infrastructure or other"
// @Param address formData string true "Address"
// @Param lat formData number false "Latitude"
// @Param lng formData number false "Longitude"
// @Param media formData file false "Attachments"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /complaints [post]
func (h *ComplaintHandler) Submit(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.SubmitComplaintInput{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Category:    c.FormValue("category"),
		Address:     strings.TrimSpace(c.FormValue("address")),
	}

	var err error
	if input.Lat, err = formFloat(c, "lat"); err != nil {
		return response.BadRequest(c, "lat must be a number")
	}
	if input.Lng, err = formFloat(c, "lng"); err != nil {
		return response.BadRequest(c, "lng must be a number")
	}

	// A plain urlencoded body carries no files
	if form, err := c.MultipartForm(); err == nil {
		files := form.File["media"]
		if len(files) > services.MaxMediaPerComplaint {
			return response.BadRequest(c, "You can upload at most 5 files")
		}
		for _, fh := range files {
			upload, err := readUpload(fh)
			if err != nil {
				return response.BadRequest(c, "Could not read uploaded file")
			}
			input.Media = append(input.Media, upload)
		}
	}

	complaint, err := h.complaintService.SubmitComplaint(c.UserContext(), userID, input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Complaint submitted successfully", toComplaintResponse(complaint, time.Now()))
}

// MyComplaints lists the caller's complaints
// @Summary List my complaints
// @Description List complaints filed by the current citizen, newest first
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /complaints/my [get]
func (h *ComplaintHandler) MyComplaints(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	views, err := h.complaintService.ListOwnComplaints(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Complaints retrieved successfully", fromViews(views))
}

// MyComplaint returns one of the caller's complaints
// @Summary Get my complaint
// @Tags Complaints
// @Produce json
// @Security BearerAuth
// @Param complaintId path string true "Complaint ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /complaints/my/{complaintId} [get]
func (h *ComplaintHandler) MyComplaint(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	view, err := h.complaintService.GetOwnComplaint(c.UserContext(), userID, c.Params("complaintId"))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Complaint retrieved successfully", fromView(view))
}

// SubmitFeedback records optional feedback
// @Summary Submit feedback
// @Description Rate a resolved or closed complaint. Resubmitting replaces the earlier feedback.
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param complaintId path string true "Complaint ID"
// @Param body body FeedbackRequest true "Feedback"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /complaints/{complaintId}/feedback [post]
func (h *ComplaintHandler) SubmitFeedback(c *fiber.Ctx) error {
	return h.feedback(c, h.complaintService.SubmitFeedback)
}

// SubmitMandatoryFeedback records the feedback required after closure
// @Summary Submit mandatory feedback
// @Description Rate a closed complaint. Rating and comment are both required.
// @Tags Complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param complaintId path string true "Complaint ID"
// @Param body body FeedbackRequest true "Feedback"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /complaints/{complaintId}/mandatory-feedback [post]
func (h *ComplaintHandler) SubmitMandatoryFeedback(c *fiber.Ctx) error {
	return h.feedback(c, h.complaintService.SubmitMandatoryFeedback)
}

type submitFeedbackFunc func(ctx context.Context, principalID uint, complaintID string, input *services.FeedbackInput) (*domain.Complaint, error)

func (h *ComplaintHandler) feedback(c *fiber.Ctx, submit submitFeedbackFunc) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	complaint, err := submit(c.UserContext(), userID, c.Params("complaintId"), &services.FeedbackInput{
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Feedback submitted successfully", toComplaintResponse(complaint, time.Now()))
}

func formFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readUpload(fh *multipart.FileHeader) (services.MediaUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return services.MediaUpload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.MediaUpload{}, err
	}
	return services.MediaUpload{Data: data, MimeType: fh.Header.Get("Content-Type")}, nil
}
