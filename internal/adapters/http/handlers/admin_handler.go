package handlers

import (
	"strconv"
	"time"

	"ecoreport/internal/core/services"
	"ecoreport/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles staff complaint management endpoints
type AdminHandler struct {
	complaintService *services.ComplaintService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(complaintService *services.ComplaintService) *AdminHandler {
	return &AdminHandler{
		complaintService: complaintService,
	}
}

// AssignRequest represents assign request body
type AssignRequest struct {
	OfficerID uint `json:"officer_id"`
}

// ProofRequest is one resolution-proof reference
type ProofRequest struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// UpdateStatusRequest represents status update request body
type UpdateStatusRequest struct {
	Status          string         `json:"status"`
	ResolutionProof []ProofRequest `json:"resolution_proof"`
}

// ListComplaints lists every complaint
// @Summary List all complaints
// @Description List complaints with optional filters (Officer/Admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param officer_id query int false "Filter by assigned officer"
// @Param overdue query bool false "Only overdue complaints"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/complaints [get]
func (h *AdminHandler) ListComplaints(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.ListComplaintsInput{
		Page:        c.QueryInt("page", 1),
		Limit:       c.QueryInt("limit", 20),
		Status:      c.Query("status"),
		Category:    c.Query("category"),
		OverdueOnly: c.QueryBool("overdue", false),
	}
	if raw := c.Query("officer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return response.BadRequest(c, "officer_id must be a positive integer")
		}
		officerID := uint(id)
		input.OfficerID = &officerID
	}

	result, err := h.complaintService.ListAllComplaints(c.UserContext(), userID, input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Complaints retrieved successfully", fiber.Map{
		"complaints": fromViews(result.Complaints),
		"meta":       result.Meta,
	})
}

// GetComplaint returns any complaint
// @Summary Get complaint
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param complaintId path string true "Complaint ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/complaints/{complaintId} [get]
func (h *AdminHandler) GetComplaint(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	view, err := h.complaintService.GetComplaint(c.UserContext(), userID, c.Params("complaintId"))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Complaint retrieved successfully", fromView(view))
}

// Assign hands a complaint to an officer
// @Summary Assign complaint
// @Description Assign a complaint to an officer (Admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param complaintId path string true "Complaint ID"
// @Param body body AssignRequest true "Officer"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/complaints/{complaintId}/assign [put]
func (h *AdminHandler) Assign(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	complaint, err := h.complaintService.AssignComplaint(c.UserContext(), userID, c.Params("complaintId"), req.OfficerID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Complaint assigned successfully", toComplaintResponse(complaint, time.Now()))
}

// UpdateStatus moves a complaint through its lifecycle
// @Summary Update complaint status
// @Description Move a complaint forward. Resolution proof may accompany resolved or closed.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param complaintId path string true "Complaint ID"
// @Param body body UpdateStatusRequest true "Status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/complaints/{complaintId}/status [put]
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateStatusInput{Status: req.Status}
	for _, p := range req.ResolutionProof {
		input.ResolutionProof = append(input.ResolutionProof, services.ProofInput{Type: p.Type, URL: p.URL})
	}

	complaint, err := h.complaintService.UpdateComplaintStatus(c.UserContext(), userID, c.Params("complaintId"), input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Complaint status updated successfully", toComplaintResponse(complaint, time.Now()))
}
