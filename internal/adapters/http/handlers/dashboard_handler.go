package handlers

import (
	"ecoreport/internal/core/services"
	"ecoreport/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns complaint counts for staff
// @Summary Staff Dashboard
// @Description Totals by status, overdue count and complaints assigned to the caller (Officer/Admin only)
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats, err := h.dashboardService.GetDashboardStats(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Dashboard retrieved successfully", toDashboardResponse(stats))
}
