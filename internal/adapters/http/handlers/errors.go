package handlers

import (
	"errors"
	"strings"

	"ecoreport/internal/core/domain"
	"ecoreport/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// respondError maps a service error to its HTTP status and stable code.
// Anything unrecognised is logged and reported as a 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return response.BadRequest(c, clientMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, clientMessage(err))
	case errors.Is(err, domain.ErrInvalidState):
		return response.UnprocessableEntity(c, clientMessage(err))
	case errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, "The complaint was changed by someone else, reload and try again")
	}

	log.Errorf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, "Internal Server Error")
}

// clientMessage drops the sentinel prefix, leaving the detail
func clientMessage(err error) string {
	msg := err.Error()
	for _, kind := range []error{domain.ErrValidation, domain.ErrNotFound, domain.ErrInvalidState} {
		if rest, ok := strings.CutPrefix(msg, kind.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

// currentUserID reads the principal set by AuthMiddleware
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}
