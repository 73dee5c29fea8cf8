package middleware

import (
	"errors"
	"strings"

	"ecoreport/internal/core/domain"
	"ecoreport/internal/core/services"
	"ecoreport/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware resolves the caller from the access token and stores the
// user ID in c.Locals("userID"). Roles are checked later by the services.
func AuthMiddleware(verifier services.CredentialVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		userID, err := verifier.ResolvePrincipal(c.UserContext(), accessToken)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

// bearerToken reads the access token from the cookie, then the Authorization header
func bearerToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
