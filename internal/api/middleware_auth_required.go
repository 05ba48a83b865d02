package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/plantracker/plantracker/internal/models"
)

// AuthRequired authenticates the bearer token and stashes the user in the
// request context. Ownership checks downstream rely on this user, so the
// middleware guards every non-auth route.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	rawToken := bearerToken(c)
	if rawToken == "" {
		return apiError(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	userID, err := handler.parseAccessToken(rawToken)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Could not validate credentials")
	}

	user, err := handler.authService.FindByID(userID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Could not validate credentials")
	}
	if !user.IsActive {
		return apiError(c, fiber.StatusUnauthorized, "Inactive user")
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
