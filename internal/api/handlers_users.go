package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type userUpdateInput struct {
	Email          *string `json:"email"`
	TelegramChatID *string `json:"telegram_chat_id"`
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(user)
}

// UpdateMe changes the account email and the Telegram binding. Sending
// telegram_chat_id as an empty string is the explicit unlink: the binding
// is a single atomic field write either way.
func (handler *Handler) UpdateMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var input userUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email == "" {
			return apiError(c, fiber.StatusBadRequest, "Invalid email address")
		}
		if email != user.Email {
			exists, err := handler.authService.RegistrationEmailExists(email)
			if err != nil {
				return apiError(c, fiber.StatusInternalServerError, "Failed to update account")
			}
			if exists {
				return apiError(c, fiber.StatusBadRequest, "Email already registered")
			}
			user.Email = email
		}
	}

	if input.TelegramChatID != nil {
		chatID := strings.TrimSpace(*input.TelegramChatID)
		if chatID == "" {
			user.TelegramChatID = nil
		} else {
			user.TelegramChatID = &chatID
		}
	}

	if err := handler.authService.SaveUser(user); err != nil {
		return apiError(c, fiber.StatusConflict, "Telegram chat already linked to another account")
	}
	return c.JSON(user)
}
