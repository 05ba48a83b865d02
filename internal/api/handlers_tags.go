package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/plantracker/plantracker/internal/services"
	"gorm.io/gorm"
)

type tagInput struct {
	Name string `json:"name"`
}

func (handler *Handler) ListTags(c *fiber.Ctx) error {
	tags, err := handler.tagService.List()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load tags")
	}
	return c.JSON(tags)
}

func (handler *Handler) CreateTag(c *fiber.Ctx) error {
	var input tagInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}

	tag, err := handler.tagService.Create(input.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTagName) {
			return apiError(c, fiber.StatusBadRequest, "Tag name must not be empty")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to create tag")
	}
	return c.JSON(tag)
}

func (handler *Handler) DeleteTag(c *fiber.Ctx) error {
	tagID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid tag id")
	}

	if err := handler.tagService.Delete(tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "Tag not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to delete tag")
	}
	return c.JSON(fiber.Map{"message": "Tag deleted successfully"})
}
