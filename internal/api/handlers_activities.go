package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/plantracker/plantracker/internal/services"
	"gorm.io/gorm"
)

type activityInput struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Tags          []string   `json:"tags"`
	EndTime       *time.Time `json:"end_time"`
	ScheduledTime *time.Time `json:"scheduled_time"`
}

func (input *activityInput) toServiceInput() services.ActivityInput {
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	return services.ActivityInput{
		Title:         input.Title,
		Description:   input.Description,
		Tags:          tags,
		EndTime:       input.EndTime,
		ScheduledTime: input.ScheduledTime,
	}
}

func (handler *Handler) ListActivities(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	tag := c.Query("tag")

	activities, err := handler.activityService.List(user.ID, skip, limit, tag)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load activities")
	}
	return c.JSON(activities)
}

func (handler *Handler) CreateActivity(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var input activityInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if input.Title == "" {
		return apiError(c, fiber.StatusBadRequest, "Title must not be empty")
	}

	activity, err := handler.activityService.Create(user.ID, input.toServiceInput())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to create activity")
	}
	return c.JSON(activity)
}

func (handler *Handler) GetActivity(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	activityID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid activity id")
	}

	activity, err := handler.activityService.Get(user.ID, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "Activity not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to load activity")
	}
	return c.JSON(activity)
}

func (handler *Handler) UpdateActivity(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	activityID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid activity id")
	}

	var input activityInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if input.Title == "" {
		return apiError(c, fiber.StatusBadRequest, "Title must not be empty")
	}

	activity, err := handler.activityService.Update(user.ID, activityID, input.toServiceInput())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "Activity not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to update activity")
	}
	return c.JSON(activity)
}

func (handler *Handler) DeleteActivity(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	activityID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid activity id")
	}

	if err := handler.activityService.Delete(user.ID, activityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "Activity not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to delete activity")
	}
	return c.JSON(fiber.Map{"message": "Activity deleted successfully"})
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	raw, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}
