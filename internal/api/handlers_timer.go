package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/plantracker/plantracker/internal/services"
	"gorm.io/gorm"
)

type timerActionInput struct {
	Action string `json:"action"`
}

// TimerAction applies one start/pause/stop/save action to the activity's
// timer. Rejected actions leave the activity untouched and report the
// specific reason; only the owner's activities are reachable at all.
func (handler *Handler) TimerAction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	activityID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid activity id")
	}

	var input timerActionInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}

	activity, err := handler.activityService.ApplyTimer(user.ID, activityID, input.Action)
	switch {
	case err == nil:
		return c.JSON(activity)
	case errors.Is(err, services.ErrInvalidTimerAction):
		return apiError(c, fiber.StatusBadRequest, "Invalid timer action")
	case errors.Is(err, services.ErrTimerNotRunning):
		return apiError(c, fiber.StatusBadRequest, "Timer not running")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apiError(c, fiber.StatusNotFound, "Activity not found")
	default:
		return apiError(c, fiber.StatusInternalServerError, "Failed to apply timer action")
	}
}
