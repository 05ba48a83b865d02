package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/plantracker/plantracker/internal/db"
	"github.com/plantracker/plantracker/internal/services"
	"gorm.io/gorm"
)

const contextUserKey = "current_user"

type Handler struct {
	repositories *db.Repositories

	authService     *services.AuthService
	activityService *services.ActivityService
	tagService      *services.TagService

	secretKey []byte
	tokenTTL  time.Duration
}

// NewHandler wires the API against the database. The notifier may be nil
// when the bot is disabled; timer actions then simply skip announcements.
func NewHandler(database *gorm.DB, secretKey string, tokenTTL time.Duration, notifier services.TimerNotifier) *Handler {
	repositories := db.NewRepositories(database)
	return &Handler{
		repositories:    repositories,
		authService:     services.NewAuthService(repositories.Users),
		activityService: services.NewActivityService(repositories.Activities, repositories.Tags, notifier),
		tagService:      services.NewTagService(repositories.Tags),
		secretKey:       []byte(secretKey),
		tokenTTL:        tokenTTL,
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
