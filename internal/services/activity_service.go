package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/plantracker/plantracker/internal/models"
)

// ActivityRepository is the slice of the activity store the service needs.
type ActivityRepository interface {
	FindByID(userID uint, activityID uint) (models.Activity, error)
	ListByUser(userID uint, skip int, limit int, tagName string) ([]models.Activity, error)
	Create(activity *models.Activity) error
	Save(activity *models.Activity) error
	ReplaceTags(activity *models.Activity, tags []models.Tag) error
	Delete(userID uint, activityID uint) error
	UpdateTimerState(userID uint, activityID uint, mutate func(activity *models.Activity) error) (models.Activity, error)
}

type TagResolver interface {
	FindOrCreateByName(name string) (models.Tag, error)
}

// TimerNotifier delivers a best-effort message to a user's linked chat.
// Implementations must never fail the caller: a false return is logged by
// the notifier itself and means nothing was delivered.
type TimerNotifier interface {
	Notify(userID uint, message string) bool
}

type ActivityInput struct {
	Title         string
	Description   string
	Tags          []string
	EndTime       *time.Time
	ScheduledTime *time.Time
}

type ActivityService struct {
	activities ActivityRepository
	tags       TagResolver
	notifier   TimerNotifier
	now        func() time.Time
}

func NewActivityService(activities ActivityRepository, tags TagResolver, notifier TimerNotifier) *ActivityService {
	return &ActivityService{
		activities: activities,
		tags:       tags,
		notifier:   notifier,
		now:        time.Now,
	}
}

// WithClock overrides the service clock; tests use it to make elapsed-time
// accounting deterministic.
func (service *ActivityService) WithClock(now func() time.Time) *ActivityService {
	service.now = now
	return service
}

func (service *ActivityService) List(userID uint, skip int, limit int, tagName string) ([]models.Activity, error) {
	return service.activities.ListByUser(userID, skip, limit, tagName)
}

func (service *ActivityService) Get(userID uint, activityID uint) (models.Activity, error) {
	return service.activities.FindByID(userID, activityID)
}

func (service *ActivityService) Create(userID uint, input ActivityInput) (models.Activity, error) {
	activity := models.Activity{
		UserID:        userID,
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		StartTime:     service.now(),
		EndTime:       input.EndTime,
		ScheduledTime: input.ScheduledTime,
		TimerStatus:   models.TimerInitial,
	}

	tags, err := service.resolveTags(input.Tags)
	if err != nil {
		return models.Activity{}, err
	}
	activity.Tags = tags

	if err := service.activities.Create(&activity); err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}

func (service *ActivityService) Update(userID uint, activityID uint, input ActivityInput) (models.Activity, error) {
	activity, err := service.activities.FindByID(userID, activityID)
	if err != nil {
		return models.Activity{}, err
	}

	activity.Title = strings.TrimSpace(input.Title)
	activity.Description = input.Description
	if input.EndTime != nil {
		activity.EndTime = input.EndTime
	}
	if input.ScheduledTime != nil {
		activity.ScheduledTime = input.ScheduledTime
		activity.Notified = false
	}

	tags, err := service.resolveTags(input.Tags)
	if err != nil {
		return models.Activity{}, err
	}
	if err := service.activities.ReplaceTags(&activity, tags); err != nil {
		return models.Activity{}, err
	}

	if err := service.activities.Save(&activity); err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}

func (service *ActivityService) Delete(userID uint, activityID uint) error {
	return service.activities.Delete(userID, activityID)
}

// ApplyTimer runs one timer action against the activity inside the store's
// read-modify-write transaction, then announces real transitions to the
// owner's linked chat. Delivery is fire-and-forget: the timer mutation is
// already durable before the notifier runs, and a failed send only logs.
func (service *ActivityService) ApplyTimer(userID uint, activityID uint, action string) (models.Activity, error) {
	now := service.now()

	notify := false
	activity, err := service.activities.UpdateTimerState(userID, activityID, func(activity *models.Activity) error {
		transitioned, err := ApplyTimerAction(activity, action, now)
		notify = transitioned
		return err
	})
	if err != nil {
		return models.Activity{}, err
	}

	if notify && service.notifier != nil {
		message := timerEventMessage(&activity, action)
		go service.notifier.Notify(activity.UserID, message)
	}

	return activity, nil
}

func (service *ActivityService) resolveTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, duplicate := seen[trimmed]; duplicate {
			continue
		}
		seen[trimmed] = struct{}{}

		tag, err := service.tags.FindOrCreateByName(trimmed)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func timerEventMessage(activity *models.Activity, action string) string {
	switch action {
	case TimerActionStart:
		return fmt.Sprintf("Timer started for '%s'", activity.Title)
	case TimerActionPause:
		return fmt.Sprintf("Timer paused for '%s'. Total time: %s", activity.Title, FormatDuration(activity.RecordedTime))
	default:
		return fmt.Sprintf("Timer stopped for '%s'. Total time: %s", activity.Title, FormatDuration(activity.RecordedTime))
	}
}
