package db

import (
	"time"

	"github.com/plantracker/plantracker/internal/models"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	database *gorm.DB
}

func NewActivityRepository(database *gorm.DB) *ActivityRepository {
	return &ActivityRepository{database: database}
}

func (repo *ActivityRepository) FindByID(userID uint, activityID uint) (models.Activity, error) {
	var activity models.Activity
	if err := repo.database.Preload("Tags").
		Where("user_id = ?", userID).
		First(&activity, activityID).Error; err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}

func (repo *ActivityRepository) ListByUser(userID uint, skip int, limit int, tagName string) ([]models.Activity, error) {
	query := repo.database.Preload("Tags").Where("activities.user_id = ?", userID)

	if tagName != "" {
		query = query.
			Joins("JOIN activity_tags ON activity_tags.activity_id = activities.id").
			Joins("JOIN tags ON tags.id = activity_tags.tag_id").
			Where("tags.name = ?", tagName)
	}
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	activities := make([]models.Activity, 0)
	if err := query.Order("activities.id ASC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (repo *ActivityRepository) Create(activity *models.Activity) error {
	return repo.database.Create(activity).Error
}

func (repo *ActivityRepository) Save(activity *models.Activity) error {
	return repo.database.Save(activity).Error
}

func (repo *ActivityRepository) ReplaceTags(activity *models.Activity, tags []models.Tag) error {
	if err := repo.database.Model(activity).Association("Tags").Replace(tags); err != nil {
		return err
	}
	activity.Tags = tags
	return nil
}

func (repo *ActivityRepository) Delete(userID uint, activityID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var activity models.Activity
		if err := tx.Where("user_id = ?", userID).First(&activity, activityID).Error; err != nil {
			return err
		}
		if err := tx.Model(&activity).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&activity).Error
	})
}

// FindRunningByUser returns the user's running activity, assuming at most
// one timer runs per user at a time.
func (repo *ActivityRepository) FindRunningByUser(userID uint) (models.Activity, error) {
	var activity models.Activity
	if err := repo.database.
		Where("user_id = ? AND timer_status = ?", userID, models.TimerRunning).
		Order("last_timer_start DESC").
		First(&activity).Error; err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}

// ListUpcoming returns stopped, not-yet-notified activities scheduled to
// start inside [from, to).
func (repo *ActivityRepository) ListUpcoming(from time.Time, to time.Time) ([]models.Activity, error) {
	activities := make([]models.Activity, 0)
	if err := repo.database.
		Where("scheduled_time >= ? AND scheduled_time < ?", from, to).
		Where("timer_status = ? AND notified = ?", models.TimerStopped, false).
		Order("scheduled_time ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// MarkNotified flips only the notified flag so the write cannot clobber a
// concurrent timer-state change on the same row.
func (repo *ActivityRepository) MarkNotified(activityID uint) error {
	return repo.database.Model(&models.Activity{}).
		Where("id = ?", activityID).
		Update("notified", true).Error
}

// UpdateTimerState runs a read-modify-write of the activity's timer fields
// inside one transaction. SQLite's single-writer transactions serialize
// concurrent timer actions on the same activity, so elapsed seconds are
// never counted twice against a stale last_timer_start.
func (repo *ActivityRepository) UpdateTimerState(userID uint, activityID uint, mutate func(activity *models.Activity) error) (models.Activity, error) {
	var activity models.Activity
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Tags").
			Where("user_id = ?", userID).
			First(&activity, activityID).Error; err != nil {
			return err
		}
		if err := mutate(&activity); err != nil {
			return err
		}
		return tx.Model(&models.Activity{}).
			Where("id = ?", activity.ID).
			Updates(map[string]any{
				"timer_status":     activity.TimerStatus,
				"last_timer_start": activity.LastTimerStart,
				"recorded_time":    activity.RecordedTime,
			}).Error
	})
	if err != nil {
		return models.Activity{}, err
	}
	return activity, nil
}
