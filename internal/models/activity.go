package models

import "time"

// Timer states. Initial and stopped both mean "not running"; initial is
// only ever the state of an activity whose timer has never been started.
const (
	TimerInitial = "initial"
	TimerRunning = "running"
	TimerPaused  = "paused"
	TimerStopped = "stopped"
)

type Activity struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `json:"description"`
	StartTime     time.Time  `gorm:"not null" json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	ScheduledTime *time.Time `json:"scheduled_time"`

	TimerStatus    string     `gorm:"not null;default:initial" json:"timer_status"`
	LastTimerStart *time.Time `json:"last_timer_start"`
	RecordedTime   int64      `gorm:"not null;default:0" json:"recorded_time"`
	Notified       bool       `gorm:"not null;default:false" json:"notified"`

	Tags []Tag `gorm:"many2many:activity_tags" json:"tags"`
}

// Running reports whether the timer is currently accumulating time.
func (activity *Activity) Running() bool {
	return activity.TimerStatus == TimerRunning
}

// ElapsedSeconds returns the total tracked time at the given instant:
// recorded time plus the live interval when the timer is running. The
// live interval is clamped at zero so clock skew never subtracts time.
func (activity *Activity) ElapsedSeconds(now time.Time) int64 {
	total := activity.RecordedTime
	if activity.Running() && activity.LastTimerStart != nil {
		live := int64(now.Sub(*activity.LastTimerStart) / time.Second)
		if live > 0 {
			total += live
		}
	}
	return total
}
