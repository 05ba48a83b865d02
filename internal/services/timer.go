package services

import (
	"errors"
	"time"

	"github.com/plantracker/plantracker/internal/models"
)

// Timer actions accepted by ApplyTimerAction.
const (
	TimerActionStart = "start"
	TimerActionPause = "pause"
	TimerActionStop  = "stop"
	TimerActionSave  = "save"
)

var (
	// ErrTimerNotRunning rejects pause on a timer that is not running.
	ErrTimerNotRunning = errors.New("Timer not running")
	// ErrInvalidTimerAction rejects an unrecognized action token.
	ErrInvalidTimerAction = errors.New("Invalid timer action")
)

// ApplyTimerAction advances the activity's timer state machine in place.
//
// The current instant is always passed in by the caller so the transition
// function stays pure. The returned bool reports whether the action caused
// a transition worth announcing to a linked chat: idempotent no-ops and
// save checkpoints never notify. On error the activity is left untouched.
func ApplyTimerAction(activity *models.Activity, action string, now time.Time) (bool, error) {
	switch action {
	case TimerActionStart:
		if activity.TimerStatus == models.TimerRunning {
			// already running, idempotent
			return false, nil
		}
		start := now
		activity.TimerStatus = models.TimerRunning
		activity.LastTimerStart = &start
		return true, nil

	case TimerActionPause:
		if activity.TimerStatus != models.TimerRunning {
			return false, ErrTimerNotRunning
		}
		activity.RecordedTime += elapsedSince(activity.LastTimerStart, now)
		activity.TimerStatus = models.TimerPaused
		activity.LastTimerStart = nil
		return true, nil

	case TimerActionStop:
		switch activity.TimerStatus {
		case models.TimerStopped:
			// already stopped, idempotent
			return false, nil
		case models.TimerInitial:
			// never started; normalize the label without announcing anything
			activity.TimerStatus = models.TimerStopped
			return false, nil
		case models.TimerRunning:
			activity.RecordedTime += elapsedSince(activity.LastTimerStart, now)
		}
		activity.TimerStatus = models.TimerStopped
		activity.LastTimerStart = nil
		return true, nil

	case TimerActionSave:
		// checkpoint: fold the live interval into recorded_time without
		// stopping; a no-op unless the timer is running
		if activity.TimerStatus == models.TimerRunning {
			activity.RecordedTime += elapsedSince(activity.LastTimerStart, now)
			start := now
			activity.LastTimerStart = &start
		}
		return false, nil

	default:
		return false, ErrInvalidTimerAction
	}
}

// elapsedSince returns whole seconds between start and now, clamped at
// zero so clock skew can never subtract recorded time.
func elapsedSince(start *time.Time, now time.Time) int64 {
	if start == nil {
		return 0
	}
	elapsed := int64(now.Sub(*start) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
