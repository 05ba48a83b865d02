package bot

import (
	"errors"
	"testing"
	"time"

	"github.com/plantracker/plantracker/internal/models"
)

type fakeWatcherStore struct {
	upcoming []models.Activity
	listErr  error
	marked   []uint
	markErr  map[uint]error
}

func (store *fakeWatcherStore) ListUpcoming(from time.Time, to time.Time) ([]models.Activity, error) {
	if store.listErr != nil {
		return nil, store.listErr
	}
	var eligible []models.Activity
	for _, activity := range store.upcoming {
		if activity.Notified || activity.ScheduledTime == nil {
			continue
		}
		if activity.ScheduledTime.Before(from) || !activity.ScheduledTime.Before(to) {
			continue
		}
		eligible = append(eligible, activity)
	}
	return eligible, nil
}

func (store *fakeWatcherStore) MarkNotified(activityID uint) error {
	if err, ok := store.markErr[activityID]; ok {
		return err
	}
	store.marked = append(store.marked, activityID)
	for i := range store.upcoming {
		if store.upcoming[i].ID == activityID {
			store.upcoming[i].Notified = true
		}
	}
	return nil
}

type selectiveNotifier struct {
	refuse   map[uint]bool
	messages []string
	users    []uint
}

func (notifier *selectiveNotifier) Notify(userID uint, message string) bool {
	notifier.users = append(notifier.users, userID)
	notifier.messages = append(notifier.messages, message)
	return !notifier.refuse[userID]
}

func scheduledActivity(id uint, userID uint, title string, scheduled time.Time) models.Activity {
	return models.Activity{
		ID: id, UserID: userID, Title: title,
		TimerStatus: models.TimerStopped, ScheduledTime: &scheduled,
	}
}

func TestSweepSendsReminderAndMarksNotified(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeWatcherStore{upcoming: []models.Activity{
		scheduledActivity(1, 5, "Dentist", now.Add(5*time.Minute)),
	}}
	notifier := &selectiveNotifier{}

	watcher := NewWatcher(store, notifier, 0, 0).WithClock(func() time.Time { return now })
	watcher.Sweep()

	if len(notifier.messages) != 1 {
		t.Fatalf("expected one reminder, got %d", len(notifier.messages))
	}
	if notifier.messages[0] != "Reminder: Task 'Dentist' is scheduled to start in 10 minutes!" {
		t.Fatalf("unexpected reminder text: %q", notifier.messages[0])
	}
	if len(store.marked) != 1 || store.marked[0] != 1 {
		t.Fatalf("expected activity 1 marked notified, got %v", store.marked)
	}
}

func TestSweepIsExactlyOncePerActivity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeWatcherStore{upcoming: []models.Activity{
		scheduledActivity(1, 5, "Dentist", now.Add(5*time.Minute)),
	}}
	notifier := &selectiveNotifier{}

	watcher := NewWatcher(store, notifier, 0, 0).WithClock(func() time.Time { return now })
	watcher.Sweep()
	watcher.Sweep()

	if len(notifier.messages) != 1 {
		t.Fatalf("expected exactly one reminder across sweeps, got %d", len(notifier.messages))
	}
}

func TestSweepSkipsActivitiesOutsideWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeWatcherStore{upcoming: []models.Activity{
		scheduledActivity(1, 5, "Too late", now.Add(15*time.Minute)),
		scheduledActivity(2, 5, "Already due", now.Add(-time.Minute)),
		scheduledActivity(3, 5, "In window", now.Add(9*time.Minute)),
	}}
	notifier := &selectiveNotifier{}

	watcher := NewWatcher(store, notifier, 0, 0).WithClock(func() time.Time { return now })
	watcher.Sweep()

	if len(notifier.messages) != 1 {
		t.Fatalf("expected only the in-window activity, got %d reminders", len(notifier.messages))
	}
	if len(store.marked) != 1 || store.marked[0] != 3 {
		t.Fatalf("expected activity 3 marked, got %v", store.marked)
	}
}

func TestSweepFailedDeliveryStaysEligible(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeWatcherStore{upcoming: []models.Activity{
		scheduledActivity(1, 5, "Dentist", now.Add(5*time.Minute)),
	}}
	notifier := &selectiveNotifier{refuse: map[uint]bool{5: true}}

	watcher := NewWatcher(store, notifier, 0, 0).WithClock(func() time.Time { return now })
	watcher.Sweep()

	if len(store.marked) != 0 {
		t.Fatalf("undelivered reminder must not be marked notified, got %v", store.marked)
	}

	// the owner links their chat before the next sweep
	notifier.refuse = nil
	watcher.Sweep()
	if len(store.marked) != 1 {
		t.Fatalf("expected the retry to mark the activity, got %v", store.marked)
	}
}

func TestSweepOneFailureDoesNotAbortTheRest(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeWatcherStore{
		upcoming: []models.Activity{
			scheduledActivity(1, 5, "First", now.Add(2*time.Minute)),
			scheduledActivity(2, 6, "Second", now.Add(4*time.Minute)),
		},
		markErr: map[uint]error{1: errors.New("disk full")},
	}
	notifier := &selectiveNotifier{}

	watcher := NewWatcher(store, notifier, 0, 0).WithClock(func() time.Time { return now })
	watcher.Sweep()

	if len(notifier.messages) != 2 {
		t.Fatalf("expected both reminders attempted, got %d", len(notifier.messages))
	}
	if len(store.marked) != 1 || store.marked[0] != 2 {
		t.Fatalf("expected activity 2 still marked, got %v", store.marked)
	}
}

func TestSweepListFailureIsNonFatal(t *testing.T) {
	store := &fakeWatcherStore{listErr: errors.New("database locked")}
	notifier := &selectiveNotifier{}

	watcher := NewWatcher(store, notifier, 0, 0)
	watcher.Sweep()

	if len(notifier.messages) != 0 {
		t.Fatal("a failed listing must not produce reminders")
	}
}

func TestStartAndStopAreIdempotent(t *testing.T) {
	store := &fakeWatcherStore{}
	watcher := NewWatcher(store, &selectiveNotifier{}, time.Hour, time.Hour)

	if err := watcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := watcher.Start(); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	watcher.Stop()
	watcher.Stop()
}
