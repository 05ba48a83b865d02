package bot

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/plantracker/plantracker/internal/models"
)

const (
	defaultWatcherInterval = time.Minute
	defaultReminderWindow  = 10 * time.Minute
)

type watcherActivityStore interface {
	ListUpcoming(from time.Time, to time.Time) ([]models.Activity, error)
	MarkNotified(activityID uint) error
}

type watcherNotifier interface {
	Notify(userID uint, message string) bool
}

// Watcher periodically looks for stopped activities whose scheduled start
// falls inside the reminder window and sends a one-time reminder for each.
// It is a long-lived background job: per-cycle errors are logged and the
// loop keeps running.
type Watcher struct {
	activities watcherActivityStore
	notifier   watcherNotifier
	interval   time.Duration
	window     time.Duration
	now        func() time.Time

	mu        sync.Mutex
	scheduler gocron.Scheduler
}

func NewWatcher(activities watcherActivityStore, notifier watcherNotifier, interval time.Duration, window time.Duration) *Watcher {
	if interval <= 0 {
		interval = defaultWatcherInterval
	}
	if window <= 0 {
		window = defaultReminderWindow
	}
	return &Watcher{
		activities: activities,
		notifier:   notifier,
		interval:   interval,
		window:     window,
		now:        time.Now,
	}
}

// WithClock overrides the watcher clock for deterministic tests.
func (watcher *Watcher) WithClock(now func() time.Time) *Watcher {
	watcher.now = now
	return watcher
}

// Start launches the recurring sweep. Calling Start on a running watcher
// is a no-op.
func (watcher *Watcher) Start() error {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()

	if watcher.scheduler != nil {
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(watcher.interval),
		gocron.NewTask(watcher.Sweep),
	); err != nil {
		return fmt.Errorf("register reminder job: %w", err)
	}

	scheduler.Start()
	watcher.scheduler = scheduler
	return nil
}

// Stop shuts the sweep down. Safe to call repeatedly and before Start.
func (watcher *Watcher) Stop() {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()

	if watcher.scheduler == nil {
		return
	}
	if err := watcher.scheduler.Shutdown(); err != nil {
		log.Printf("watcher: scheduler shutdown failed: %v", err)
	}
	watcher.scheduler = nil
}

// Sweep runs one reminder cycle. Candidates are processed independently;
// one failure never aborts the rest. The notified flag is persisted only
// after a delivered send, so a reminder is never silently lost. At worst
// a crash between send and flag write repeats it once.
func (watcher *Watcher) Sweep() {
	now := watcher.now()

	upcoming, err := watcher.activities.ListUpcoming(now, now.Add(watcher.window))
	if err != nil {
		log.Printf("watcher: list upcoming activities failed: %v", err)
		return
	}

	for _, activity := range upcoming {
		message := fmt.Sprintf("Reminder: Task '%s' is scheduled to start in 10 minutes!", activity.Title)
		if !watcher.notifier.Notify(activity.UserID, message) {
			// unlinked owner or failed delivery; the candidate stays
			// eligible until it ages out of the window
			continue
		}
		if err := watcher.activities.MarkNotified(activity.ID); err != nil {
			log.Printf("watcher: mark activity %d notified failed: %v", activity.ID, err)
		}
	}
}
