package models

import (
	"testing"
	"time"
)

func TestElapsedSecondsWhileRunning(t *testing.T) {
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	activity := Activity{TimerStatus: TimerRunning, LastTimerStart: &started, RecordedTime: 100}

	if got := activity.ElapsedSeconds(started.Add(25 * time.Second)); got != 125 {
		t.Fatalf("expected 125 seconds, got %d", got)
	}
}

func TestElapsedSecondsWhenNotRunning(t *testing.T) {
	activity := Activity{TimerStatus: TimerPaused, RecordedTime: 100}

	if got := activity.ElapsedSeconds(time.Now()); got != 100 {
		t.Fatalf("expected recorded time only, got %d", got)
	}
}

func TestElapsedSecondsClampsClockSkew(t *testing.T) {
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	activity := Activity{TimerStatus: TimerRunning, LastTimerStart: &started, RecordedTime: 100}

	if got := activity.ElapsedSeconds(started.Add(-time.Minute)); got != 100 {
		t.Fatalf("expected backwards clock ignored, got %d", got)
	}
}

func TestElapsedSecondsRunningWithoutStartMarker(t *testing.T) {
	activity := Activity{TimerStatus: TimerRunning, RecordedTime: 7}

	if got := activity.ElapsedSeconds(time.Now()); got != 7 {
		t.Fatalf("expected recorded time only, got %d", got)
	}
}

func TestLinkedUser(t *testing.T) {
	chat := "424242"
	empty := ""

	cases := []struct {
		name string
		user User
		want bool
	}{
		{"nil chat id", User{}, false},
		{"empty chat id", User{TelegramChatID: &empty}, false},
		{"bound chat id", User{TelegramChatID: &chat}, true},
	}
	for _, tc := range cases {
		if got := tc.user.Linked(); got != tc.want {
			t.Errorf("%s: Linked() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
