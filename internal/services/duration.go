package services

import "fmt"

// FormatDuration renders whole seconds as H:MM:SS. Hours are zero-padded
// to two digits but never truncated, so long-lived timers keep counting
// ("100:00:00").
func FormatDuration(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
