package clock

import "fmt"

// FormatClockTime formats milliseconds as MM:SS, or HH:MM:SS from one hour up.
// Seconds are rounded up so a fresh clock does not drop a second on its first frame.
func FormatClockTime(timeMs int64) string {
	if timeMs < 0 {
		timeMs = 0
	}

	totalSeconds := (timeMs + 999) / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
