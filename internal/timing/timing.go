// Package timing formats processing durations for logs.
package timing

import (
	"fmt"
	"time"
)

// Clock formats d as hh:mm:ss. Hours are not wrapped at 24.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Millis converts a millisecond count, as reported in model metrics, to a
// duration.
func Millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
