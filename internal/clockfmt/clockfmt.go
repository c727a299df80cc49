// Package clockfmt renders durations the way they appear on a scoreboard.
package clockfmt

import "fmt"

// MMSS renders a millisecond duration as mm:ss, floor-truncated to whole
// seconds with both fields zero-padded to two digits. Negative durations
// render as 00:00.
func MMSS(ms int64) string {
	if ms < 0 {
		ms = 0
	}

	totalSeconds := ms / 1000
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
