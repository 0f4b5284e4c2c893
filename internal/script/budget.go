package script

import "math"

// Speaking-rate model used for both word budgeting and timestamp estimates.
const (
	// WordsPerMinute is the assumed speaking rate.
	WordsPerMinute = 150
	// linesPerMinute estimates dialogue line count from target duration.
	linesPerMinute = 8
	// PauseSecondsPerLine is the silence inserted between rendered lines.
	PauseSecondsPerLine = 1.0
)

// TargetWordCount converts a target episode duration into a total word
// budget for the dialogue. Pause time between estimated lines is subtracted
// from the speaking time before applying the word rate. The result is not
// clamped: for very short durations it can be zero or negative, which
// downstream code treats as "no minimum enforced".
func TargetWordCount(minutes int) int {
	estimatedLines := minutes * linesPerMinute
	pauseSeconds := float64(estimatedLines) * PauseSecondsPerLine
	speechSeconds := float64(minutes*60) - pauseSeconds
	return int(math.Floor(speechSeconds * WordsPerMinute / 60.0))
}
