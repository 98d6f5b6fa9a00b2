package jobState

import (
	"snpscope/console/models/constants"
)

const (
	Idle       constants.JobState = "Idle"
	Submitting constants.JobState = "Submitting"
	Queued     constants.JobState = "Queued"
	Processing constants.JobState = "Processing"
	Completed  constants.JobState = "Completed"
	Failed     constants.JobState = "Failed"
)

func CastToJobState(text string) constants.JobState {
	switch text {
	case "Queued":
		return Queued
	case "Processing":
		return Processing
	case "Completed":
		return Completed
	case "Failed":
		return Failed
	default:
		return Idle
	}
}

func IsTerminal(state constants.JobState) bool {
	return state == Completed || state == Failed
}

// IsActive reports whether a job in this state still occupies
// the session's single job slot
func IsActive(state constants.JobState) bool {
	return state == Submitting || state == Queued || state == Processing
}

// Rank orders the lifecycle so that out-of-order status observations
// can be recognized (a lower-ranked observation is stale)
func Rank(state constants.JobState) int {
	switch state {
	case Submitting:
		return 1
	case Queued:
		return 2
	case Processing:
		return 3
	case Completed, Failed:
		return 4
	default:
		return 0
	}
}
