package models

// Progress checkpoints recognized by the system. A student starts at 0 and
// moves upward only; feedback is collected at every checkpoint except the
// starting one.
const (
	ProgressStart     = 0
	CheckpointTwenty  = 20
	CheckpointFifty   = 50
	CheckpointHundred = 100
)

// ProgressValues lists every legal completionPercentage value, in order.
var ProgressValues = []int{ProgressStart, CheckpointTwenty, CheckpointFifty, CheckpointHundred}

// FeedbackCheckpoints lists the checkpoints at which feedback may be submitted.
var FeedbackCheckpoints = []int{CheckpointTwenty, CheckpointFifty, CheckpointHundred}

// IsValidProgress reports whether v is a legal completionPercentage value.
func IsValidProgress(v int) bool {
	for _, p := range ProgressValues {
		if v == p {
			return true
		}
	}
	return false
}

// IsValidCheckpoint reports whether v is a checkpoint at which feedback may
// be submitted.
func IsValidCheckpoint(v int) bool {
	for _, c := range FeedbackCheckpoints {
		if v == c {
			return true
		}
	}
	return false
}
