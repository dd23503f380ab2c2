// Package lockout implements the wrong-PIN delay and wipe policy.
//
// The policy is a pure function of the persisted failure counter: the wait
// before the next PIN prompt is 2^fails seconds, and once it reaches
// 2^MaxWrongPins seconds the credential store must be wiped. A clean counter
// is the one exception: it owes no wait at all rather than 2^0 = 1 s.
//
//	fails   wait
//	0       0 s (exception: no countdown)
//	1       2 s
//	3       8 s
//	14      16384 s
//	15      exhausted (wipe and halt)
//
// Attempts are counted
// before the PIN is compared, so a power cut between entry and comparison
// still costs an attempt.
package lockout

import (
	"fmt"
	"math"
)

// MaxWrongPins is the number of recorded failures that exhausts the device.
const MaxWrongPins = 15

// exhaustedWait is the first wait value that triggers a wipe.
const exhaustedWait uint64 = 1 << MaxWrongPins

// WaitSeconds returns the delay owed before the next PIN prompt: zero for a
// clean counter, 2^failCount otherwise. The result saturates at MaxUint64.
func WaitSeconds(failCount uint32) uint64 {
	if failCount == 0 {
		return 0
	}
	if failCount >= 64 {
		return math.MaxUint64
	}
	return 1 << failCount
}

// IsExhausted reports whether wait has reached the wipe threshold.
func IsExhausted(wait uint64) bool {
	return wait >= exhaustedWait
}

// Remaining returns how many more failures the device tolerates before it
// wipes itself.
func Remaining(failCount uint32) uint32 {
	if failCount >= MaxWrongPins {
		return 0
	}
	return MaxWrongPins - failCount
}

// FormatWait renders a countdown value for the display.
func FormatWait(secs uint64) string {
	if secs == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", secs)
}
