package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{
		Timestamp: time.Now(),
		Direction: DirectionIn,
		Layer:     LayerTransport,
		Category:  CategoryMessage,
	}
	logger.Log(event)

	event.Frame = &FrameEvent{Size: 100}
	logger.Log(event)

	event.Frame = nil
	event.Gate = &GateEvent{Gate: GateButton}
	logger.Log(event)

	event.Gate = nil
	event.Error = &ErrorEventData{Message: "test error"}
	logger.Log(event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}
