package log

import "testing"

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := sampleEvent(1)
	logger.Log(event)

	event.Error = &ErrorEventData{Stage: StagePublish, Message: "boom"}
	logger.Log(event)
}

func TestLoggerInterfaceSatisfaction(t *testing.T) {
	var _ Logger = NoopLogger{}
	var _ Logger = &NoopLogger{}
	var _ Logger = (*Latest)(nil)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}
