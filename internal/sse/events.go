package sse

// SSE event type constants
const (
	EventPhase         = "phase"
	EventTimerTick     = "timer-tick"
	EventTimerWarning  = "timer-warning"
	EventTimerExpired  = "timer-expired"
	EventVoteRecorded  = "vote-recorded"
	EventSessionClosed = "session-closed"
	EventErrorMessage  = "error-message"
)

// BufferSize is the buffer size for SSE message channels
const BufferSize = 16
