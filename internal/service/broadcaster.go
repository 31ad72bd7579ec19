package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
	DisconnectSession(sessionID string)
}

// Push event types
const (
	EventEvaluationPending = "evaluation_pending"
	EventEvaluationResult  = "evaluation_result"
	EventEvaluationFailed  = "evaluation_failed"
	EventLevelChanged      = "level_changed"
	EventSessionUpdated    = "session_updated"
)

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastToSession(string, string, interface{}) {}
func (noopBroadcaster) DisconnectSession(string)                       {}
