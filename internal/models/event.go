package models

// Audit event actions published to Kafka.
const (
	ActionUserRegistered         = "user.registered"
	ActionPasswordResetRequested = "user.password_reset_requested"
	ActionPasswordReset          = "user.password_reset"
)

// UserEvent is an audit record describing an account lifecycle change.
type UserEvent struct {
	EventID   string `json:"event_id"`  // Unique event ID
	UserID    string `json:"user_id"`   // Affected user
	Email     string `json:"email"`     // User email at event time
	Action    string `json:"action"`    // One of the Action* constants
	Timestamp int64  `json:"timestamp"` // Unix timestamp
}
