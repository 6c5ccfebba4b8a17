package redisstream

import "time"

// Event types
const (
	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"
)

// DefaultStream is the stream account events are appended to.
const DefaultStream = "account.events"

// Event is the envelope stored under the "event" field of each stream entry.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// AccountEvent carries the full record for created and updated events.
type AccountEvent struct {
	AccountID  string         `json:"accountId"`
	Attributes map[string]any `json:"attributes"`
}

type AccountDeletedEvent struct {
	AccountID string `json:"accountId"`
}
