package events

import "time"

const UserLifecycleTopic = "clinic.user.lifecycle.v1"

type UserCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	UserID     uint      `json:"user_id"`
	TenantID   uint      `json:"tenant_id"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}
