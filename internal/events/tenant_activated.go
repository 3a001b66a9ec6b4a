package events

import "time"

const TenantLifecycleTopic = "clinic.tenant.lifecycle.v1"

type TenantActivatedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	TenantID    uint      `json:"tenant_id"`
	Slug        string    `json:"slug"`
	CompanyName string    `json:"company_name"`
	OccurredAt  time.Time `json:"occurred_at"`
}
