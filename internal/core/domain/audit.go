package domain

import "time"

// AuditEvent records a mutation applied to a contact.
type AuditEvent struct {
	Action     Action    `json:"action" bson:"action"`
	ContactID  string    `json:"contact_id" bson:"contact_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}
