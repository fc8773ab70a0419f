package domain

import "time"

// AuditEntry is one administrator-facing activity line. Written once per
// dispatch, distinct from both the broadcast record and the per-recipient
// notifications; deleting either never affects the others.
type AuditEntry struct {
	EntryID   string           `json:"id" dynamodbav:"entry_id"`
	Type      NotificationType `json:"type" dynamodbav:"type"`
	Title     string           `json:"title" dynamodbav:"title"`
	Message   string           `json:"message" dynamodbav:"message"`
	Read      bool             `json:"read" dynamodbav:"read"`
	CreatedAt time.Time        `json:"created" dynamodbav:"created_at"`
}
