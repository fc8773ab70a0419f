package domain

import "time"

// NotificationType is the closed set of message severities shared by
// notifications, broadcast records and audit entries.
type NotificationType string

const (
	TypeInfo    NotificationType = "info"
	TypeSuccess NotificationType = "success"
	TypeWarning NotificationType = "warning"
	TypeAlert   NotificationType = "alert"
)

func (t NotificationType) Valid() bool {
	switch t {
	case TypeInfo, TypeSuccess, TypeWarning, TypeAlert:
		return true
	}
	return false
}

// Notification is one message addressed to one user. Created only by the
// fan-out engine (or equivalent single-recipient senders); mutated only by
// mark-read; bulk-deleted only by clear-all.
type Notification struct {
	NotificationID string           `json:"id" dynamodbav:"notification_id"`
	UserID         string           `json:"user_id" dynamodbav:"user_id"`
	Title          string           `json:"title" dynamodbav:"title"`
	Message        string           `json:"message" dynamodbav:"message"`
	Type           NotificationType `json:"type" dynamodbav:"type"`
	Read           bool             `json:"read" dynamodbav:"read"`
	CreatedAt      time.Time        `json:"created" dynamodbav:"created_at"`
}
