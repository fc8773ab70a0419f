package domain

import "time"

// Audience selects which users receive a broadcast.
type Audience string

const (
	AudienceAll       Audience = "all"
	AudienceCustomers Audience = "customers"
	AudienceStaff     Audience = "staff"
	AudienceSelected  Audience = "selected"
)

func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudienceCustomers, AudienceStaff, AudienceSelected:
		return true
	}
	return false
}

// Broadcast is the audit-visible record of one dispatch event. Exactly one
// is written per dispatch regardless of recipient count; it records the
// audience class, never the expanded recipient list. Broadcasts are never
// mutated, only individually deletable.
type Broadcast struct {
	BroadcastID string           `json:"id" dynamodbav:"broadcast_id"`
	Title       string           `json:"title" dynamodbav:"title"`
	Message     string           `json:"message" dynamodbav:"message"`
	Audience    Audience         `json:"audience" dynamodbav:"audience"`
	Type        NotificationType `json:"type" dynamodbav:"type"`
	Sender      string           `json:"sender" dynamodbav:"sender"`
	CreatedAt   time.Time        `json:"created" dynamodbav:"created_at"`
}

type DispatchRequest struct {
	Title    string           `json:"title" validate:"required"`
	Message  string           `json:"message" validate:"required"`
	Type     NotificationType `json:"type" validate:"required"`
	Audience Audience         `json:"audience" validate:"required"`
	// UserIDs is consulted only when Audience is "selected".
	UserIDs []string `json:"user_ids,omitempty"`
}
