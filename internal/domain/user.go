package domain

// Role names recognised by the console. Users with an empty role are
// treated as customers.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is a read-only directory entry used for audience resolution and
// the admin bearer-token gate. Account management lives in a separate
// system; this API never writes to the users table.
type User struct {
	UserID string `json:"id" dynamodbav:"user_id"`
	Name   string `json:"name" dynamodbav:"name"`
	Email  string `json:"email" dynamodbav:"email"`
	Role   string `json:"role,omitempty" dynamodbav:"role"`
}
