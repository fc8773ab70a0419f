package domain

import "time"

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
)

// Valid reports whether s is a member of the closed status set.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether s is an archive state. Terminal bookings are the
// only ones eligible for destructive delete.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Booking is one scheduled service appointment. Customer fields are
// denormalized at creation and are not a live reference into the user
// directory.
type Booking struct {
	BookingID       string        `json:"id" dynamodbav:"booking_id"`
	CustomerName    string        `json:"customer_name" dynamodbav:"customer_name"`
	CustomerEmail   string        `json:"customer_email" dynamodbav:"customer_email"`
	CustomerPhone   string        `json:"customer_phone" dynamodbav:"customer_phone"`
	Service         string        `json:"service" dynamodbav:"service"`
	VehicleType     string        `json:"vehicle_type" dynamodbav:"vehicle_type"`
	Date            string        `json:"date" dynamodbav:"date"` // calendar date, YYYY-MM-DD
	TimeSlot        string        `json:"time_slot" dynamodbav:"time_slot"`
	Location        string        `json:"location" dynamodbav:"location"`
	Price           float64       `json:"price" dynamodbav:"price"`
	Status          BookingStatus `json:"status" dynamodbav:"status"`
	RejectionReason *string       `json:"rejection_reason,omitempty" dynamodbav:"rejection_reason"`
	CreatedAt       time.Time     `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time     `json:"updated" dynamodbav:"updated_at"`
}

type CreateBookingRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone string  `json:"customer_phone"`
	Service       string  `json:"service" validate:"required"`
	VehicleType   string  `json:"vehicle_type" validate:"required"`
	Date          string  `json:"date" validate:"required"` // expected format: YYYY-MM-DD
	TimeSlot      string  `json:"time_slot" validate:"required"`
	Location      string  `json:"location" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
}

// BookingFilter selects which lifecycle states a booking list includes.
type BookingFilter string

const (
	FilterActive   BookingFilter = "active" // pending + approved
	FilterPending  BookingFilter = "pending"
	FilterApproved BookingFilter = "approved"
	FilterArchive  BookingFilter = "archive" // completed + rejected
	FilterAll      BookingFilter = "all"
)

// Statuses expands the filter into its member statuses.
// Returns nil for an unknown filter.
func (f BookingFilter) Statuses() []BookingStatus {
	switch f {
	case FilterActive:
		return []BookingStatus{StatusPending, StatusApproved}
	case FilterPending:
		return []BookingStatus{StatusPending}
	case FilterApproved:
		return []BookingStatus{StatusApproved}
	case FilterArchive:
		return []BookingStatus{StatusCompleted, StatusRejected}
	case FilterAll:
		return []BookingStatus{StatusPending, StatusApproved, StatusCompleted, StatusRejected}
	}
	return nil
}
