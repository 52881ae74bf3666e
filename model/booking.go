package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"municipal-booking/config"
)

type BookingStatus string

const (
	StatusReceived   BookingStatus = "RECEIVED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
)

const DateLayout string = "2006-01-02"

// ValidationError covers input and business rule violations the caller
// can correct and retry.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

func ParseBookingStatus(name string) (BookingStatus, error) {
	switch status := BookingStatus(name); status {
	case StatusReceived, StatusInProgress, StatusCompleted, StatusCancelled:
		return status, nil
	}
	return "", ValidationError(fmt.Sprintf(
		"invalid status: %v, valid values: %v, %v, %v, %v",
		name, StatusReceived, StatusInProgress, StatusCompleted, StatusCancelled))
}

type StatusHistoryEntry struct {
	Status    BookingStatus `json:"status" bson:"status"`
	Timestamp string        `json:"timestamp" bson:"timestamp"`
}

type Booking struct {
	Id            primitive.ObjectID   `json:"_id" bson:"_id"`
	Token         string               `json:"token" bson:"token"`
	Municipality  string               `json:"municipality" bson:"municipality"`
	Description   string               `json:"description" bson:"description"`
	RequestedDate string               `json:"requested_date" bson:"requested_date"`
	TimeSlot      string               `json:"time_slot" bson:"time_slot"`
	Status        BookingStatus        `json:"status" bson:"status"`
	StatusHistory []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}

// NewBooking starts the lifecycle: status RECEIVED, a fresh access
// token and a one-entry history.
func NewBooking() *Booking {
	booking := &Booking{Token: uuid.NewString()}
	booking.AddStatus(StatusReceived)
	return booking
}

// ValidateSelf checks the booking's own fields, in a fixed order: field
// presence, then weekend, then lead time. It knows nothing about other
// bookings; those rules live in the service layer.
func (b *Booking) ValidateSelf() error {
	if strings.TrimSpace(b.Municipality) == "" {
		return ValidationError("municipality is required")
	}
	if strings.TrimSpace(b.Description) == "" {
		return ValidationError("description is required")
	}
	if strings.TrimSpace(b.RequestedDate) == "" {
		return ValidationError("requested date is required")
	}
	if strings.TrimSpace(b.TimeSlot) == "" {
		return ValidationError("time slot is required")
	}

	requestedDate, err := time.Parse(DateLayout, b.RequestedDate)
	if err != nil {
		return ValidationError(fmt.Sprintf("requested date must use format %v", DateLayout))
	}

	if requestedDate.Weekday() == time.Saturday || requestedDate.Weekday() == time.Sunday {
		return ValidationError("bookings are not available on weekends")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if requestedDate.Before(today.AddDate(0, 0, config.MIN_BOOKING_LEAD_DAYS)) {
		return ValidationError(fmt.Sprintf(
			"bookings must be made at least %v days in advance", config.MIN_BOOKING_LEAD_DAYS))
	}

	return nil
}

// AddStatus appends newStatus to the history and makes it current.
// Appending the current status again is a no-op. Transition legality is
// not checked here; the service enforces the state machine.
func (b *Booking) AddStatus(newStatus BookingStatus) {
	if b.Status == newStatus {
		return
	}

	b.Status = newStatus
	b.StatusHistory = append(b.StatusHistory, StatusHistoryEntry{
		Status:    newStatus,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
