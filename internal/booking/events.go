package booking

import (
	"encoding/json"
	"time"
)

const EventBookingCreated = "booking.created"

// CreatedEvent announces a booking the upstream accepted.
type CreatedEvent struct {
	Type          string          `json:"type"`
	SalonID       string          `json:"salonId"`
	ServiceName   string          `json:"serviceName"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	BookingDate   string          `json:"bookingDate"`
	BookingTime   string          `json:"bookingTime"`
	Notes         string          `json:"notes"`
	Booking       json.RawMessage `json:"booking"`
	RequestID     string          `json:"requestId,omitempty"`
	SubmittedAt   time.Time       `json:"submittedAt"`
}

func NewCreatedEvent(res *Result, requestID string, at time.Time) CreatedEvent {
	return CreatedEvent{
		Type:          EventBookingCreated,
		SalonID:       res.Request.SalonID,
		ServiceName:   res.Request.ServiceName,
		CustomerName:  res.Request.CustomerName,
		CustomerPhone: res.Request.CustomerPhone,
		BookingDate:   res.Request.BookingDate,
		BookingTime:   res.Request.BookingTime,
		Notes:         res.Request.Notes,
		Booking:       res.Booking,
		RequestID:     requestID,
		SubmittedAt:   at.UTC(),
	}
}
