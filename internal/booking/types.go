package booking

import "encoding/json"

// PublicBookingRequest is the body sent to the upstream public booking endpoint.
type PublicBookingRequest struct {
	SalonID       string `json:"salonId"`
	ServiceName   string `json:"serviceName"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	BookingDate   string `json:"bookingDate"`
	BookingTime   string `json:"bookingTime"`
	Notes         string `json:"notes"` // always sent, "" when omitted
}

// Result is a successfully created booking.
type Result struct {
	Request PublicBookingRequest
	// Booking is the upstream payload, relayed untouched.
	Booking        json.RawMessage
	UpstreamStatus int
}

// upstreamError is the subset of the upstream error body we read.
type upstreamError struct {
	Message json.RawMessage `json:"message"`
}
