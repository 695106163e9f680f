package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CreateBookingRequest is the payload for POST /bookings.
// Any salonId sent by the client has no field here and is dropped on decode.
type CreateBookingRequest struct {
	ServiceName   FormValue `json:"serviceName" validate:"required"`
	CustomerName  FormValue `json:"customerName" validate:"required"`
	CustomerPhone FormValue `json:"customerPhone" validate:"required"` // free-form, no format check
	BookingDate   FormValue `json:"bookingDate" validate:"required"`   // not range-checked
	BookingTime   FormValue `json:"bookingTime" validate:"required"`   // HH:MM from the site form, not enforced
	Notes         FormValue `json:"notes,omitempty"`                   // optional
}

// FormValue is a text field of the booking form. The empty values null,
// false, 0 and "" all decode to "", so the required rule reports them as
// missing. Any other non-string value is a decode error.
type FormValue string

func (f *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FormValue(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte("false")) {
		*f = ""
		return nil
	}
	if n, err := strconv.ParseFloat(string(b), 64); err == nil && n == 0 {
		*f = ""
		return nil
	}
	return fmt.Errorf("expected a string, got %s", b)
}

func (f FormValue) String() string { return string(f) }
