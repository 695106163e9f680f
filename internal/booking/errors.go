package booking

import (
	"encoding/json"
	"net/http"
)

// Kind tags the class of a booking failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindValidation
	KindUpstreamRejected
	KindUpstreamUnreachable
)

// Client-facing messages.
const (
	MsgServerConfig     = "Server configuration error"
	MsgSalonNotConfig   = "Salon is not configured. Please contact the administrator."
	MsgMissingFields    = "Missing required fields"
	MsgUpstreamFallback = "Failed to create booking"
	MsgUnreachable      = "Unable to reach booking service. Please try again later."
	MsgInternal         = "Internal server error"
	MsgCreated          = "Booking created successfully"
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration_error"
	case KindValidation:
		return "validation_error"
	case KindUpstreamRejected:
		return "upstream_rejected"
	case KindUpstreamUnreachable:
		return "upstream_unreachable"
	default:
		return "internal_error"
	}
}

// Error is the single error type returned by the proxy. Code is the HTTP
// status the caller should answer with.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	// Relayed holds the upstream "message" value verbatim when it was usable.
	Relayed json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Body is the value placed under "error" in the response.
func (e *Error) Body() any {
	if len(e.Relayed) > 0 {
		return e.Relayed
	}
	return e.Message
}

func ConfigurationError(message string) *Error {
	return &Error{Kind: KindConfiguration, Code: http.StatusInternalServerError, Message: message}
}

func ValidationError(err error) *Error {
	return &Error{Kind: KindValidation, Code: http.StatusBadRequest, Message: MsgMissingFields, Err: err}
}

func UpstreamRejected(status int, relayed json.RawMessage) *Error {
	return &Error{Kind: KindUpstreamRejected, Code: status, Message: MsgUpstreamFallback, Relayed: relayed}
}

func UpstreamUnreachable(err error) *Error {
	return &Error{Kind: KindUpstreamUnreachable, Code: http.StatusServiceUnavailable, Message: MsgUnreachable, Err: err}
}

func Unknown(err error) *Error {
	return &Error{Kind: KindUnknown, Code: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}
