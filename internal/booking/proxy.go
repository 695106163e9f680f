// Package booking relays booking submissions from the public site to the
// upstream booking service on behalf of a single salon.
package booking

import (
	"context"
	"net/http"
	"strings"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/salon-booking-proxy/internal/validation"
)

// Settings is the deployment-level input of a Proxy.
type Settings struct {
	BackendURL string
	SalonID    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Proxy validates a submission, stamps the configured salon id on it and
// forwards it upstream. It keeps no state between calls.
type Proxy struct {
	backendURL string
	salonID    string
	client     *Client
	validate   *validatorv10.Validate
}

func NewProxy(s Settings, v *validatorv10.Validate) *Proxy {
	if v == nil {
		v = validation.New()
	}
	backendURL := strings.TrimSpace(s.BackendURL)
	return &Proxy{
		backendURL: backendURL,
		salonID:    strings.TrimSpace(s.SalonID),
		client:     NewClient(backendURL, WithHTTPClient(s.HTTPClient), WithTimeout(s.Timeout)),
		validate:   v,
	}
}

// Ready reports the first missing piece of configuration, base URL first.
func (p *Proxy) Ready() error {
	if p.backendURL == "" {
		return ConfigurationError(MsgServerConfig)
	}
	if p.salonID == "" {
		return ConfigurationError(MsgSalonNotConfig)
	}
	return nil
}

// Submit validates req and forwards it once. Every failure is a *Error.
func (p *Proxy) Submit(ctx context.Context, req validation.CreateBookingRequest, requestID string) (*Result, error) {
	if err := p.Ready(); err != nil {
		return nil, err
	}
	if err := p.validate.Struct(req); err != nil {
		return nil, ValidationError(err)
	}

	out := PublicBookingRequest{
		SalonID:       p.salonID,
		ServiceName:   string(req.ServiceName),
		CustomerName:  string(req.CustomerName),
		CustomerPhone: string(req.CustomerPhone),
		BookingDate:   string(req.BookingDate),
		BookingTime:   string(req.BookingTime),
		Notes:         string(req.Notes),
	}

	data, status, err := p.client.CreateBooking(ctx, out, requestID)
	if err != nil {
		return nil, err
	}

	return &Result{
		Request:        out,
		Booking:        data,
		UpstreamStatus: status,
	}, nil
}
