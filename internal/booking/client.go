package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	publicBookingsPath = "/bookings/public"
	maxUpstreamBody    = 1 << 20
	defaultTimeout     = 10 * time.Second
)

// Client talks to the upstream booking service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string, opts ...func(*Client)) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHTTPClient(hc *http.Client) func(*Client) {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// WithTimeout bounds a single upstream call. Zero keeps the default.
func WithTimeout(d time.Duration) func(*Client) {
	return func(c *Client) {
		if d > 0 {
			hc := *c.HTTPClient
			hc.Timeout = d
			c.HTTPClient = &hc
		}
	}
}

// CreateBooking makes exactly one POST to the public booking endpoint.
// Transport failures come back as KindUpstreamUnreachable, non-2xx answers
// as KindUpstreamRejected carrying the upstream status.
func (c *Client) CreateBooking(ctx context.Context, in PublicBookingRequest, requestID string) (json.RawMessage, int, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, 0, Unknown(fmt.Errorf("marshal booking: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+publicBookingsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, Unknown(fmt.Errorf("build upstream request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, UpstreamUnreachable(fmt.Errorf("post %s: %w", publicBookingsPath, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody+1))
	if err != nil {
		return nil, resp.StatusCode, UpstreamUnreachable(fmt.Errorf("read upstream body: %w", err))
	}
	if len(raw) > maxUpstreamBody {
		return nil, resp.StatusCode, Unknown(fmt.Errorf("upstream body too large (status %d, over %d bytes)", resp.StatusCode, maxUpstreamBody))
	}

	var data json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, resp.StatusCode, Unknown(fmt.Errorf("decode upstream body (status %d): %w", resp.StatusCode, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, err := upstreamMessage(data)
		if err != nil {
			return nil, resp.StatusCode, Unknown(err)
		}
		return nil, resp.StatusCode, UpstreamRejected(resp.StatusCode, msg)
	}

	return data, resp.StatusCode, nil
}

// upstreamMessage extracts the relayable "message" of an error body. A nil
// result means the fallback message applies.
func upstreamMessage(data json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("upstream error body is null")
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil
	}
	var ue upstreamError
	if err := json.Unmarshal(trimmed, &ue); err != nil {
		return nil, fmt.Errorf("decode upstream error: %w", err)
	}
	if !truthy(ue.Message) {
		return nil, nil
	}
	return ue.Message, nil
}

// truthy reports whether a JSON value would count as set: non-empty
// strings, non-zero numbers, true, and any array or object.
func truthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return false
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return false
		}
		return s != ""
	case '{', '[', 't':
		return true
	case 'f', 'n':
		return false
	default:
		f, err := strconv.ParseFloat(string(v), 64)
		return err == nil && f != 0
	}
}
