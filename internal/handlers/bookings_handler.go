package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/salon-booking-proxy/internal/booking"
	"github.com/imrishuroy/salon-booking-proxy/internal/middleware"
	"github.com/imrishuroy/salon-booking-proxy/internal/validation"
)

const (
	outcomeCreated            = "created"
	defaultSideChannelTimeout = 2 * time.Second
)

// OutcomeRecorder receives one outcome per submission.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, outcome string, upstreamLatency time.Duration) error
}

// EventPublisher announces created bookings.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, ev booking.CreatedEvent) error
}

// HandlerConfig groups dependencies for the bookings handler.
// Metrics and Events are optional.
type HandlerConfig struct {
	Proxy              *booking.Proxy
	Logger             *zap.Logger
	Metrics            OutcomeRecorder
	Events             EventPublisher
	SideChannelTimeout time.Duration
}

type bookingsHandler struct {
	cfg HandlerConfig
	log *zap.Logger
	now func() time.Time
}

// RegisterBookingsRoutes registers routes for the booking API.
func RegisterBookingsRoutes(r gin.IRouter, cfg HandlerConfig) {
	if cfg.SideChannelTimeout <= 0 {
		cfg.SideChannelTimeout = defaultSideChannelTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &bookingsHandler{cfg: cfg, log: log, now: time.Now}

	r.POST("/bookings", h.create)
}

func (h *bookingsHandler) create(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := middleware.GetRequestID(c)

	// configuration is checked before the body is even read
	if err := h.cfg.Proxy.Ready(); err != nil {
		h.fail(c, err, 0)
		return
	}

	var req validation.CreateBookingRequest
	if err := validation.BindJSON(c, &req); err != nil {
		h.fail(c, booking.Unknown(err), 0)
		return
	}

	start := h.now()
	res, err := h.cfg.Proxy.Submit(ctx, req, requestID)
	elapsed := h.now().Sub(start)
	if err != nil {
		h.fail(c, err, elapsed)
		return
	}

	c.JSON(http.StatusCreated, createdResponse{
		Success: true,
		Message: booking.MsgCreated,
		Booking: res.Booking,
	})
	h.log.Info("booking created",
		zap.String("request_id", requestID),
		zap.Int("upstream_status", res.UpstreamStatus),
		zap.Duration("upstream_latency", elapsed),
	)

	// The response is only released when the handler returns, so the side
	// channels delay it by at most SideChannelTimeout.
	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.cfg.SideChannelTimeout)
	defer cancel()
	h.record(sideCtx, outcomeCreated, elapsed)
	if h.cfg.Events != nil {
		ev := booking.NewCreatedEvent(res, requestID, h.now())
		if err := h.cfg.Events.PublishBookingCreated(sideCtx, ev); err != nil {
			h.log.Warn("publish booking event failed", zap.String("request_id", requestID), zap.Error(err))
		}
	}
}

// fail writes the response for err. Anything that is not a *booking.Error
// is reported as an internal error without detail.
func (h *bookingsHandler) fail(c *gin.Context, err error, elapsed time.Duration) {
	var be *booking.Error
	if !errors.As(err, &be) {
		be = booking.Unknown(err)
	}
	requestID := middleware.GetRequestID(c)
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("kind", be.Kind.String()),
		zap.Int("status", be.Code),
	}

	switch be.Kind {
	case booking.KindValidation:
		h.log.Info("booking rejected", append(fields, zap.Strings("missing", validation.MissingFields(be.Err)))...)
	case booking.KindUpstreamRejected:
		h.log.Warn("upstream rejected booking", append(fields, zap.ByteString("upstream_message", be.Relayed))...)
	case booking.KindConfiguration:
		h.log.Error("booking proxy not configured", append(fields, zap.String("reason", be.Message))...)
	default:
		h.log.Error("booking failed", append(fields, zap.Error(be.Err))...)
	}

	c.JSON(be.Code, errorResponse{Error: be.Body()})

	var latency time.Duration
	if be.Kind == booking.KindUpstreamRejected || be.Kind == booking.KindUpstreamUnreachable {
		latency = elapsed
	}
	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), h.cfg.SideChannelTimeout)
	defer cancel()
	h.record(sideCtx, be.Kind.String(), latency)
}

func (h *bookingsHandler) record(ctx context.Context, outcome string, latency time.Duration) {
	if h.cfg.Metrics == nil {
		return
	}
	if err := h.cfg.Metrics.RecordOutcome(ctx, outcome, latency); err != nil {
		h.log.Warn("record booking outcome failed", zap.String("outcome", outcome), zap.Error(err))
	}
}
