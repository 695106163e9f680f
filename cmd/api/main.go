package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/salon-booking-proxy/internal/aws"
	"github.com/imrishuroy/salon-booking-proxy/internal/booking"
	"github.com/imrishuroy/salon-booking-proxy/internal/config"
	"github.com/imrishuroy/salon-booking-proxy/internal/handlers"
	"github.com/imrishuroy/salon-booking-proxy/internal/logger"
	"github.com/imrishuroy/salon-booking-proxy/internal/middleware"
	"github.com/imrishuroy/salon-booking-proxy/internal/validation"
)

func setupRouter(cfg *config.Config, hcfg handlers.HandlerConfig, zl *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(zl))
	r.Use(middleware.RequestID())
	if corsMW := middleware.CORS(cfg.Origins()); corsMW != nil {
		r.Use(corsMW)
	}
	r.Use(middleware.AccessLog(zl))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterBookingsRoutes(r, hcfg)

	return r
}

// sideChannels wires the optional CloudWatch and SQS outputs.
func sideChannels(ctx context.Context, cfg *config.Config, hcfg *handlers.HandlerConfig, zl *zap.Logger) {
	if cfg.MetricsNamespace == "" && cfg.BookingEventsQueueURL == "" {
		return
	}
	clients, err := aws.NewAWSClients(ctx, cfg.AWSRegion)
	if err != nil {
		zl.Warn("aws clients unavailable, metrics and events disabled", zap.Error(err))
		return
	}
	if cfg.MetricsNamespace != "" {
		hcfg.Metrics = aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace)
	}
	if cfg.BookingEventsQueueURL != "" {
		hcfg.Events = aws.NewPublisher(clients.SQS, cfg.BookingEventsQueueURL)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	for _, w := range cfg.Warnings() {
		zl.Warn(w)
	}

	proxy := booking.NewProxy(booking.Settings{
		BackendURL: cfg.BackendAPIURL,
		SalonID:    cfg.SalonID,
		Timeout:    cfg.UpstreamTimeout,
	}, validation.New())

	hcfg := handlers.HandlerConfig{
		Proxy:  proxy,
		Logger: zl,
	}
	sideChannels(context.Background(), cfg, &hcfg, zl)

	r := setupRouter(cfg, hcfg, zl)

	// RUN_LOCAL=true serves plain HTTP for development.
	if cfg.RunLocal {
		runLocal(r, ":"+cfg.Port, zl)
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}

func runLocal(h http.Handler, addr string, zl *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("running local server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
}
