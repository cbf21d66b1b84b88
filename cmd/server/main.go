package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	_ "go.uber.org/automaxprocs"

	"github.com/jovz/residence-hub/internal/api/debug"
	"github.com/jovz/residence-hub/internal/api/handler"
	"github.com/jovz/residence-hub/internal/api/routes"
	announcementApp "github.com/jovz/residence-hub/internal/application/announcement"
	"github.com/jovz/residence-hub/internal/application/occupancy"
	"github.com/jovz/residence-hub/internal/application/refresh"
	roomApp "github.com/jovz/residence-hub/internal/application/room"
	tenantApp "github.com/jovz/residence-hub/internal/application/tenant"
	"github.com/jovz/residence-hub/internal/config"
	"github.com/jovz/residence-hub/internal/domain/validation"
	"github.com/jovz/residence-hub/internal/infra/metrics"
	announcementStore "github.com/jovz/residence-hub/internal/infra/storage/announcement/rest"
	roomStore "github.com/jovz/residence-hub/internal/infra/storage/room/rest"
	tenantStore "github.com/jovz/residence-hub/internal/infra/storage/tenant/rest"
	"github.com/jovz/residence-hub/internal/infra/storage/upstream"
	"github.com/jovz/residence-hub/pkg/common/logger"
	otelcfg "github.com/jovz/residence-hub/pkg/common/otel"
	"github.com/jovz/residence-hub/pkg/common/timeutil"
)

const serviceName = "residence-hub"

func main() {
	// A missing .env is fine outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), serviceName, otelcfg.GetTraceID)

	ctx := context.Background()
	if err := run(ctx, log, cfg); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, cfg config.Config) error {
	log.Info(ctx, "starting service", "api_host", cfg.APIHost, "upstream", cfg.UpstreamBaseURL)

	// Telemetry.
	traceProvider, telemetryCleanup, err := otelcfg.InitTelemetry(log, otelcfg.Config{
		ServiceName:      serviceName,
		ExporterEndpoint: cfg.OtelEndpoint,
		Probability:      cfg.OtelProbability,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer telemetryCleanup(ctx)
	tracer := traceProvider.Tracer(serviceName)

	registry, err := metrics.NewRegistry(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	// Upstream persistence client and repositories.
	client := upstream.NewClient(upstream.Config{
		BaseURL: cfg.UpstreamBaseURL,
		Token:   cfg.UpstreamToken,
		Timeout: cfg.UpstreamTimeout,
	})
	tenants := tenantStore.NewTenantStore(client, tracer)
	rooms := roomStore.NewRoomStore(client, tracer)
	announcements := announcementStore.NewAnnouncementStore(client, tracer)

	// Application services.
	clock := timeutil.RealProvider{}
	checker, err := validation.NewChecker()
	if err != nil {
		return fmt.Errorf("initializing validation: %w", err)
	}

	store := refresh.NewStore(tenants, rooms, clock, log, tracer, registry.Snapshot)
	sync := occupancy.NewSynchronizer(rooms, tenants, log, tracer)
	tenantService := tenantApp.NewService(tenants, sync, store, checker, log, tracer, registry.Workflow)
	roomService := roomApp.NewService(rooms, tenants, sync, store, checker, log, tracer, registry.Workflow)
	announcementService := announcementApp.NewService(announcements, clock, log, tracer)

	// Snapshot poller.
	pollCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	poller := refresh.NewPoller(store, cfg.RefreshInterval, log)
	go poller.Run(pollCtx)

	// Debug listener.
	debugMux, err := debug.Mux()
	if err != nil {
		return fmt.Errorf("building debug mux: %w", err)
	}
	go func() {
		log.Info(ctx, "debug listener started", "host", cfg.DebugHost)
		if err := http.ListenAndServe(cfg.DebugHost, debugMux); err != nil {
			log.Error(ctx, "debug listener stopped", "err", err)
		}
	}()

	// Management API.
	engine := routes.New(routes.Config{
		Log:           log,
		Metrics:       registry.API,
		Tenants:       handler.NewTenantHandler(tenantService, store),
		Rooms:         handler.NewRoomHandler(roomService, store),
		Stats:         handler.NewStatsHandler(store),
		Announcements: handler.NewAnnouncementHandler(announcementService),
		Health:        handler.NewHealthHandler(store, clock),
	})

	server := &http.Server{
		Addr:         cfg.APIHost,
		Handler:      otelhttp.NewHandler(engine, "api"),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(ctx, "api listener started", "host", cfg.APIHost)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info(ctx, "shutdown started", "signal", sig.String())
		defer log.Info(ctx, "shutdown complete")

		stopPoller()

		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
