package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adis-git/job-sentinel-ai-check/internal/application/usecase"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/config"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/metrics"
	"github.com/Adis-git/job-sentinel-ai-check/internal/infrastructure/postgres"
	grpcpresentation "github.com/Adis-git/job-sentinel-ai-check/internal/presentation/grpc"
	"github.com/Adis-git/job-sentinel-ai-check/internal/presentation/rest"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/auth"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/observability"
	pgpkg "github.com/Adis-git/job-sentinel-ai-check/pkg/postgres"
	"github.com/Adis-git/job-sentinel-ai-check/pkg/tlsutil"
)

func main() {
	startedAt := time.Now()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "jobsentineld",
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.DB.Enabled() {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	logger.Info("starting jobsentineld",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"strategy", cfg.Scoring.Strategy,
		"events_backend", cfg.EventsBackend,
	)

	// Tracing is optional.
	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    true,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	recorder, err := metrics.NewRecorder(meterProvider.Meter("jobsentinel"))
	if err != nil {
		logger.Error("failed to create metrics recorder", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgpkg.NewPool(dbCtx, pgpkg.Config{
		URL:      cfg.DB.URL,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pgpkg.RunMigrations(cfg.DB.URL, cfg.DB.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Wire infrastructure adapters.
	assessmentRepo := postgres.NewAssessmentRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)

	hub := rest.NewHub(logger)
	defer hub.Close()

	events, err := buildEvents(ctx, cfg, outboxRepo, hub, logger)
	if err != nil {
		logger.Error("failed to set up event publishing", "error", err)
		os.Exit(1)
	}
	defer events.Close()

	assessmentCache, redisCheck, closeCache, err := buildCache(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	scorer, err := buildScorer(cfg, logger)
	if err != nil {
		logger.Error("failed to build scorer", "error", err)
		os.Exit(1)
	}

	postingExtractor, err := buildExtractor(cfg)
	if err != nil {
		logger.Error("failed to build extractor", "error", err)
		os.Exit(1)
	}

	notifier, err := buildNotifier(cfg)
	if err != nil {
		logger.Error("failed to init report notifier", "error", err)
		os.Exit(1)
	}

	// Wire use cases.
	assessPostingUC := usecase.NewAssessPosting(assessmentRepo, events.Publisher, assessmentCache, recorder, scorer, logger)
	useCases := rest.UseCases{
		AssessPosting:   assessPostingUC,
		AssessURL:       usecase.NewAssessURL(postingExtractor, assessPostingUC),
		BatchAssess:     usecase.NewBatchAssess(assessPostingUC, cfg.Scoring.BatchConcurrency),
		GetAssessment:   usecase.NewGetAssessment(assessmentRepo),
		ListAssessments: usecase.NewListAssessments(assessmentRepo),
		ReportPosting:   usecase.NewReportPosting(reportRepo, assessmentRepo, events.Publisher, notifier, recorder, logger),
		ListReports:     usecase.NewListReports(reportRepo),
	}

	if err := startIntake(ctx, cfg, assessPostingUC, events, logger); err != nil {
		logger.Error("failed to start intake consumer", "error", err)
		os.Exit(1)
	}

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.Auth.JWTSecret,
		Issuer:     cfg.Auth.Issuer,
		Expiration: cfg.Auth.TokenTTL,
	})
	if err != nil {
		logger.Error("failed to create JWT service", "error", err)
		os.Exit(1)
	}

	tlsFiles := tlsutil.Files{Cert: cfg.TLS.CertFile, Key: cfg.TLS.KeyFile, ClientCA: cfg.TLS.ClientCAFile}

	// gRPC server.
	grpcHandler := grpcpresentation.NewHandler(useCases.AssessPosting, useCases.GetAssessment, useCases.ReportPosting, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:    cfg.GRPCAddress(),
		TLS:        tlsFiles,
		Reflection: cfg.GRPCReflection,
	}, logger, jwtService)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server.
	checks := map[string]rest.ReadinessCheck{
		"database": func(ctx context.Context) error { return pgpkg.HealthCheck(ctx, pool) },
	}
	if redisCheck != nil {
		checks["redis"] = redisCheck
	}
	router := rest.NewRouter(rest.NewHandler(useCases, logger), rest.RouterConfig{
		Logger:    logger,
		JWT:       jwtService,
		Health:    rest.NewHealthHandler(logger, checks),
		Metrics:   metricsHandler,
		Stream:    hub,
		RateLimit: cfg.RateLimit,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	if tlsFiles.Enabled() {
		tlsCfg, err := tlsutil.ServerConfig(tlsFiles)
		if err != nil {
			logger.Error("failed to load HTTP TLS config", "error", err)
			os.Exit(1)
		}
		httpServer.TLSConfig = tlsCfg
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress(), "tls", tlsFiles.Enabled())
		var err error
		if httpServer.TLSConfig != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("jobsentineld started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down jobsentineld")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("jobsentineld stopped", slog.Duration("uptime", time.Since(startedAt)))
}
