// loansvcd is the installment-loan servicing daemon. It originates loans with
// French amortization schedules, allocates payments arrears-first and keeps
// late-payment charges current via a nightly refresh.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgkafka "github.com/UPAO-INSO/caso-agile-sub000/pkg/kafka"
	"github.com/UPAO-INSO/caso-agile-sub000/pkg/observability"
	pkgpostgres "github.com/UPAO-INSO/caso-agile-sub000/pkg/postgres"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/usecase"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/service"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/infrastructure/adapter"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/infrastructure/config"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/infrastructure/kafka"
	pgRepo "github.com/UPAO-INSO/caso-agile-sub000/internal/infrastructure/postgres"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/infrastructure/scheduler"
	grpcPresentation "github.com/UPAO-INSO/caso-agile-sub000/internal/presentation/grpc"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/presentation/rest"
)

const eventsTopic = "loans.events"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting loan-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize Prometheus metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without metrics", "error", err)
	} else {
		defer func() { _ = meterProvider.Shutdown(ctx) }() //nolint:errcheck // best-effort shutdown
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	if migErr := pkgpostgres.RunMigrations(cfg.DB.DSN(), "file://"+cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	kafkaProducer := pkgkafka.NewProducer(cfg.Kafka)
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, eventsTopic, logger)
	watchlist := adapter.NewStubWatchlistLookup()

	// Domain services.
	engine := service.NewArrearsEngine()
	allocator := service.NewPaymentAllocator()

	// Wire use cases.
	originateUC := usecase.NewOriginateLoanUseCase(loanRepo, watchlist, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	summaryUC := usecase.NewGetLoanSummaryUseCase(loanRepo, paymentRepo, engine)
	recordPaymentUC := usecase.NewRecordPaymentUseCase(loanRepo, paymentRepo, engine, allocator, publisher)
	reversePaymentUC := usecase.NewReversePaymentUseCase(loanRepo, paymentRepo, allocator, publisher)
	refreshUC := usecase.NewRefreshArrearsUseCase(loanRepo, paymentRepo, engine, publisher)
	listOverdueUC := usecase.NewListOverdueUseCase(loanRepo)

	// Nightly arrears refresh.
	arrearsJob := scheduler.NewArrearsJob(loanRepo, refreshUC, logger)
	if err := arrearsJob.Start(cfg.ArrearsCron); err != nil {
		logger.Error("failed to start arrears job", "error", err)
		os.Exit(1)
	}
	defer arrearsJob.Stop()

	// gRPC server.
	handler := grpcPresentation.NewLoanHandler(
		originateUC, getLoanUC, summaryUC, recordPaymentUC, reversePaymentUC, refreshUC, listOverdueUC)
	grpcServer := grpcPresentation.NewServer(handler, logger)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()

	logger.Info("loan-service stopped")
}
