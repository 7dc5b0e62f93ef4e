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

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nimbushr/syncengine/internal/client/ats"
	"github.com/nimbushr/syncengine/internal/client/hris"
	"github.com/nimbushr/syncengine/internal/client/planner"
	warehousedb "github.com/nimbushr/syncengine/internal/client/warehouse"
	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/dispatch"
	"github.com/nimbushr/syncengine/internal/manifest"
	"github.com/nimbushr/syncengine/internal/mapping"
	"github.com/nimbushr/syncengine/internal/metrics"
	"github.com/nimbushr/syncengine/internal/observability"
	"github.com/nimbushr/syncengine/internal/reconcile"
	"github.com/nimbushr/syncengine/internal/snapshot"
	"github.com/nimbushr/syncengine/internal/statestore"
	"github.com/nimbushr/syncengine/internal/statestore/gcsstore"
	"github.com/nimbushr/syncengine/internal/warehouse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	obsCfg, err := config.LoadObservabilityConfig()
	if err != nil {
		return fmt.Errorf("failed to load observability config: %w", err)
	}

	lp, logger, err := observability.InitLogger(ctx, obsCfg.ServiceName, obsCfg.Enabled)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown logger provider", "error", err)
		}
	}()
	slog.SetDefault(logger)

	tp, err := observability.InitTracerProvider(ctx, obsCfg.ServiceName, obsCfg.Enabled)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown tracer provider", "error", err)
		}
	}()

	mp, err := observability.InitMeterProvider(ctx, obsCfg.ServiceName, obsCfg.Enabled)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown meter provider", "error", err)
		}
	}()

	slog.InfoContext(ctx, "starting sync engine dispatcher")

	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load server config: %w", err)
	}
	if err := serverCfg.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	hrisCfg, err := config.LoadHRISConfig()
	if err != nil {
		return fmt.Errorf("failed to load HRIS config: %w", err)
	}
	if err := hrisCfg.Validate(); err != nil {
		return fmt.Errorf("invalid HRIS config: %w", err)
	}

	atsCfg, err := config.LoadATSConfig()
	if err != nil {
		return fmt.Errorf("failed to load ATS config: %w", err)
	}
	if err := atsCfg.Validate(); err != nil {
		return fmt.Errorf("invalid ATS config: %w", err)
	}

	plannerCfg, err := config.LoadPlannerConfig()
	if err != nil {
		return fmt.Errorf("failed to load planner config: %w", err)
	}
	if err := plannerCfg.Validate(); err != nil {
		return fmt.Errorf("invalid planner config: %w", err)
	}

	queueCfg, err := config.LoadQueueConfig()
	if err != nil {
		return fmt.Errorf("failed to load queue config: %w", err)
	}
	if err := queueCfg.Validate(); err != nil {
		return fmt.Errorf("invalid queue config: %w", err)
	}

	snapshotCfg, err := config.LoadSnapshotConfig()
	if err != nil {
		return fmt.Errorf("failed to load snapshot config: %w", err)
	}
	if err := snapshotCfg.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot config: %w", err)
	}

	sftpCfg, err := config.LoadSFTPConfig()
	if err != nil {
		return fmt.Errorf("failed to load SFTP config: %w", err)
	}
	if err := sftpCfg.Validate(); err != nil {
		return fmt.Errorf("invalid SFTP config: %w", err)
	}

	warehouseCfg, err := config.LoadWarehouseConfig()
	if err != nil {
		return fmt.Errorf("failed to load warehouse config: %w", err)
	}
	if err := warehouseCfg.Validate(); err != nil {
		return fmt.Errorf("invalid warehouse config: %w", err)
	}

	reconcileCfg, err := config.LoadReconcileConfig()
	if err != nil {
		return fmt.Errorf("failed to load reconcile config: %w", err)
	}
	if err := reconcileCfg.Validate(); err != nil {
		return fmt.Errorf("invalid reconcile config: %w", err)
	}

	backend, err := gcsstore.NewStore(ctx, snapshotCfg.StateBucket)
	if err != nil {
		return fmt.Errorf("failed to init state store: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close state store", "error", err)
		}
	}()
	var stateBackend statestore.Store = backend

	registry := prometheus.NewRegistry()

	hrisClient := hris.NewClient(hrisCfg)
	atsClient := ats.NewClient(atsCfg)
	plannerClient := planner.NewClient(plannerCfg)
	mappingStore := mapping.New(stateBackend)
	jobMappingStore := mapping.NewJobStore(stateBackend)
	metricsStore := metrics.New(stateBackend, registry)
	manifestStore := manifest.New(stateBackend)

	warehouseDB, err := warehousedb.NewClient(ctx, warehouseCfg)
	if err != nil {
		return fmt.Errorf("failed to init warehouse client: %w", err)
	}
	defer func() {
		if err := warehouseDB.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close warehouse client", "error", err)
		}
	}()
	if err := warehouseDB.EnsureCheckpointTable(ctx); err != nil {
		return fmt.Errorf("failed to ensure warehouse checkpoint table: %w", err)
	}

	reconcileHandlers := reconcile.New(hrisClient, atsClient, plannerClient, mappingStore, metricsStore, jobMappingStore)
	reconcileHandlers.CorpEmailDomain = atsCfg.CorpEmailDomain
	reconcileHandlers.AutoAssignWorkEmail = atsCfg.AutoAssignWorkEmail
	reconcileHandlers.WebhookSigningKey = atsCfg.WebhookSigningKey
	reconcileHandlers.CreatePlannerOnHire = atsCfg.CreatePlannerOnHire
	reconcileHandlers.OnboardingLookaheadDays = reconcileCfg.OnboardingLookaheadDays
	reconcileHandlers.TimeOffLookbackDays = reconcileCfg.TimeOffLookbackDays
	reconcileHandlers.TimeOffLookaheadDays = reconcileCfg.TimeOffLookaheadDays

	enqueuer, err := dispatch.NewEnqueuer(ctx, queueCfg)
	if err != nil {
		return fmt.Errorf("failed to init task enqueuer: %w", err)
	}
	defer func() {
		if err := enqueuer.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close task enqueuer", "error", err)
		}
	}()

	snapshotBuilder := snapshot.New(hrisClient, manifestStore, sftpCfg)
	warehouseMirror := warehouse.New(plannerCfg, warehouseDB, warehouseCfg)

	handlers := &dispatch.Handlers{
		Reconcile:         reconcileHandlers,
		Enqueuer:          enqueuer,
		Snapshot:          snapshotBuilder,
		Warehouse:         warehouseMirror,
		DefaultExportMode: string(snapshotCfg.Mode()),
		OIDCAudience:      queueCfg.Audience,
		Registry:          registry,
	}

	router := dispatch.NewRouter(handlers, serverCfg)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", serverCfg.Port),
		Handler:           router,
		ReadHeaderTimeout: serverCfg.ReadHeaderTimeout,
		ReadTimeout:       serverCfg.ReadTimeout,
		WriteTimeout:      serverCfg.WriteTimeout,
		IdleTimeout:       serverCfg.IdleTimeout,
	}

	errResult := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "dispatcher listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")
		shutdownCtx, cancel := newShutdownContext(15 * time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "server shutdown timed out, forcing close", "error", err)
			_ = server.Close()
		}
		return nil
	case err := <-errResult:
		return err
	}
}

// newShutdownContext creates a fresh context with timeout for graceful
// shutdown operations. Uses Background() since the main context is already
// cancelled at shutdown time, but a timeout window is still needed to
// complete cleanup.
func newShutdownContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
