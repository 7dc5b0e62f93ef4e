package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	warehousedb "github.com/nimbushr/syncengine/internal/client/warehouse"
	"github.com/nimbushr/syncengine/internal/config"
	"github.com/nimbushr/syncengine/internal/warehouse"
)

// Exit codes (spec.md §6): 0 success, 2 configuration error, 3 every
// cataloged collection came back empty when -fail-on-zero is passed.
const (
	exitOK             = 0
	exitConfig         = 2
	exitAllCollections = 3
)

func main() {
	failOnZero := flag.Bool("fail-on-zero", false, "exit 3 if every cataloged collection returned no rows")
	collection := flag.String("backfill-collection", "", "run a scoped backfill for this collection instead of a full mirror run")
	dateFrom := flag.String("backfill-from", "", "backfill window start, YYYY-MM-DD (requires -backfill-collection)")
	dateTo := flag.String("backfill-to", "", "backfill window end, YYYY-MM-DD (requires -backfill-collection)")
	personID := flag.String("backfill-person", "", "optional personId filter for the backfill window")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code, err := run(ctx, *failOnZero, *collection, *dateFrom, *dateTo, *personID)
	if err != nil {
		slog.ErrorContext(ctx, "warehousesync failed", "error", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, failOnZero bool, backfillCollection, dateFrom, dateTo, personID string) (int, error) {
	plannerCfg, err := config.LoadPlannerConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("failed to load planner config: %w", err)
	}
	if err := plannerCfg.Validate(); err != nil {
		return exitConfig, fmt.Errorf("invalid planner config: %w", err)
	}

	warehouseCfg, err := config.LoadWarehouseConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("failed to load warehouse config: %w", err)
	}
	if err := warehouseCfg.Validate(); err != nil {
		return exitConfig, fmt.Errorf("invalid warehouse config: %w", err)
	}

	db, err := warehousedb.NewClient(ctx, warehouseCfg)
	if err != nil {
		return exitConfig, fmt.Errorf("failed to init warehouse client: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close warehouse client", "error", err)
		}
	}()
	if err := db.EnsureCheckpointTable(ctx); err != nil {
		return exitConfig, fmt.Errorf("failed to ensure checkpoint table: %w", err)
	}

	mirror := warehouse.New(plannerCfg, db, warehouseCfg)

	var summary warehouse.Summary
	if backfillCollection != "" {
		summary, err = mirror.Backfill(ctx, backfillCollection, dateFrom, dateTo, personID)
	} else {
		summary, err = mirror.Run(ctx)
	}
	if err != nil {
		return exitConfig, fmt.Errorf("warehouse mirror run failed: %w", err)
	}

	slog.InfoContext(ctx, "warehouse mirror run complete",
		"collections_processed", summary.CollectionsProcessed,
		"skipped_empty", summary.Skipped,
		"errors", summary.Errors,
	)

	if len(summary.Errors) > 0 {
		return exitConfig, fmt.Errorf("warehouse mirror run completed with %d collection error(s)", len(summary.Errors))
	}
	if failOnZero && summary.CollectionsProcessed == 0 {
		return exitAllCollections, fmt.Errorf("every cataloged collection returned no rows")
	}
	return exitOK, nil
}
