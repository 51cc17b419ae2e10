package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/mzaytsev/trx-replay-service/internal/config"
	"github.com/mzaytsev/trx-replay-service/internal/engine"
	"github.com/mzaytsev/trx-replay-service/internal/record"
	"github.com/mzaytsev/trx-replay-service/internal/report"
	"github.com/mzaytsev/trx-replay-service/pkg/logger"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	// Load application configurations.
	cfg := config.MustLoad()

	// Create root logger tagged with the version and a run id
	// so log lines of concurrent invocations can be told apart.
	logger := logger.New(cfg).With(ctx, "version", Version, "run_id", uuid.NewString())
	defer func() {
		_ = logger.Sync()
	}()

	// Open the transactions file (plain CSV or gzipped).
	src, err := record.Open(cfg.InputPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Error(err)
		}
	}()

	ledger := engine.NewLedger()

	processor, err := engine.NewProcessor(ledger, logger)
	if err != nil {
		return fmt.Errorf("failed to init processor: %w", err)
	}

	logger.Infof("Replaying transactions from %s", cfg.InputPath)

	stats, err := processor.Run(ctx, src)
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	logger.With(ctx,
		"read", stats.Read,
		"applied", stats.Applied,
		"rejected", stats.Rejected,
		"malformed", stats.Malformed,
	).Info("Replay finished")

	// Emit the final snapshot. Stdout stays clean for it: logs go to
	// stderr or the configured log file.
	out := os.Stdout
	if cfg.OutputPath != "" {
		out, err = os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("create snapshot file: %w", err)
		}
		defer func() {
			if err := out.Close(); err != nil {
				logger.Error(err)
			}
		}()
	}

	if err := report.NewWriter(out).WriteAccounts(ledger.Accounts()); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}
