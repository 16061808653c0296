package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/services"
	"github.com/SscSPs/ipo_ledger/internal/platform/config"
	"github.com/SscSPs/ipo_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/ipo_ledger/internal/utils"
	"github.com/SscSPs/ipo_ledger/pkg/database"
	"github.com/google/subcommands"
)

// sweepCmd runs one allocation sweep against the configured database and prints the report.
type sweepCmd struct {
	out io.Writer

	at string
}

func (*sweepCmd) Name() string     { return "sweep" }
func (*sweepCmd) Synopsis() string { return "run one allocation sweep now" }
func (*sweepCmd) Usage() string {
	return `sweep [-at 2026-05-06T00:00:00Z]

  Opens, closes and allocates, and lists IPOs whose dates have passed.
  -at overrides the sweep time (RFC 3339); it defaults to now.
`
}

func (c *sweepCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.at, "at", "", "Sweep time in RFC 3339, defaults to now")
}

func (c *sweepCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now, err := parseSweepTime(c.at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer database.ClosePgxPool(pool)

	tracker := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer tracker.Close()

	svc := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), tracker)
	report, err := svc.Allocation.RunAllocationSweep(ctx, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sweep failed: %v\n", err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(report.Failed) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func parseSweepTime(at string) (time.Time, error) {
	if at == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -at %q: %w", at, err)
	}
	return t.UTC(), nil
}
