package scheduler

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
)

// AllocationSweepJob opens, closes and lists IPOs whose dates have passed.
type AllocationSweepJob struct {
	allocation portssvc.AllocationSvcFacade
	log        *slog.Logger
	now        func() time.Time
}

// NewAllocationSweepJob creates the sweep job.
func NewAllocationSweepJob(allocation portssvc.AllocationSvcFacade, logger *slog.Logger) *AllocationSweepJob {
	return &AllocationSweepJob{
		allocation: allocation,
		log:        logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (j *AllocationSweepJob) Name() string {
	return "allocation_sweep"
}

func (j *AllocationSweepJob) Run(ctx context.Context) error {
	report, err := j.allocation.RunAllocationSweep(ctx, j.now())
	if err != nil {
		return err
	}

	j.log.Info("Allocation sweep finished",
		slog.Int("opened", report.Opened),
		slog.Int("closed", len(report.Closed)),
		slog.Int("listed", report.Listed),
		slog.Int("failed", len(report.Failed)))
	for ipoID, reason := range report.Failed {
		j.log.Warn("IPO allocation failed, will retry next sweep", slog.String("ipo_id", ipoID), slog.String("error", reason))
	}
	return nil
}
