package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/utils/allocation"
	"github.com/jackc/pgx/v5"
)

// allocationService closes IPOs and distributes their shares pro rata.
type allocationService struct {
	BaseService
	ipoRepo       portsrepo.IPORepositoryFacade
	subRepo       portsrepo.SubscriptionRepositoryFacade
	settlementSvc portssvc.SettlementSvcFacade
}

// NewAllocationService creates the allocation engine.
func NewAllocationService(
	txManager portsrepo.TransactionManager,
	ipoRepo portsrepo.IPORepositoryFacade,
	subRepo portsrepo.SubscriptionRepositoryFacade,
	settlementSvc portssvc.SettlementSvcFacade,
	options ...ServiceOption,
) portssvc.AllocationSvcFacade {
	return &allocationService{
		BaseService:   newBaseService(txManager, options),
		ipoRepo:       ipoRepo,
		subRepo:       subRepo,
		settlementSvc: settlementSvc,
	}
}

var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// RunAllocationSweep processes each due IPO in its own transaction. One IPO failing
// is recorded in the report and does not stop the others; it is retried on the next
// run because its status change never committed.
func (s *allocationService) RunAllocationSweep(ctx context.Context, now time.Time) (*domain.SweepReport, error) {
	report := &domain.SweepReport{Closed: []domain.AllocationSummary{}, Failed: map[string]string{}}

	opened, err := s.ipoRepo.OpenDueIPOs(ctx, now, domain.SystemActor)
	if err != nil {
		s.LogError(ctx, err, "Failed to open due IPOs")
		return nil, err
	}
	report.Opened = int(opened)

	dueIDs, err := s.ipoRepo.ListIPOIDsDueForClose(ctx, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to list IPOs due for close")
		return nil, err
	}

	for _, ipoID := range dueIDs {
		summary, err := s.CloseAndAllocate(ctx, ipoID, now)
		if err != nil {
			s.LogError(ctx, err, "Allocation failed, will retry on next sweep", slog.String("ipo_id", ipoID))
			report.Failed[ipoID] = err.Error()
			continue
		}
		if !summary.Skipped {
			report.Closed = append(report.Closed, *summary)
		}
	}

	listed, err := s.ipoRepo.MarkListedIPOs(ctx, now, domain.SystemActor)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark listed IPOs")
		return report, err
	}
	report.Listed = int(listed)

	s.LogInfo(ctx, "Allocation sweep finished",
		slog.Int("opened", report.Opened), slog.Int("closed", len(report.Closed)),
		slog.Int("listed", report.Listed), slog.Int("failed", len(report.Failed)))
	s.Track(domain.SystemActor, "allocation_sweep", map[string]any{
		"opened": report.Opened,
		"closed": len(report.Closed),
		"listed": report.Listed,
		"failed": len(report.Failed),
	})
	return report, nil
}

// CloseAndAllocate flips the IPO from ongoing to closed with a compare-and-swap.
// Only the run that wins the swap allocates; everyone else gets a skipped summary.
// Allocation, status writes and settlement share the transaction of the swap.
func (s *allocationService) CloseAndAllocate(ctx context.Context, ipoID string, now time.Time) (*domain.AllocationSummary, error) {
	var summary domain.AllocationSummary

	err := s.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		summary = domain.AllocationSummary{IPOID: ipoID}

		closed, err := s.ipoRepo.CloseIPO(ctx, tx, ipoID, now, domain.SystemActor)
		if err != nil {
			return err
		}
		if !closed {
			summary.Skipped = true
			return nil
		}

		ipo, err := s.ipoRepo.FindIPOByIDInTx(ctx, tx, ipoID)
		if err != nil {
			return err
		}
		summary.Symbol = ipo.Symbol

		subs, err := s.subRepo.ListReservingByIPOForUpdate(ctx, tx, ipoID)
		if err != nil {
			return err
		}

		requests := make([]allocation.Request, len(subs))
		for i, sub := range subs {
			requests[i] = allocation.Request{ID: sub.SubscriptionID, Quantity: sub.Quantity, SubscribedAt: sub.SubmittedAt}
		}
		outcome, err := allocation.ProRata(requests, ipo.TotalShares, ipo.LotSize)
		if err != nil {
			return fmt.Errorf("failed to allocate ipo %s: %w", ipo.Symbol, err)
		}

		summary.Demand = outcome.Demand
		summary.Capacity = outcome.Capacity
		summary.Allocated = outcome.Allocated
		summary.Oversubscribed = outcome.Oversubscribed
		summary.Subscriptions = len(subs)

		for i := range subs {
			sub := &subs[i]
			if err := sub.ApplyAllocation(outcome.Results[i].Quantity, domain.SystemActor, now); err != nil {
				return err
			}
			if err := s.subRepo.UpdateSubscription(ctx, tx, *sub); err != nil {
				return err
			}
			if sub.Status != domain.SubscriptionAllocated {
				summary.Rejected++
				continue
			}
			settled, err := s.settlementSvc.SettleSubscriptionTx(ctx, tx, *sub, *ipo, now)
			if err != nil {
				return fmt.Errorf("failed to settle subscription %s: %w", sub.SubscriptionID, err)
			}
			if settled {
				summary.Settled++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if summary.Skipped {
		s.LogDebug(ctx, "IPO already closed by another run", slog.String("ipo_id", ipoID))
	} else {
		s.LogInfo(ctx, "IPO closed and allocated",
			slog.String("ipo_id", ipoID), slog.String("symbol", summary.Symbol),
			slog.Int64("demand", summary.Demand), slog.Int64("capacity", summary.Capacity),
			slog.Int64("allocated", summary.Allocated), slog.Bool("oversubscribed", summary.Oversubscribed),
			slog.Int("rejected", summary.Rejected), slog.Int("settled", summary.Settled))
	}
	return &summary, nil
}
