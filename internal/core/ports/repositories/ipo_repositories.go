package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// IPOReader defines read operations for IPOs
type IPOReader interface {
	FindIPOByID(ctx context.Context, ipoID string) (*domain.IPO, error)

	// ListIPOs returns all IPOs, or only those in status when it is non-nil.
	ListIPOs(ctx context.Context, status *domain.IPOStatus) ([]domain.IPO, error)

	// ListIPOIDsDueForClose returns ongoing IPOs whose end date is before now.
	ListIPOIDsDueForClose(ctx context.Context, now time.Time) ([]string, error)
}

// IPOWriter defines write operations for IPOs
type IPOWriter interface {
	SaveIPO(ctx context.Context, ipo domain.IPO) error

	// FindIPOByIDForShare reads the IPO under FOR SHARE so it cannot be closed until tx ends.
	FindIPOByIDForShare(ctx context.Context, tx pgx.Tx, ipoID string) (*domain.IPO, error)

	// FindIPOByIDInTx reads the IPO inside tx without additional locking.
	FindIPOByIDInTx(ctx context.Context, tx pgx.Tx, ipoID string) (*domain.IPO, error)

	// OpenDueIPOs moves upcoming IPOs whose start date has passed to ongoing.
	OpenDueIPOs(ctx context.Context, now time.Time, actor string) (int64, error)

	// CloseIPO atomically moves an ongoing IPO past its end date to closed.
	// It reports false when another run got there first.
	CloseIPO(ctx context.Context, tx pgx.Tx, ipoID string, now time.Time, actor string) (bool, error)

	// MarkListedIPOs moves closed IPOs whose listing date has passed to listed.
	MarkListedIPOs(ctx context.Context, now time.Time, actor string) (int64, error)
}

// IPORepositoryFacade combines all IPO repository interfaces
type IPORepositoryFacade interface {
	IPOReader
	IPOWriter
}

// IPORepositoryWithTx extends IPORepositoryFacade with transaction capabilities
type IPORepositoryWithTx interface {
	IPORepositoryFacade
	TransactionManager
}
