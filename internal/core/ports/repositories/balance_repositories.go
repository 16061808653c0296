package repositories

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BalanceReader sums the sources a balance is derived from. Each call is a single
// statement, so all components come from one snapshot.
type BalanceReader interface {
	// SumBalanceComponents groups approved deposits, allocated spend and open reservations by currency.
	SumBalanceComponents(ctx context.Context, userID string) ([]domain.BalanceComponent, error)

	// SumBalanceComponentsInTx does the same inside tx, leaving out the reservation of
	// excludeSubscriptionID when it is not empty.
	SumBalanceComponentsInTx(ctx context.Context, tx pgx.Tx, userID, excludeSubscriptionID string) ([]domain.BalanceComponent, error)
}
