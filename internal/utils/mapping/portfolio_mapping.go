package mapping

import (
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/SscSPs/ipo_ledger/internal/models"
)

func ToModelHolding(d domain.Holding) models.Holding {
	return models.Holding{
		PortfolioID:  d.PortfolioID,
		UserID:       d.UserID,
		Symbol:       d.Symbol,
		Quantity:     d.Quantity,
		AveragePrice: d.AveragePrice,
		TotalCost:    d.TotalCost,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainHolding(m models.Holding) domain.Holding {
	return domain.Holding{
		PortfolioID:  m.PortfolioID,
		UserID:       m.UserID,
		Symbol:       m.Symbol,
		Quantity:     m.Quantity,
		AveragePrice: m.AveragePrice,
		TotalCost:    m.TotalCost,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainHoldingSlice(ms []models.Holding) []domain.Holding {
	ds := make([]domain.Holding, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainHolding(m)
	}
	return ds
}

func ToModelStockTransaction(d domain.StockTransaction) models.StockTransaction {
	return models.StockTransaction{
		StockTransactionID: d.StockTransactionID,
		UserID:             d.UserID,
		Symbol:             d.Symbol,
		SubscriptionID:     toNullString(d.SubscriptionID),
		Type:               string(d.Type),
		Quantity:           d.Quantity,
		PricePerShare:      d.PricePerShare,
		TotalAmount:        d.TotalAmount,
		Commission:         d.Commission,
		Status:             string(d.Status),
		TransactionDate:    d.TransactionDate,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainStockTransaction(m models.StockTransaction) domain.StockTransaction {
	return domain.StockTransaction{
		StockTransactionID: m.StockTransactionID,
		UserID:             m.UserID,
		Symbol:             m.Symbol,
		SubscriptionID:     fromNullString(m.SubscriptionID),
		Type:               domain.StockTransactionType(m.Type),
		Quantity:           m.Quantity,
		PricePerShare:      m.PricePerShare,
		TotalAmount:        m.TotalAmount,
		Commission:         m.Commission,
		Status:             domain.StockTransactionStatus(m.Status),
		TransactionDate:    m.TransactionDate,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainStockTransactionSlice(ms []models.StockTransaction) []domain.StockTransaction {
	ds := make([]domain.StockTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockTransaction(m)
	}
	return ds
}
