package mapping

import (
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/SscSPs/ipo_ledger/internal/models"
)

func ToModelDeposit(d domain.Deposit) models.Deposit {
	return models.Deposit{
		DepositID:       d.DepositID,
		UserID:          d.UserID,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Method:          d.Method,
		Status:          string(d.Status),
		ReviewedBy:      toNullString(d.ReviewedBy),
		ReviewedAt:      toNullTime(d.ReviewedAt),
		RejectionReason: toNullString(d.RejectionReason),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainDeposit(m models.Deposit) domain.Deposit {
	return domain.Deposit{
		DepositID:       m.DepositID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		Method:          m.Method,
		Status:          domain.DepositStatus(m.Status),
		ReviewedBy:      fromNullString(m.ReviewedBy),
		ReviewedAt:      fromNullTime(m.ReviewedAt),
		RejectionReason: fromNullString(m.RejectionReason),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainDepositSlice(ms []models.Deposit) []domain.Deposit {
	ds := make([]domain.Deposit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDeposit(m)
	}
	return ds
}
