package mapping

import (
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/SscSPs/ipo_ledger/internal/models"
)

func ToModelSubscription(d domain.Subscription) models.Subscription {
	return models.Subscription{
		SubscriptionID:     d.SubscriptionID,
		UserID:             d.UserID,
		IPOID:              d.IPOID,
		Quantity:           d.Quantity,
		PricePerShare:      d.PricePerShare,
		TotalAmount:        d.TotalAmount,
		Status:             string(d.Status),
		StatusReason:       toNullString(d.StatusReason),
		AllocationQuantity: d.AllocationQuantity,
		AllocationAmount:   d.AllocationAmount,
		SubmittedAt:        d.SubmittedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID:     m.SubscriptionID,
		UserID:             m.UserID,
		IPOID:              m.IPOID,
		Quantity:           m.Quantity,
		PricePerShare:      m.PricePerShare,
		TotalAmount:        m.TotalAmount,
		Status:             domain.SubscriptionStatus(m.Status),
		StatusReason:       fromNullString(m.StatusReason),
		AllocationQuantity: m.AllocationQuantity,
		AllocationAmount:   m.AllocationAmount,
		SubmittedAt:        m.SubmittedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainSubscriptionSlice(ms []models.Subscription) []domain.Subscription {
	ds := make([]domain.Subscription, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSubscription(m)
	}
	return ds
}
