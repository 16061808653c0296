package mapping

import (
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/SscSPs/ipo_ledger/internal/models"
)

func ToModelIPO(d domain.IPO) models.IPO {
	return models.IPO{
		IPOID:        d.IPOID,
		Symbol:       d.Symbol,
		CompanyName:  d.CompanyName,
		CurrencyCode: d.CurrencyCode,
		PriceMin:     d.PriceMin,
		PriceMax:     d.PriceMax,
		LotSize:      d.LotSize,
		TotalShares:  d.TotalShares,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		ListingDate:  toNullTime(d.ListingDate),
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainIPO(m models.IPO) domain.IPO {
	return domain.IPO{
		IPOID:        m.IPOID,
		Symbol:       m.Symbol,
		CompanyName:  m.CompanyName,
		CurrencyCode: m.CurrencyCode,
		PriceMin:     m.PriceMin,
		PriceMax:     m.PriceMax,
		LotSize:      m.LotSize,
		TotalShares:  m.TotalShares,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		ListingDate:  fromNullTime(m.ListingDate),
		Status:       domain.IPOStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainIPOSlice(ms []models.IPO) []domain.IPO {
	ds := make([]domain.IPO, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainIPO(m)
	}
	return ds
}
