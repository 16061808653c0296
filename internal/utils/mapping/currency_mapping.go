package mapping

import (
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/SscSPs/ipo_ledger/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode: d.CurrencyCode,
		Symbol:       d.Symbol,
		Name:         d.Name,
		Precision:    d.Precision,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		Name:         m.Name,
		Precision:    m.Precision,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}

// ToModelCurrencyRate converts a domain CurrencyRate to a model CurrencyRate
func ToModelCurrencyRate(d domain.CurrencyRate) models.CurrencyRate {
	return models.CurrencyRate{
		CurrencyRateID:   d.CurrencyRateID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		IsActive:         d.IsActive,
		IsManual:         d.IsManual,
		UpdatedBy:        d.UpdatedBy,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrencyRate converts a model CurrencyRate to a domain CurrencyRate
func ToDomainCurrencyRate(m models.CurrencyRate) domain.CurrencyRate {
	return domain.CurrencyRate{
		CurrencyRateID:   m.CurrencyRateID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		IsActive:         m.IsActive,
		IsManual:         m.IsManual,
		UpdatedBy:        m.UpdatedBy,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvestorAccount converts a domain InvestorAccount to its model
func ToModelInvestorAccount(d domain.InvestorAccount) models.InvestorAccount {
	return models.InvestorAccount{
		UserID:           d.UserID,
		BaseCurrencyCode: d.BaseCurrencyCode,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvestorAccount converts a model InvestorAccount to its domain form
func ToDomainInvestorAccount(m models.InvestorAccount) domain.InvestorAccount {
	return domain.InvestorAccount{
		UserID:           m.UserID,
		BaseCurrencyCode: m.BaseCurrencyCode,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
