package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int32  `json:"precision"`    // Minor-unit digits: 2 for fiat, up to 8 for crypto
	AuditFields
}

// MaxPrecision bounds the minor-unit digits accepted for a currency.
const MaxPrecision int32 = 8

// Currency codes are 3 to 10 uppercase letters or digits starting with a letter:
// ISO 4217 codes like "USD" and crypto tickers like "USDT".
const (
	MinCurrencyCodeLen = 3
	MaxCurrencyCodeLen = 10
)

// IsValidCurrencyCode reports whether code is a well-formed, already uppercased currency code.
func IsValidCurrencyCode(code string) bool {
	if len(code) < MinCurrencyCodeLen || len(code) > MaxCurrencyCodeLen {
		return false
	}
	for i, r := range code {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
