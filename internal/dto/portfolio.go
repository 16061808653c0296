package dto

import (
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// HoldingResponse is one portfolio row.
type HoldingResponse struct {
	Symbol       string          `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

// ToHoldingResponse converts a domain.Holding.
func ToHoldingResponse(h *domain.Holding) HoldingResponse {
	return HoldingResponse{
		Symbol:       h.Symbol,
		Quantity:     h.Quantity,
		AveragePrice: h.AveragePrice,
		TotalCost:    h.TotalCost,
	}
}

// ToListHoldingResponse converts a slice of holdings.
func ToListHoldingResponse(holdings []domain.Holding) []HoldingResponse {
	res := make([]HoldingResponse, len(holdings))
	for i := range holdings {
		res[i] = ToHoldingResponse(&holdings[i])
	}
	return res
}

// ListStockTransactionsParams defines the query parameters for the transaction log.
type ListStockTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// StockTransactionResponse is one audit log entry.
type StockTransactionResponse struct {
	StockTransactionID string                        `json:"stockTransactionID"`
	Symbol             string                        `json:"symbol"`
	SubscriptionID     *string                       `json:"subscriptionID,omitempty"`
	Type               domain.StockTransactionType   `json:"type"`
	Quantity           int64                         `json:"quantity"`
	PricePerShare      decimal.Decimal               `json:"pricePerShare"`
	TotalAmount        decimal.Decimal               `json:"totalAmount"`
	Commission         decimal.Decimal               `json:"commission"`
	Status             domain.StockTransactionStatus `json:"status"`
	TransactionDate    time.Time                     `json:"transactionDate"`
}

// ListStockTransactionsResponse wraps a page of the transaction log.
type ListStockTransactionsResponse struct {
	Transactions []StockTransactionResponse `json:"transactions"`
	NextToken    *string                    `json:"nextToken,omitempty"`
}

// ToStockTransactionResponse converts a domain.StockTransaction.
func ToStockTransactionResponse(st *domain.StockTransaction) StockTransactionResponse {
	return StockTransactionResponse{
		StockTransactionID: st.StockTransactionID,
		Symbol:             st.Symbol,
		SubscriptionID:     st.SubscriptionID,
		Type:               st.Type,
		Quantity:           st.Quantity,
		PricePerShare:      st.PricePerShare,
		TotalAmount:        st.TotalAmount,
		Commission:         st.Commission,
		Status:             st.Status,
		TransactionDate:    st.TransactionDate,
	}
}

// ToListStockTransactionResponse converts a slice of log entries.
func ToListStockTransactionResponse(sts []domain.StockTransaction) []StockTransactionResponse {
	res := make([]StockTransactionResponse, len(sts))
	for i := range sts {
		res[i] = ToStockTransactionResponse(&sts[i])
	}
	return res
}
