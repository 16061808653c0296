// Package accounting holds the cost-basis arithmetic shared by settlement and reporting.
package accounting

import (
	"fmt"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PricePrecision is the number of decimal places kept on per-share averages.
const PricePrecision int32 = 8

// OrderValue returns quantity * pricePerShare without rounding.
func OrderValue(quantity int64, pricePerShare decimal.Decimal) decimal.Decimal {
	return pricePerShare.Mul(decimal.NewFromInt(quantity))
}

// AveragePrice divides total cost by quantity. Zero quantity yields zero.
func AveragePrice(totalCost decimal.Decimal, quantity int64) decimal.Decimal {
	if quantity == 0 {
		return decimal.Zero
	}
	return totalCost.DivRound(decimal.NewFromInt(quantity), PricePrecision)
}

// ApplyBuy folds a purchase into a holding using weighted-average cost.
//
//	newQuantity = quantity + q
//	newTotalCost = totalCost + q*price + commission
//	newAveragePrice = newTotalCost / newQuantity
func ApplyBuy(h domain.Holding, quantity int64, pricePerShare, commission decimal.Decimal) (domain.Holding, error) {
	if quantity <= 0 {
		return h, fmt.Errorf("buy quantity must be positive, got %d", quantity)
	}
	if pricePerShare.IsNegative() || commission.IsNegative() {
		return h, fmt.Errorf("price and commission must not be negative")
	}

	h.Quantity += quantity
	h.TotalCost = h.TotalCost.Add(OrderValue(quantity, pricePerShare)).Add(commission)
	h.AveragePrice = AveragePrice(h.TotalCost, h.Quantity)
	return h, nil
}
