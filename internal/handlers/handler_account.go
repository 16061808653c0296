package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler serves the caller's ledger settings and derived balance.
type accountHandler struct {
	accountService  portssvc.AccountSvcFacade
	balanceService  portssvc.BalanceSvcFacade
	currencyService portssvc.CurrencyReaderSvc
}

func newAccountHandler(as portssvc.AccountSvcFacade, bs portssvc.BalanceSvcFacade, cs portssvc.CurrencyReaderSvc) *accountHandler {
	return &accountHandler{
		accountService:  as,
		balanceService:  bs,
		currencyService: cs,
	}
}

func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, bs portssvc.BalanceSvcFacade, cs portssvc.CurrencyReaderSvc) {
	h := newAccountHandler(as, bs, cs)

	rg.GET("/balance", h.getBalance)
	account := rg.Group("/account")
	{
		account.GET("", h.getAccount)
		account.PUT("/base-currency", h.setBaseCurrency)
	}
}

// getBalance godoc
// @Summary Get the caller's balance
// @Description Total is approved deposits minus allocated spend; reserved is the sum of pending and confirmed subscriptions; available is total minus reserved. All in the base currency.
// @Tags balance
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 422 {object} ErrorResponse "A rate needed for conversion is missing"
// @Security BearerAuth
// @Router /balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	balance, err := h.balanceService.GetBalance(ctx, userID)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance, h.currencyService.Precision(ctx, balance.CurrencyCode)))
}

// getAccount godoc
// @Summary Get the caller's ledger settings
// @Tags balance
// @Produce  json
// @Success 200 {object} dto.InvestorAccountResponse
// @Security BearerAuth
// @Router /account [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetInvestorAccount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestorAccountResponse(account))
}

// setBaseCurrency godoc
// @Summary Change the currency balances are reported in
// @Tags balance
// @Accept  json
// @Produce  json
// @Param   request body dto.SetBaseCurrencyRequest true "Base currency"
// @Success 200 {object} dto.InvestorAccountResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /account/base-currency [put]
func (h *accountHandler) setBaseCurrency(c *gin.Context) {
	var req dto.SetBaseCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.SetBaseCurrency(c.Request.Context(), userID, req.CurrencyCode)
	if err != nil {
		respondError(c, err, "Failed to update base currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestorAccountResponse(account))
}
