package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type portfolioHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func registerPortfolioRoutes(rg *gin.RouterGroup, ss portssvc.SettlementSvcFacade) {
	h := &portfolioHandler{settlementService: ss}

	portfolio := rg.Group("/portfolio")
	{
		portfolio.GET("", h.getPortfolio)
		portfolio.GET("/transactions", h.listStockTransactions)
	}
}

// getPortfolio godoc
// @Summary List the caller's holdings
// @Tags portfolio
// @Produce  json
// @Success 200 {array} dto.HoldingResponse
// @Security BearerAuth
// @Router /portfolio [get]
func (h *portfolioHandler) getPortfolio(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	holdings, err := h.settlementService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve portfolio")
		return
	}
	c.JSON(http.StatusOK, dto.ToListHoldingResponse(holdings))
}

// listStockTransactions godoc
// @Summary List the caller's stock transactions
// @Tags portfolio
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListStockTransactionsResponse
// @Security BearerAuth
// @Router /portfolio/transactions [get]
func (h *portfolioHandler) listStockTransactions(c *gin.Context) {
	var params dto.ListStockTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txns, next, err := h.settlementService.ListStockTransactions(c.Request.Context(), userID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list stock transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListStockTransactionsResponse{
		Transactions: dto.ToListStockTransactionResponse(txns),
		NextToken:    next,
	})
}
