package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/SscSPs/ipo_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// depositHandler handles deposit submission and review.
type depositHandler struct {
	depositService portssvc.DepositSvcFacade
}

func newDepositHandler(ds portssvc.DepositSvcFacade) *depositHandler {
	return &depositHandler{depositService: ds}
}

func registerDepositRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, ds portssvc.DepositSvcFacade) {
	h := newDepositHandler(ds)

	deposits := rg.Group("/deposits")
	{
		deposits.POST("", h.createDeposit)
		deposits.GET("", h.listDeposits)
		deposits.GET("/:depositID", h.getDeposit)
	}

	adminDeposits := admin.Group("/deposits")
	{
		adminDeposits.GET("/pending", h.listPendingDeposits)
		adminDeposits.POST("/:depositID/review", h.reviewDeposit)
	}
}

// createDeposit godoc
// @Summary Submit a deposit
// @Description Creates a pending deposit. It counts towards the balance only after approval.
// @Tags deposits
// @Accept  json
// @Produce  json
// @Param   deposit body dto.CreateDepositRequest true "Deposit details"
// @Success 201 {object} dto.DepositResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /deposits [post]
func (h *depositHandler) createDeposit(c *gin.Context) {
	var req dto.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	deposit, err := h.depositService.CreateDeposit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create deposit")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDepositResponse(deposit))
}

// listDeposits godoc
// @Summary List the caller's deposits
// @Tags deposits
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListDepositsResponse
// @Security BearerAuth
// @Router /deposits [get]
func (h *depositHandler) listDeposits(c *gin.Context) {
	var params dto.ListDepositsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	deposits, next, err := h.depositService.ListDepositsByUser(c.Request.Context(), userID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list deposits")
		return
	}
	c.JSON(http.StatusOK, dto.ListDepositsResponse{Deposits: dto.ToListDepositResponse(deposits), NextToken: next})
}

// getDeposit godoc
// @Summary Get one of the caller's deposits
// @Tags deposits
// @Produce  json
// @Param   depositID path string true "Deposit ID"
// @Success 200 {object} dto.DepositResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deposits/{depositID} [get]
func (h *depositHandler) getDeposit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	deposit, err := h.depositService.GetDeposit(c.Request.Context(), c.Param("depositID"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve deposit")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// listPendingDeposits godoc
// @Summary Review queue
// @Description Pending deposits of all users, oldest first.
// @Tags admin
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Success 200 {array} dto.DepositResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/deposits/pending [get]
func (h *depositHandler) listPendingDeposits(c *gin.Context) {
	var params dto.ListPendingDepositsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	deposits, err := h.depositService.ListPendingDeposits(c.Request.Context(), params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list pending deposits")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDepositResponse(deposits))
}

// reviewDeposit godoc
// @Summary Approve or reject a pending deposit
// @Description A deposit leaves pending exactly once. Reviewing a terminal deposit returns 409.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   depositID path string true "Deposit ID"
// @Param   review body dto.ReviewDepositRequest true "Decision"
// @Success 200 {object} dto.DepositResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Deposit already reviewed"
// @Security BearerAuth
// @Router /admin/deposits/{depositID}/review [post]
func (h *depositHandler) reviewDeposit(c *gin.Context) {
	var req dto.ReviewDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	reviewerID, ok := requireUserID(c)
	if !ok {
		return
	}

	depositID := c.Param("depositID")
	deposit, err := h.depositService.ReviewDeposit(c.Request.Context(), depositID, req.Decision, req.Reason, reviewerID)
	if err != nil {
		respondError(c, err, "Failed to review deposit")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Deposit reviewed",
		slog.String("deposit_id", depositID), slog.String("status", string(deposit.Status)))
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}
