package handlers

import (
	"net/http"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// ipoHandler serves the IPO catalogue and the back-office allocation controls.
type ipoHandler struct {
	ipoService        portssvc.IPOSvcFacade
	allocationService portssvc.AllocationSvcFacade
	settlementService portssvc.SettlementSvcFacade
}

func newIPOHandler(is portssvc.IPOSvcFacade, as portssvc.AllocationSvcFacade, ss portssvc.SettlementSvcFacade) *ipoHandler {
	return &ipoHandler{
		ipoService:        is,
		allocationService: as,
		settlementService: ss,
	}
}

func registerIPORoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, is portssvc.IPOSvcFacade, as portssvc.AllocationSvcFacade, ss portssvc.SettlementSvcFacade) {
	h := newIPOHandler(is, as, ss)

	ipos := rg.Group("/ipos")
	{
		ipos.GET("", h.listIPOs)
		ipos.GET("/:ipoID", h.getIPO)
	}

	admin.POST("/ipos", h.createIPO)
	admin.POST("/ipos/:ipoID/settle", h.settleIPO)
	admin.POST("/allocation/sweep", h.runAllocationSweep)
}

// createIPO godoc
// @Summary Create an IPO
// @Description The IPO starts upcoming and is opened by the allocation sweep once its start date passes.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   ipo body dto.CreateIPORequest true "Offering terms"
// @Success 201 {object} dto.IPOResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Symbol already exists"
// @Security BearerAuth
// @Router /admin/ipos [post]
func (h *ipoHandler) createIPO(c *gin.Context) {
	var req dto.CreateIPORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	ipo, err := h.ipoService.CreateIPO(c.Request.Context(), req, adminID)
	if err != nil {
		respondError(c, err, "Failed to create IPO")
		return
	}
	c.JSON(http.StatusCreated, dto.ToIPOResponse(ipo))
}

// listIPOs godoc
// @Summary List IPOs
// @Tags ipos
// @Produce  json
// @Param   status query string false "Filter by status" Enums(upcoming, ongoing, closed, listed)
// @Success 200 {array} dto.IPOResponse
// @Security BearerAuth
// @Router /ipos [get]
func (h *ipoHandler) listIPOs(c *gin.Context) {
	var params dto.ListIPOsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	var status *domain.IPOStatus
	if params.Status != "" {
		s := domain.IPOStatus(params.Status)
		status = &s
	}

	ipos, err := h.ipoService.ListIPOs(c.Request.Context(), status)
	if err != nil {
		respondError(c, err, "Failed to list IPOs")
		return
	}
	c.JSON(http.StatusOK, dto.ToListIPOResponse(ipos))
}

// getIPO godoc
// @Summary Get an IPO
// @Tags ipos
// @Produce  json
// @Param   ipoID path string true "IPO ID"
// @Success 200 {object} dto.IPOResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ipos/{ipoID} [get]
func (h *ipoHandler) getIPO(c *gin.Context) {
	ipo, err := h.ipoService.GetIPO(c.Request.Context(), c.Param("ipoID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve IPO")
		return
	}
	c.JSON(http.StatusOK, dto.ToIPOResponse(ipo))
}

// runAllocationSweep godoc
// @Summary Run the allocation sweep now
// @Description Opens due IPOs, closes and allocates ongoing IPOs past their end date, lists closed IPOs past their listing date. Safe to run repeatedly.
// @Tags admin
// @Produce  json
// @Success 200 {object} domain.SweepReport
// @Security BearerAuth
// @Router /admin/allocation/sweep [post]
func (h *ipoHandler) runAllocationSweep(c *gin.Context) {
	report, err := h.allocationService.RunAllocationSweep(c.Request.Context(), timeNow())
	if err != nil {
		respondError(c, err, "Allocation sweep failed")
		return
	}
	c.JSON(http.StatusOK, report)
}

// settleIPO godoc
// @Summary Re-apply settlement for a closed IPO
// @Description Credits allocated subscriptions that have no stock transaction yet. Already settled rows are skipped.
// @Tags admin
// @Produce  json
// @Param   ipoID path string true "IPO ID"
// @Success 200 {object} map[string]int
// @Failure 409 {object} ErrorResponse "IPO is not closed"
// @Security BearerAuth
// @Router /admin/ipos/{ipoID}/settle [post]
func (h *ipoHandler) settleIPO(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	settled, err := h.settlementService.SettleIPO(c.Request.Context(), c.Param("ipoID"), adminID)
	if err != nil {
		respondError(c, err, "Settlement failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settled": settled})
}
