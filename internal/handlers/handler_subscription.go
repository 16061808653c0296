package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// subscriptionHandler handles IPO subscription requests.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{subscriptionService: ss}
}

func registerSubscriptionRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, ss portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(ss)

	subs := rg.Group("/subscriptions")
	{
		subs.POST("", h.subscribe)
		subs.GET("", h.listSubscriptions)
		subs.GET("/:subscriptionID", h.getSubscription)
		subs.PUT("/:subscriptionID", h.amendSubscription)
		subs.POST("/:subscriptionID/cancel", h.cancelSubscription)
	}

	admin.POST("/subscriptions/:subscriptionID/confirm", h.confirmSubscription)
}

// subscribe godoc
// @Summary Subscribe to an ongoing IPO
// @Description Reserves quantity times price from the available balance. The balance check and the insert run under a per-user lock.
// @Tags subscriptions
// @Accept  json
// @Produce  json
// @Param   subscription body dto.CreateSubscriptionRequest true "Order"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} ErrorResponse "Lot size or price band violated"
// @Failure 409 {object} ErrorResponse "An open subscription already exists"
// @Failure 422 {object} ErrorResponse "Insufficient balance, window closed or missing rate"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *subscriptionHandler) subscribe(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Subscribe(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create subscription")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

// listSubscriptions godoc
// @Summary List the caller's subscriptions
// @Tags subscriptions
// @Produce  json
// @Success 200 {array} dto.SubscriptionResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *subscriptionHandler) listSubscriptions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	subs, err := h.subscriptionService.ListSubscriptionsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list subscriptions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSubscriptionResponse(subs))
}

// getSubscription godoc
// @Summary Get one of the caller's subscriptions
// @Tags subscriptions
// @Produce  json
// @Param   subscriptionID path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID} [get]
func (h *subscriptionHandler) getSubscription(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetSubscription(c.Request.Context(), c.Param("subscriptionID"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve subscription")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// amendSubscription godoc
// @Summary Change quantity or price of a pending subscription
// @Description The subscription's own reservation is released before the balance check.
// @Tags subscriptions
// @Accept  json
// @Produce  json
// @Param   subscriptionID path string true "Subscription ID"
// @Param   subscription body dto.AmendSubscriptionRequest true "New order terms"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 409 {object} ErrorResponse "Subscription is no longer pending"
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID} [put]
func (h *subscriptionHandler) amendSubscription(c *gin.Context) {
	var req dto.AmendSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Amend(c.Request.Context(), c.Param("subscriptionID"), userID, req)
	if err != nil {
		respondError(c, err, "Failed to amend subscription")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// cancelSubscription godoc
// @Summary Cancel a pending subscription
// @Tags subscriptions
// @Produce  json
// @Param   subscriptionID path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 409 {object} ErrorResponse "Subscription is no longer pending"
// @Security BearerAuth
// @Router /subscriptions/{subscriptionID}/cancel [post]
func (h *subscriptionHandler) cancelSubscription(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Cancel(c.Request.Context(), c.Param("subscriptionID"), userID)
	if err != nil {
		respondError(c, err, "Failed to cancel subscription")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// confirmSubscription godoc
// @Summary Confirm a pending subscription
// @Description A confirmed subscription keeps its reservation and can no longer be cancelled or amended.
// @Tags admin
// @Produce  json
// @Param   subscriptionID path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/subscriptions/{subscriptionID}/confirm [post]
func (h *subscriptionHandler) confirmSubscription(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Confirm(c.Request.Context(), c.Param("subscriptionID"), adminID)
	if err != nil {
		respondError(c, err, "Failed to confirm subscription")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}
