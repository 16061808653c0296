package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/SscSPs/ipo_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// currencyHandler handles HTTP requests related to currencies and their directed rates.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
	rateService     portssvc.CurrencyRateSvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade, rs portssvc.CurrencyRateSvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
		rateService:     rs,
	}
}

// registerCurrencyRoutes registers the read routes for every user and the write routes for admins.
func registerCurrencyRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, cs portssvc.CurrencySvcFacade, rs portssvc.CurrencyRateSvcFacade) {
	h := newCurrencyHandler(cs, rs)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrencyByCode)
	}

	rates := rg.Group("/currency-rates")
	{
		rates.GET("", h.listCurrencyRates)
		rates.GET("/:from/:to", h.getCurrencyRate)
	}
	rg.GET("/convert", h.convert)

	admin.POST("/currencies", h.createCurrency)
	admin.PUT("/currency-rates", h.upsertCurrencyRate)
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Adds a new currency to the catalogue. Precision defaults to the ISO 4217 minor units.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Currency code already exists"
// @Security BearerAuth
// @Router /admin/currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create currency")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// getCurrencyByCode godoc
// @Summary Get a currency by code
// @Tags currencies
// @Produce  json
// @Param   code path string true "Currency Code" MinLength(3) MaxLength(10)
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	currencyCode := strings.ToUpper(c.Param("code"))
	if !domain.IsValidCurrencyCode(currencyCode) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: apperrors.CodeValidation, Error: "Invalid currency code"})
		return
	}

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), currencyCode)
	if err != nil {
		respondError(c, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List all currencies
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// upsertCurrencyRate godoc
// @Summary Create or replace a directed currency rate
// @Description Sets the rate used to convert from one currency into another. The inverse pair is not touched.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpsertCurrencyRateRequest true "Rate details"
// @Success 200 {object} dto.CurrencyRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/currency-rates [put]
func (h *currencyHandler) upsertCurrencyRate(c *gin.Context) {
	var req dto.UpsertCurrencyRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rate, err := h.rateService.UpsertCurrencyRate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to save currency rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyRateResponse(rate))
}

// listCurrencyRates godoc
// @Summary List currency rates
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyRateResponse
// @Security BearerAuth
// @Router /currency-rates [get]
func (h *currencyHandler) listCurrencyRates(c *gin.Context) {
	rates, err := h.rateService.ListCurrencyRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list currency rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyRateResponse(rates))
}

// getCurrencyRate godoc
// @Summary Get the directed rate for a currency pair
// @Tags currencies
// @Produce  json
// @Param   from path string true "Source currency"
// @Param   to path string true "Target currency"
// @Success 200 {object} dto.CurrencyRateResponse
// @Failure 422 {object} ErrorResponse "No rate for the pair"
// @Security BearerAuth
// @Router /currency-rates/{from}/{to} [get]
func (h *currencyHandler) getCurrencyRate(c *gin.Context) {
	rate, err := h.rateService.GetCurrencyRate(c.Request.Context(), c.Param("from"), c.Param("to"))
	if err != nil {
		respondError(c, err, "Failed to retrieve currency rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyRateResponse(rate))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Uses only the active (from, to) rate and rounds to the target currency precision.
// @Tags currencies
// @Produce  json
// @Param   amount query string true "Amount"
// @Param   from query string true "Source currency"
// @Param   to query string true "Target currency"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No active rate"
// @Security BearerAuth
// @Router /convert [get]
func (h *currencyHandler) convert(c *gin.Context) {
	from := strings.ToUpper(c.Query("from"))
	to := strings.ToUpper(c.Query("to"))
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || !domain.IsValidCurrencyCode(from) || !domain.IsValidCurrencyCode(to) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: apperrors.CodeValidation, Error: "amount, from and to are required"})
		return
	}

	ctx := c.Request.Context()
	result, err := h.rateService.Convert(ctx, amount, from, to)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Converted amount", slog.String("from", from), slog.String("to", to))
	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:           amount.String(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Result:           result.StringFixed(h.currencyService.Precision(ctx, to)),
	})
}
