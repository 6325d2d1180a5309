package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ridloal/pos-caisse/internal/cart/domain"
	"github.com/ridloal/pos-caisse/internal/cart/service"
	catalog "github.com/ridloal/pos-caisse/internal/catalog/domain"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
	"github.com/ridloal/pos-caisse/internal/pricing"
)

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type CartHandler struct {
	cartService service.CartService
	taxRate     decimal.Decimal
}

func NewCartHandler(cs service.CartService, taxRate decimal.Decimal) *CartHandler {
	return &CartHandler{cartService: cs, taxRate: taxRate}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cartRoutes := router.Group("/carts")
	{
		cartRoutes.POST("", h.OpenCart)
		cartRoutes.GET("/:id", h.GetCart)
		cartRoutes.DELETE("/:id", h.DiscardCart)
		cartRoutes.POST("/:id/items", h.AddItem)
		cartRoutes.PATCH("/:id/items/:productId", h.ChangeQuantity)
		cartRoutes.DELETE("/:id/items/:productId", h.RemoveItem)
	}
}

func (h *CartHandler) OpenCart(c *gin.Context) {
	id := h.cartService.NewSession()
	h.respondSummary(c, http.StatusCreated, id)
}

// GetCart renders the cart with totals. Optional ?discount= and ?advance=
// feed the pricing policy.
func (h *CartHandler) GetCart(c *gin.Context) {
	h.respondSummary(c, http.StatusOK, c.Param("id"))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if err := h.cartService.AddItem(c.Request.Context(), c.Param("id"), req.ProductID); err != nil {
		h.respondError(c, "AddItem", err)
		return
	}
	h.respondSummary(c, http.StatusOK, c.Param("id"))
}

func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	var req ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if err := h.cartService.ChangeQuantity(c.Param("id"), c.Param("productId"), req.Delta); err != nil {
		h.respondError(c, "ChangeQuantity", err)
		return
	}
	h.respondSummary(c, http.StatusOK, c.Param("id"))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.cartService.RemoveItem(c.Param("id"), c.Param("productId")); err != nil {
		h.respondError(c, "RemoveItem", err)
		return
	}
	h.respondSummary(c, http.StatusOK, c.Param("id"))
}

func (h *CartHandler) DiscardCart(c *gin.Context) {
	if err := h.cartService.DiscardSession(c.Param("id")); err != nil {
		h.respondError(c, "DiscardCart", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) respondSummary(c *gin.Context, status int, sessionID string) {
	policy, err := PolicyFromQuery(c, h.taxRate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	summary, err := h.cartService.Summary(sessionID, policy)
	if err != nil {
		h.respondError(c, "Summary", err)
		return
	}
	c.JSON(status, summary)
}

func (h *CartHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, domain.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(op+": cart service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart operation failed"})
	}
}

// PolicyFromQuery builds a pricing policy from the configured tax rate and
// the optional discount and advance query parameters.
func PolicyFromQuery(c *gin.Context, taxRate decimal.Decimal) (pricing.Policy, error) {
	policy := pricing.Policy{TaxRate: taxRate}
	for key, dst := range map[string]*decimal.Decimal{"discount": &policy.Discount, "advance": &policy.Advance} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return pricing.Policy{}, errors.New("invalid " + key + ": " + raw)
		}
		*dst = d
	}
	return policy, nil
}
