package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartservice "github.com/ridloal/pos-caisse/internal/cart/service"
	"github.com/ridloal/pos-caisse/internal/checkout/service"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(cs service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: cs}
}

func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup, guards ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, guards...), h.Checkout)
	router.POST("/carts/:id/checkout", handlers...)
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req service.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	res, err := h.checkoutService.Checkout(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, cartservice.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrPrecondition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "state": res.State})
		default:
			logger.Error("Checkout Hdl: unhandled service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed", "state": res.State})
		}
		return
	}

	c.JSON(http.StatusCreated, res)
}
