package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/pos-caisse/internal/platform/logger"
	"github.com/ridloal/pos-caisse/internal/sales/domain"
	"github.com/ridloal/pos-caisse/internal/sales/service"
)

type SalesHandler struct {
	ledgerService service.LedgerService
}

func NewSalesHandler(ls service.LedgerService) *SalesHandler {
	return &SalesHandler{ledgerService: ls}
}

// RegisterRoutes mounts the ledger. guards run before the status transitions.
func (h *SalesHandler) RegisterRoutes(router *gin.RouterGroup, guards ...gin.HandlerFunc) {
	guarded := func(next gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guards...), next)
	}
	salesRoutes := router.Group("/sales")
	{
		salesRoutes.GET("", h.ListSales)
		salesRoutes.GET("/:id", h.GetSale)
		salesRoutes.POST("/:id/settle", guarded(h.SettleSale)...)
		salesRoutes.POST("/:id/cancel", guarded(h.CancelSale)...)
	}
}

// ListSales query: ?status=paid&search=..&type=..&date=today|week|month
func (h *SalesHandler) ListSales(c *gin.Context) {
	var filter domain.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	page, err := h.ledgerService.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sales"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *SalesHandler) GetSale(c *gin.Context) {
	sale, err := h.ledgerService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "GetSale", err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SalesHandler) SettleSale(c *gin.Context) {
	sale, err := h.ledgerService.SettleSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "SettleSale", err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SalesHandler) CancelSale(c *gin.Context) {
	sale, err := h.ledgerService.CancelSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "CancelSale", err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SalesHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(op+": service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sale operation failed"})
	}
}
