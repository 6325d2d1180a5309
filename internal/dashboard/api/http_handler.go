package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/pos-caisse/internal/dashboard/service"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(ds service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Overview)
	router.GET("/dashboard/best-sellers", h.BestSellers)
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		logger.Error("Overview: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// BestSellers query: ?limit=5
func (h *DashboardHandler) BestSellers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}
	best, err := h.dashboardService.BestSellers(c.Request.Context(), limit)
	if err != nil {
		logger.Error("BestSellers: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank products"})
		return
	}
	c.JSON(http.StatusOK, best)
}
