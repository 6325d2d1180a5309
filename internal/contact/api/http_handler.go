package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/pos-caisse/internal/contact/domain"
	"github.com/ridloal/pos-caisse/internal/contact/service"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
)

type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(cs service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: cs}
}

func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	customerRoutes := router.Group("/customers")
	{
		customerRoutes.GET("", h.SearchCustomers)
		customerRoutes.POST("", h.CreateCustomer)
		customerRoutes.GET("/:id", h.GetCustomer)
		customerRoutes.PUT("/:id", h.UpdateCustomer)
	}
}

// SearchCustomers query: ?search=&kind=client|supplier
func (h *ContactHandler) SearchCustomers(c *gin.Context) {
	kind := domain.Kind(c.DefaultQuery("kind", string(domain.KindClient)))
	if kind != domain.KindClient && kind != domain.KindSupplier {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidKind.Error()})
		return
	}
	customers, err := h.contactService.SearchContacts(c.Request.Context(), kind, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *ContactHandler) GetCustomer(c *gin.Context) {
	customer, err := h.contactService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "GetCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *ContactHandler) CreateCustomer(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	customer, err := h.contactService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "CreateCustomer", err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *ContactHandler) UpdateCustomer(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	customer, err := h.contactService.UpdateCustomer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, "UpdateCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *ContactHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidContact):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(op+": service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process contact"})
	}
}
