package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/pos-caisse/internal/operator/domain"
	"github.com/ridloal/pos-caisse/internal/operator/service"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
)

type OperatorHandler struct {
	operatorService service.OperatorService
}

func NewOperatorHandler(svc service.OperatorService) *OperatorHandler {
	return &OperatorHandler{operatorService: svc}
}

func (h *OperatorHandler) RegisterRoutes(router *gin.RouterGroup) {
	operatorRoutes := router.Group("/operators")
	{
		operatorRoutes.POST("/register", h.Register)
		operatorRoutes.POST("/login", h.Login)
	}
}

func (h *OperatorHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	op, err := h.operatorService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOperatorAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Register: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register operator"})
		}
		return
	}

	c.JSON(http.StatusCreated, op)
}

func (h *OperatorHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	response, err := h.operatorService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Login: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, response)
}
