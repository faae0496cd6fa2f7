package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slotwise/booking-api/internal/handler"
	"github.com/slotwise/booking-api/internal/model"
	"github.com/slotwise/booking-api/internal/service/auth"
	apperrors "github.com/slotwise/booking-api/pkg/errors"
)

type Handler struct {
	service auth.Servicer
}

func NewHandler(service auth.Servicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse("email already registered"))
			return
		}
		if apperrors.IsCode(err, apperrors.ErrBadRequest) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to create account"))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}
