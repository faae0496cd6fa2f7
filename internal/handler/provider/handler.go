package provider

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/slotwise/booking-api/internal/handler"
	"github.com/slotwise/booking-api/internal/middleware"
	"github.com/slotwise/booking-api/internal/model"
	"github.com/slotwise/booking-api/internal/service/booking"
	"github.com/slotwise/booking-api/internal/service/provider"
	apperrors "github.com/slotwise/booking-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service    provider.Servicer
	bookingSvc booking.Servicer
	windowDays int
}

func NewHandler(service provider.Servicer, bookingSvc booking.Servicer, windowDays int) *Handler {
	return &Handler{
		service:    service,
		bookingSvc: bookingSvc,
		windowDays: windowDays,
	}
}

func (h *Handler) ListProviders(c *gin.Context) {
	providers, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list providers"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(providers))
}

func (h *Handler) SearchProviders(c *gin.Context) {
	providers, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to search providers"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(providers))
}

// GetProvider returns the provider together with its bookable slots for
// the default window starting today.
func (h *Handler) GetProvider(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	prov, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("provider not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to get provider"))
		return
	}

	today := time.Now().Truncate(24 * time.Hour)
	slots, err := h.bookingSvc.AvailableSlots(c.Request.Context(), id, today, h.windowDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to compute slots"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"provider":        prov,
		"available_slots": slots,
	}))
}

// ListSlots resolves bookable slots over an explicit window. Defaults:
// start today, the configured window length.
func (h *Handler) ListSlots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	start := time.Now().Truncate(24 * time.Hour)
	if raw := c.Query("start"); raw != "" {
		start, err = time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid start date"))
			return
		}
	}

	days := h.windowDays
	if raw := c.Query("days"); raw != "" {
		parsed, ok := parsePositiveInt(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid days"))
			return
		}
		days = parsed
	}

	slots, err := h.bookingSvc.AvailableSlots(c.Request.Context(), id, start, days)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("provider not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to compute slots"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

// AvailableTimes is the fixed-grid lookup. A missing or malformed date
// yields an empty list, not an error; the response shape is always
// {"times": [...]}.
func (h *Handler) AvailableTimes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"times": []model.TimeOfDay{}})
		return
	}

	times, err := h.bookingSvc.AvailableGridTimes(c.Request.Context(), id, date)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("provider not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to compute times"))
		return
	}

	if times == nil {
		times = []model.TimeOfDay{}
	}
	c.JSON(http.StatusOK, gin.H{"times": times})
}

// GetAvailability returns the caller's own weekly map, for editor prefill.
func (h *Handler) GetAvailability(c *gin.Context) {
	providerID, err := uuid.Parse(c.GetString(middleware.ContextProviderID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	prov, err := h.service.Get(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to get availability"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(prov.Availability))
}

// SetAvailability replaces the caller's weekly availability map. The
// whole request is rejected when any weekday or time entry is malformed.
func (h *Handler) SetAvailability(c *gin.Context) {
	providerID, err := uuid.Parse(c.GetString(middleware.ContextProviderID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	availability, err := h.service.SetAvailability(c.Request.Context(), providerID, &req)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrBadRequest) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update availability"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(availability))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	providerID, err := uuid.Parse(c.GetString(middleware.ContextProviderID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	var req model.UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	prov, err := h.service.UpdateProfile(c.Request.Context(), providerID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update profile"))
		return
	}

	log.Debug().Str("provider_id", providerID.String()).Msg("profile updated")
	c.JSON(http.StatusOK, handler.NewSuccessResponse(prov))
}

// RegisterRoutes wires the public provider surface.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	providers := r.Group("/providers")
	{
		providers.GET("", h.ListProviders)
		providers.GET("/search", h.SearchProviders)
		providers.GET("/:id", h.GetProvider)
		providers.GET("/:id/slots", h.ListSlots)
		providers.GET("/:id/available-times", h.AvailableTimes)
	}
}

// RegisterProviderRoutes wires the provider-only surface; the group must
// carry authentication plus the provider capability guard.
func (h *Handler) RegisterProviderRoutes(r *gin.RouterGroup) {
	me := r.Group("/providers/me")
	{
		me.GET("/availability", h.GetAvailability)
		me.PUT("/availability", h.SetAvailability)
		me.PUT("", h.UpdateProfile)
	}
}

func parsePositiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > 365 {
		return 0, false
	}
	return n, true
}
