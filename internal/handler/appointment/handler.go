package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/slotwise/booking-api/internal/handler"
	"github.com/slotwise/booking-api/internal/middleware"
	"github.com/slotwise/booking-api/internal/model"
	"github.com/slotwise/booking-api/internal/service/booking"
	apperrors "github.com/slotwise/booking-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service booking.Servicer
}

func NewHandler(service booking.Servicer) *Handler {
	return &Handler{service: service}
}

// BookSlot books one (date, time) slot with the provider. An occupied
// slot is absorbed into a success-shaped response with no appointment
// payload; the conflict is only visible in the logs. Clients observe the
// same outcome whether they booked the slot or lost the race for it.
func (h *Handler) BookSlot(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid provider ID"))
		return
	}

	accountID, err := uuid.Parse(c.GetString(middleware.ContextAccountID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid account ID"))
		return
	}

	var req model.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date"))
		return
	}

	appointment, err := h.service.Book(c.Request.Context(), providerID, accountID, date, model.TimeOfDay(req.Time))
	if err != nil {
		switch {
		case apperrors.IsCode(err, apperrors.ErrConflict):
			log.Warn().
				Str("provider_id", providerID.String()).
				Str("date", req.Date).
				Str("time", req.Time).
				Msg("booking attempt on occupied slot")
			c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
		case apperrors.IsCode(err, apperrors.ErrBadRequest):
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		case apperrors.IsCode(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("provider not found"))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to book slot"))
		}
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

// ListAppointments returns the caller's appointments: the provider view
// when a provider profile exists, the client view otherwise.
func (h *Handler) ListAppointments(c *gin.Context) {
	accountID, err := uuid.Parse(c.GetString(middleware.ContextAccountID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid account ID"))
		return
	}

	appointments, err := h.service.ListForAccount(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list appointments"))
		return
	}

	if appointments == nil {
		appointments = []*model.Appointment{}
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// UpdateStatus transitions an appointment's status. A non-owner attempt
// is absorbed: the caller gets a success-shaped response, the status
// stays unchanged and the refusal is logged. An unknown status value is
// likewise a silent no-op.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	accountID, err := uuid.Parse(c.GetString(middleware.ContextAccountID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid account ID"))
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appointment, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, accountID)
	if err != nil {
		switch {
		case apperrors.IsCode(err, apperrors.ErrForbidden):
			log.Warn().
				Str("appointment_id", id.String()).
				Str("account_id", accountID.String()).
				Msg("status update refused for non-owner")
			c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
		case apperrors.IsCode(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update status"))
		}
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

// RegisterRoutes wires the authenticated appointment surface.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/providers/:id/appointments", h.BookSlot)

	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.PUT("/:id/status", h.UpdateStatus)
	}
}
