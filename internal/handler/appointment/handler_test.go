package appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotwise/booking-api/internal/middleware"
	"github.com/slotwise/booking-api/internal/model"
	apperrors "github.com/slotwise/booking-api/pkg/errors"
)

type fakeBookingService struct {
	bookErr   error
	booked    *model.Appointment
	statusErr error
	updated   *model.Appointment
}

func (f *fakeBookingService) AvailableSlots(ctx context.Context, providerID uuid.UUID, start time.Time, numDays int) ([]model.Slot, error) {
	return nil, nil
}

func (f *fakeBookingService) AvailableGridTimes(ctx context.Context, providerID uuid.UUID, date time.Time) ([]model.TimeOfDay, error) {
	return nil, nil
}

func (f *fakeBookingService) Book(ctx context.Context, providerID, clientID uuid.UUID, date time.Time, timeOfDay model.TimeOfDay) (*model.Appointment, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return f.booked, nil
}

func (f *fakeBookingService) UpdateStatus(ctx context.Context, appointmentID uuid.UUID, status string, actingAccountID uuid.UUID) (*model.Appointment, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.updated, nil
}

func (f *fakeBookingService) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}

func setupRouter(svc *fakeBookingService, accountID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.ContextAccountID, accountID.String())
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestBookSlot(t *testing.T) {
	accountID := uuid.New()
	providerID := uuid.New()
	svc := &fakeBookingService{booked: &model.Appointment{
		ID:         uuid.New(),
		ProviderID: providerID,
		ClientID:   accountID,
		Time:       "10:00",
		Status:     model.AppointmentStatusPending,
	}}
	router := setupRouter(svc, accountID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers/"+providerID.String()+"/appointments",
		strings.NewReader(`{"date": "2025-06-02", "time": "10:00"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"pending"`)
}

func TestBookSlotConflictLooksLikeSuccess(t *testing.T) {
	accountID := uuid.New()
	svc := &fakeBookingService{bookErr: apperrors.Conflict("slot already booked", nil)}
	router := setupRouter(svc, accountID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers/"+uuid.NewString()+"/appointments",
		strings.NewReader(`{"date": "2025-06-02", "time": "10:00"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success"`)
	assert.NotContains(t, w.Body.String(), "conflict")
}

func TestBookSlotMalformedTime(t *testing.T) {
	accountID := uuid.New()
	svc := &fakeBookingService{bookErr: apperrors.BadRequest("invalid time", nil)}
	router := setupRouter(svc, accountID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers/"+uuid.NewString()+"/appointments",
		strings.NewReader(`{"date": "2025-06-02", "time": "lunchtime"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookSlotUnknownProvider(t *testing.T) {
	accountID := uuid.New()
	svc := &fakeBookingService{bookErr: apperrors.NotFound("provider", nil)}
	router := setupRouter(svc, accountID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers/"+uuid.NewString()+"/appointments",
		strings.NewReader(`{"date": "2025-06-02", "time": "10:00"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusNonOwnerLooksLikeSuccess(t *testing.T) {
	accountID := uuid.New()
	svc := &fakeBookingService{statusErr: apperrors.Forbidden("not the appointment provider", nil)}
	router := setupRouter(svc, accountID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/"+uuid.NewString()+"/status",
		strings.NewReader(`{"status": "confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success"`)
}

func TestUpdateStatus(t *testing.T) {
	accountID := uuid.New()
	svc := &fakeBookingService{updated: &model.Appointment{
		ID:     uuid.New(),
		Status: model.AppointmentStatusConfirmed,
	}}
	router := setupRouter(svc, accountID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointments/"+uuid.NewString()+"/status",
		strings.NewReader(`{"status": "confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmed"`)
}
