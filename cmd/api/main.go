package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/slotwise/booking-api/config"
	"github.com/slotwise/booking-api/internal/handler"
	appointmentHandler "github.com/slotwise/booking-api/internal/handler/appointment"
	authHandler "github.com/slotwise/booking-api/internal/handler/auth"
	providerHandler "github.com/slotwise/booking-api/internal/handler/provider"
	"github.com/slotwise/booking-api/internal/middleware"
	"github.com/slotwise/booking-api/internal/model"
	"github.com/slotwise/booking-api/internal/repository/postgres"
	"github.com/slotwise/booking-api/internal/router"
	authService "github.com/slotwise/booking-api/internal/service/auth"
	bookingService "github.com/slotwise/booking-api/internal/service/booking"
	providerService "github.com/slotwise/booking-api/internal/service/provider"
	"github.com/slotwise/booking-api/internal/service/schedule"
	"github.com/slotwise/booking-api/pkg/auth"
	"github.com/slotwise/booking-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	accountRepo := postgres.NewAccountRepository(db)
	providerRepo := postgres.NewProviderRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(accountRepo, providerRepo, jwtSvc)
	providerSvc := providerService.NewService(providerRepo)
	bookingSvc := bookingService.NewService(appointmentRepo, providerRepo, bookingService.Options{
		Grid: schedule.GridConfig{
			Start:       model.TimeOfDay(cfg.Booking.GridStart),
			End:         model.TimeOfDay(cfg.Booking.GridEnd),
			StepMinutes: cfg.Booking.GridStepMinutes,
		},
		WindowDays:            cfg.Booking.WindowDays,
		ReleaseCancelledSlots: cfg.Booking.ReleaseCancelledSlots,
	})

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc, providerSvc)
	h := handler.NewHandler()
	authH := authHandler.NewHandler(authSvc)
	providerH := providerHandler.NewHandler(providerSvc, bookingSvc, bookingSvc.WindowDays())
	appointmentH := appointmentHandler.NewHandler(bookingSvc)

	rateLimit := rate.Limit(0)
	if cfg.RateLimit.Enabled {
		rateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
	}

	r := router.NewRouter(
		authMiddleware,
		authH,
		providerH,
		appointmentH,
		h,
		router.Config{
			RateLimit:     rateLimit,
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "booking_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
