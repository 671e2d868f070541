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

	"github.com/jwalitptl/booking-actions/internal/config"
	"github.com/jwalitptl/booking-actions/internal/handler"
	actionsHandler "github.com/jwalitptl/booking-actions/internal/handler/actions"
	adminHandler "github.com/jwalitptl/booking-actions/internal/handler/admin"
	"github.com/jwalitptl/booking-actions/internal/middleware"
	"github.com/jwalitptl/booking-actions/internal/repository/postgres"
	"github.com/jwalitptl/booking-actions/internal/router"
	bookingService "github.com/jwalitptl/booking-actions/internal/service/booking"
	turnService "github.com/jwalitptl/booking-actions/internal/service/turn"
	"github.com/jwalitptl/booking-actions/pkg/auth"
	"github.com/jwalitptl/booking-actions/pkg/logger"
	"github.com/jwalitptl/booking-actions/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	appMetrics := metrics.NewMetrics("booking_actions", "server")

	// Repositories
	bookingRepo := postgres.NewBookingRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Services
	turnSvc := turnService.NewService(appLogger, appMetrics)
	bookingSvc := bookingService.NewService(bookingRepo, appLogger, appMetrics)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	// Handlers
	actionsH := actionsHandler.NewHandler(turnSvc, bookingSvc, cfg.Booking.DedupTTL)
	adminH := adminHandler.NewHandler(appointmentRepo)
	healthH := handler.NewHealthHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	r := router.NewRouter(authMiddleware, actionsH, adminH, healthH, router.RouterConfig{
		RateLimit:     rate.Limit(100),
		RateBurst:     200,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "booking_actions",
	})

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("starting action server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(err, "forced shutdown")
		os.Exit(1)
	}
}
