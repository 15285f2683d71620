package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medicare-platform/admin-api/internal/config"
	adminh "github.com/medicare-platform/admin-api/internal/handler/admin"
	authh "github.com/medicare-platform/admin-api/internal/handler/auth"
	donationh "github.com/medicare-platform/admin-api/internal/handler/donation"
	healthh "github.com/medicare-platform/admin-api/internal/handler/health"
	medicationh "github.com/medicare-platform/admin-api/internal/handler/medication"
	notificationh "github.com/medicare-platform/admin-api/internal/handler/notification"
	"github.com/medicare-platform/admin-api/internal/middleware"
	"github.com/medicare-platform/admin-api/internal/repository/postgres"
	"github.com/medicare-platform/admin-api/internal/router"
	adminsvc "github.com/medicare-platform/admin-api/internal/service/admin"
	authsvc "github.com/medicare-platform/admin-api/internal/service/auth"
	donationsvc "github.com/medicare-platform/admin-api/internal/service/donation"
	"github.com/medicare-platform/admin-api/internal/service/donormatch"
	medicationsvc "github.com/medicare-platform/admin-api/internal/service/medication"
	notificationsvc "github.com/medicare-platform/admin-api/internal/service/notification"
	"github.com/medicare-platform/admin-api/pkg/auth"
	"github.com/medicare-platform/admin-api/pkg/logger"
	"github.com/medicare-platform/admin-api/pkg/metrics"
	"github.com/medicare-platform/admin-api/pkg/security"
	"github.com/medicare-platform/admin-api/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load config")
	}

	if err := validator.RegisterCustomValidations(); err != nil {
		log.Fatal(err, "failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)
	doseRepo := postgres.NewDoseRepository(db)
	linkRepo := postgres.NewLinkRepository(db)
	donationRepo := postgres.NewDonationRepository(db)
	requestRepo := postgres.NewDonationRequestRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	m := metrics.NewMetrics("medicare", "api")
	jwtService := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	authService := authsvc.NewService(userRepo, hasher, jwtService)
	adminService := adminsvc.NewService(userRepo, medicationRepo, donationRepo, doseRepo, linkRepo)
	medicationService := medicationsvc.NewService(medicationRepo, doseRepo)
	donationService := donationsvc.NewService(donationRepo, userRepo)
	matchingService := donormatch.NewService(requestRepo, userRepo, donationRepo, notificationRepo, outboxRepo, log, m)
	notificationService := notificationsvc.NewService(notificationRepo)

	// Router
	authMiddleware := middleware.NewAuthMiddleware(authService)
	r := router.NewRouter(authMiddleware, router.Handlers{
		Auth:         authh.NewHandler(authService),
		Admin:        adminh.NewHandler(adminService),
		Medication:   medicationh.NewHandler(medicationService),
		Donation:     donationh.NewHandler(donationService, matchingService),
		Notification: notificationh.NewHandler(notificationService),
		Health:       healthh.NewHandler(db),
	}, router.Config{
		RateLimit: middleware.RateLimiterConfig{
			RPS:   cfg.RateLimit.RPS,
			Burst: cfg.RateLimit.Burst,
		},
		CORS:    middleware.DefaultCORSConfig(),
		Timeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Infof("starting server on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
}
