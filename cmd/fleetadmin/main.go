package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nurpe/fleetadmin/internal/auth"
	"github.com/nurpe/fleetadmin/internal/config"
	"github.com/nurpe/fleetadmin/internal/db"
	"github.com/nurpe/fleetadmin/internal/export/csvexport"
	"github.com/nurpe/fleetadmin/internal/export/excel"
	"github.com/nurpe/fleetadmin/internal/export/pdf"
	httphandler "github.com/nurpe/fleetadmin/internal/http"
	"github.com/nurpe/fleetadmin/internal/http/middleware"
	"github.com/nurpe/fleetadmin/internal/logger"
	"github.com/nurpe/fleetadmin/internal/notify"
	"github.com/nurpe/fleetadmin/internal/repository"
	"github.com/nurpe/fleetadmin/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	credentialRepo := repository.NewCredentialRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	rideRepo := repository.NewRideRepository(database)
	newsRepo := repository.NewNewsRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	garbageRepo := repository.NewGarbageRepository(database)

	pusher, err := notify.NewPushClient(context.Background(), cfg.Push.CredentialsFile, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init push client")
	}

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.TokenTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	authService := service.NewAuthService(credentialRepo, userRepo, tokenIssuer, cfg.Auth.RecentLoginWindow)
	userService := service.NewUserService(userRepo, credentialRepo)
	vehicleService := service.NewVehicleService(vehicleRepo)
	rideService := service.NewRideService(rideRepo, userRepo, notificationRepo, pusher, log)
	newsService := service.NewNewsService(newsRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	garbageService := service.NewGarbageService(garbageRepo, rideRepo)
	dashboardService := service.NewDashboardService(userRepo, vehicleRepo, rideRepo)
	reportService := service.NewReportService(
		userRepo, vehicleRepo, rideRepo, garbageRepo,
		excel.NewGenerator(), csvexport.NewWriter(), pdf.NewGenerator())

	handler := httphandler.NewHandler(
		authService, userService, vehicleService, rideService, newsService,
		notificationService, garbageService, dashboardService, reportService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting fleet admin service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
