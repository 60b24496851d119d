package main

import (
	"context"

	"lamsa/internal/availability/handler"
	"lamsa/internal/availability/repository"
	"lamsa/internal/availability/service"
	"lamsa/internal/availability/validator"
	"lamsa/internal/prayer"
	"lamsa/pkg/app"
	"lamsa/pkg/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()

	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Availability service")
	availabilityService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAvailabilityHandler(availabilityService, cfg), readyCheck(cfg))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	availabilityValidator := validator.NewAvailabilityValidator(cfg.Log)
	scheduleRepo := repository.NewMongoScheduleRepository(cfg)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	prayerClient := prayer.NewClient(cfg.PrayerAPIBaseURL, cfg.PrayerAPICountry, cfg.PrayerAPITimeout, cfg.Log)

	availabilityService := service.NewAvailabilityService(
		scheduleRepo,
		bookingRepo,
		prayerClient,
		availabilityValidator,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService
}

func readyCheck(cfg *config.Config) app.ReadyCheck {
	return func(ctx context.Context) error {
		return cfg.Client.Mongo.Ping(ctx, nil)
	}
}
