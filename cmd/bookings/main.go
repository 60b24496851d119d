package main

import (
	"context"

	availrepo "lamsa/internal/availability/repository"
	availservice "lamsa/internal/availability/service"
	availvalidator "lamsa/internal/availability/validator"
	"lamsa/internal/bookings/handler"
	"lamsa/internal/bookings/repository"
	"lamsa/internal/bookings/service"
	"lamsa/internal/bookings/validator"
	"lamsa/internal/prayer"
	"lamsa/pkg/app"
	"lamsa/pkg/config"
	"lamsa/pkg/kafka"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()

	cfg.SetMongo()

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaBookingEventsTopic,
		DLQTopic:     cfg.KafkaDLQTopic,
		MaxAttempts:  config.DefaultProducerMaxAttempts,
		BatchTimeout: config.DefaultProducerBatchTimeout,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg, producer)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log), readyCheck(cfg))
	serverApp.Run()

	if err := producer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka producer", "error", err)
	}
}

func initServices(cfg *config.Config, publisher service.Publisher) service.BookingService {
	prayerClient := prayer.NewClient(cfg.PrayerAPIBaseURL, cfg.PrayerAPICountry, cfg.PrayerAPITimeout, cfg.Log)

	// The bookings service runs the availability engine in-process so a
	// commit re-validates against the same rules the read path serves.
	availabilityService := availservice.NewAvailabilityService(
		availrepo.NewMongoScheduleRepository(cfg),
		availrepo.NewMongoBookingRepository(cfg),
		prayerClient,
		availvalidator.NewAvailabilityValidator(cfg.Log),
		cfg,
	)

	bookingService := service.NewBookingService(
		repository.NewMongoBookingRepository(cfg),
		repository.NewSlotLockRepository(cfg),
		availabilityService,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func readyCheck(cfg *config.Config) app.ReadyCheck {
	return func(ctx context.Context) error {
		return cfg.Client.Mongo.Ping(ctx, nil)
	}
}
