package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "lamsa"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Prayer-time lookups are best effort: a short timeout so a slow
	// upstream never blocks slot generation.
	DefaultPrayerAPIBaseURL = "https://api.aladhan.com/v1"
	DefaultPrayerAPITimeout = 300 * time.Millisecond
	DefaultPrayerAPICountry = "Jordan"

	DefaultSlotCacheTTL = 2 * time.Minute

	DefaultKafkaBrokers            = "localhost:9092"
	DefaultKafkaBookingEventsTopic = "bookings.booking-created"
	DefaultKafkaDLQTopic           = "bookings.dlq"
	DefaultProducerMaxAttempts     = 3
	DefaultProducerBatchTimeout    = 10 * time.Millisecond

	DefaultSlotDurationMin        = 30
	DefaultMaxAdvanceBookingDays  = 30
	DefaultMinAdvanceBookingHours = 2

	DefaultBreakFlexibilityMin = 15
	DefaultBreakDurationMin    = 20

	// Fallback iftar break anchor when a Ramadan schedule opts out of
	// Maghrib auto-adjustment.
	DefaultIftarClockTime = "18:30"

	DefaultTimezone = "Asia/Amman"
)
