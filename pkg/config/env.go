package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvPrayerAPIBaseURL = "PRAYER_API_BASE_URL"
	EnvPrayerAPITimeout = "PRAYER_API_TIMEOUT"
	EnvPrayerAPICountry = "PRAYER_API_COUNTRY"

	EnvRedisAddr    = "REDIS_ADDR"
	EnvSlotCacheTTL = "SLOT_CACHE_TTL"

	EnvKafkaBrokers            = "KAFKA_BROKERS"
	EnvKafkaBookingEventsTopic = "KAFKA_BOOKING_EVENTS_TOPIC"
	EnvKafkaDLQTopic           = "KAFKA_DLQ_TOPIC"

	EnvDefaultSlotDurationMin     = "DEFAULT_SLOT_DURATION_MIN"
	EnvMaxAdvanceBookingDays      = "MAX_ADVANCE_BOOKING_DAYS"
	EnvMinAdvanceBookingHours     = "MIN_ADVANCE_BOOKING_HOURS"
	EnvDefaultBreakFlexibilityMin = "DEFAULT_BREAK_FLEXIBILITY_MIN"
	EnvDefaultBreakDurationMin    = "DEFAULT_BREAK_DURATION_MIN"
	EnvDefaultIftarClockTime      = "DEFAULT_IFTAR_CLOCK_TIME"
	EnvTimezone                   = "TIMEZONE"
)
