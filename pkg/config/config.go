package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"lamsa/pkg/client"
	"lamsa/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	PrayerAPIBaseURL string
	PrayerAPITimeout time.Duration
	PrayerAPICountry string

	RedisAddr    string
	SlotCacheTTL time.Duration

	KafkaBrokers            []string
	KafkaBookingEventsTopic string
	KafkaDLQTopic           string

	DefaultSlotDurationMin     int
	MaxAdvanceBookingDays      int
	MinAdvanceBookingHours     int
	DefaultBreakFlexibilityMin int
	DefaultBreakDurationMin    int
	DefaultIftarClockTime      string
	Timezone                   string

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	// .env is a local-development convenience; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		PrayerAPIBaseURL: getEnvStr(EnvPrayerAPIBaseURL, DefaultPrayerAPIBaseURL),
		PrayerAPITimeout: getEnvDuration(EnvPrayerAPITimeout, DefaultPrayerAPITimeout),
		PrayerAPICountry: getEnvStr(EnvPrayerAPICountry, DefaultPrayerAPICountry),

		RedisAddr:    getEnvStr(EnvRedisAddr, ""),
		SlotCacheTTL: getEnvDuration(EnvSlotCacheTTL, DefaultSlotCacheTTL),

		KafkaBrokers:            splitAndTrim(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers)),
		KafkaBookingEventsTopic: getEnvStr(EnvKafkaBookingEventsTopic, DefaultKafkaBookingEventsTopic),
		KafkaDLQTopic:           getEnvStr(EnvKafkaDLQTopic, DefaultKafkaDLQTopic),

		DefaultSlotDurationMin:     getEnvNum(EnvDefaultSlotDurationMin, DefaultSlotDurationMin),
		MaxAdvanceBookingDays:      getEnvNum(EnvMaxAdvanceBookingDays, DefaultMaxAdvanceBookingDays),
		MinAdvanceBookingHours:     getEnvNum(EnvMinAdvanceBookingHours, DefaultMinAdvanceBookingHours),
		DefaultBreakFlexibilityMin: getEnvNum(EnvDefaultBreakFlexibilityMin, DefaultBreakFlexibilityMin),
		DefaultBreakDurationMin:    getEnvNum(EnvDefaultBreakDurationMin, DefaultBreakDurationMin),
		DefaultIftarClockTime:      getEnvStr(EnvDefaultIftarClockTime, DefaultIftarClockTime),
		Timezone:                   getEnvStr(EnvTimezone, DefaultTimezone),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errs = append(errs, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errs = append(errs, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.PrayerAPIBaseURL == "" {
		errs = append(errs, "PrayerAPIBaseURL cannot be empty")
	}
	if cfg.PrayerAPITimeout <= 0 || cfg.PrayerAPITimeout > 5*time.Second {
		errs = append(errs, fmt.Sprintf("PrayerAPITimeout must be in (0s, 5s], got: %s", cfg.PrayerAPITimeout))
	}

	if cfg.SlotCacheTTL <= 0 {
		errs = append(errs, fmt.Sprintf("SlotCacheTTL must be positive, got: %s", cfg.SlotCacheTTL))
	}

	if len(cfg.KafkaBrokers) == 0 {
		errs = append(errs, "KafkaBrokers cannot be empty")
	}

	if cfg.DefaultSlotDurationMin < 5 || cfg.DefaultSlotDurationMin > 240 {
		errs = append(errs, fmt.Sprintf("DefaultSlotDurationMin must be between 5 and 240, got: %d", cfg.DefaultSlotDurationMin))
	}
	if cfg.MaxAdvanceBookingDays <= 0 {
		errs = append(errs, fmt.Sprintf("MaxAdvanceBookingDays must be positive, got: %d", cfg.MaxAdvanceBookingDays))
	}
	if cfg.MinAdvanceBookingHours < 0 {
		errs = append(errs, fmt.Sprintf("MinAdvanceBookingHours cannot be negative, got: %d", cfg.MinAdvanceBookingHours))
	}
	if cfg.DefaultBreakFlexibilityMin < 0 {
		errs = append(errs, fmt.Sprintf("DefaultBreakFlexibilityMin cannot be negative, got: %d", cfg.DefaultBreakFlexibilityMin))
	}
	if cfg.DefaultBreakDurationMin < 0 {
		errs = append(errs, fmt.Sprintf("DefaultBreakDurationMin cannot be negative, got: %d", cfg.DefaultBreakDurationMin))
	}

	timeRegex := regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	if !timeRegex.MatchString(cfg.DefaultIftarClockTime) {
		errs = append(errs, fmt.Sprintf("DefaultIftarClockTime must be in HH:MM format, got: %s", cfg.DefaultIftarClockTime))
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("Timezone is not a valid IANA zone, got: %s", cfg.Timezone))
	}

	if len(errs) > 0 {
		msg := "Configuration validation failed:\n"
		for i, e := range errs {
			msg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", msg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"prayer_api_base_url", cfg.PrayerAPIBaseURL,
		"prayer_api_timeout", cfg.PrayerAPITimeout,
		"prayer_api_country", cfg.PrayerAPICountry,
		"redis_enabled", cfg.RedisAddr != "",
		"slot_cache_ttl", cfg.SlotCacheTTL,
		"kafka_brokers", strings.Join(cfg.KafkaBrokers, ","),
		"kafka_booking_events_topic", cfg.KafkaBookingEventsTopic,
		"default_slot_duration_min", cfg.DefaultSlotDurationMin,
		"max_advance_booking_days", cfg.MaxAdvanceBookingDays,
		"min_advance_booking_hours", cfg.MinAdvanceBookingHours,
		"timezone", cfg.Timezone,
	)
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

// Location resolves the configured IANA timezone. Validate() already
// guarantees it parses.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

