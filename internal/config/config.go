package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Catalog sources
const (
	CatalogStatic   = "static"
	CatalogRemote   = "remote"
	CatalogPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Kafka     KafkaConfig
	Timing    TimingConfig
	Session   SessionConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// IsDevelopment reports whether the server runs outside production
func (s ServerConfig) IsDevelopment() bool {
	return s.Env != "production"
}

type CatalogConfig struct {
	Source        string
	RemoteURL     string
	RemoteTimeout time.Duration
	PageSize      int
}

type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Database      string
	Schema        string
	MigrationsDir string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type KafkaConfig struct {
	Brokers      []string
	OrdersTopic  string
	ContactTopic string
}

// Enabled reports whether at least one broker is configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// TimingConfig holds the delays of the deferred UI effects
type TimingConfig struct {
	ConfirmDelay         time.Duration
	PaymentDelay         time.Duration
	BookNoticeDelay      time.Duration
	CafeteriaNoticeDelay time.Duration
	ContactResetDelay    time.Duration
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// DefaultTiming returns the delays used when nothing is configured
func DefaultTiming() TimingConfig {
	return TimingConfig{
		ConfirmDelay:         5 * time.Second,
		PaymentDelay:         time.Second,
		BookNoticeDelay:      2 * time.Second,
		CafeteriaNoticeDelay: 3 * time.Second,
		ContactResetDelay:    5 * time.Second,
	}
}

func setDefaults(v *viper.Viper) {
	timing := DefaultTiming()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:4200")

	v.SetDefault("CATALOG_SOURCE", CatalogStatic)
	v.SetDefault("CATALOG_REMOTE_URL", "")
	v.SetDefault("CATALOG_REMOTE_TIMEOUT", 5*time.Second)
	v.SetDefault("CATALOG_PAGE_SIZE", 6)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("DB_MIGRATIONS_DIR", "migrations")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_ORDERS_TOPIC", "orders")
	v.SetDefault("KAFKA_CONTACT_TOPIC", "contact")

	v.SetDefault("CHECKOUT_CONFIRM_DELAY", timing.ConfirmDelay)
	v.SetDefault("PAYMENT_CLEAR_DELAY", timing.PaymentDelay)
	v.SetDefault("BOOK_NOTICE_DELAY", timing.BookNoticeDelay)
	v.SetDefault("CAFETERIA_NOTICE_DELAY", timing.CafeteriaNoticeDelay)
	v.SetDefault("CONTACT_RESET_DELAY", timing.ContactResetDelay)

	v.SetDefault("SESSION_TTL", 2*time.Hour)
	v.SetDefault("SESSION_SWEEP_INTERVAL", 10*time.Minute)
}

// Load reads .env (when present) and the environment into a Config
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not read .env file: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	pageSize := v.GetInt("CATALOG_PAGE_SIZE")
	if pageSize < 1 {
		pageSize = 6
	}
	ttl := v.GetDuration("SESSION_TTL")
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	sweep := v.GetDuration("SESSION_SWEEP_INTERVAL")
	if sweep <= 0 {
		sweep = 10 * time.Minute
	}

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Env:            v.GetString("SERVER_ENV"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Catalog: CatalogConfig{
			Source:        strings.ToLower(v.GetString("CATALOG_SOURCE")),
			RemoteURL:     v.GetString("CATALOG_REMOTE_URL"),
			RemoteTimeout: v.GetDuration("CATALOG_REMOTE_TIMEOUT"),
			PageSize:      pageSize,
		},
		Database: DatabaseConfig{
			Host:          v.GetString("DB_HOST"),
			Port:          v.GetString("DB_PORT"),
			User:          v.GetString("DB_USER"),
			Password:      v.GetString("DB_PASSWORD"),
			Database:      v.GetString("DB_DATABASE"),
			Schema:        v.GetString("DB_SCHEMA"),
			MigrationsDir: v.GetString("DB_MIGRATIONS_DIR"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(v.GetString("KAFKA_BROKERS")),
			OrdersTopic:  v.GetString("KAFKA_ORDERS_TOPIC"),
			ContactTopic: v.GetString("KAFKA_CONTACT_TOPIC"),
		},
		Timing: TimingConfig{
			ConfirmDelay:         v.GetDuration("CHECKOUT_CONFIRM_DELAY"),
			PaymentDelay:         v.GetDuration("PAYMENT_CLEAR_DELAY"),
			BookNoticeDelay:      v.GetDuration("BOOK_NOTICE_DELAY"),
			CafeteriaNoticeDelay: v.GetDuration("CAFETERIA_NOTICE_DELAY"),
			ContactResetDelay:    v.GetDuration("CONTACT_RESET_DELAY"),
		},
		Session: SessionConfig{
			TTL:           ttl,
			SweepInterval: sweep,
		},
	}
}

// splitList splits a comma separated value, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
