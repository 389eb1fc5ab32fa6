package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port           int
	LogLevel       string
	SortLocale     string
	GRPCHealthPort int

	DB        DB
	Retry     Retry
	Mailbox   Mailbox
	Board     Board
	Kafka     Kafka
	RateLimit RateLimit
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Retry stores persistence gateway retry settings.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Mailbox stores status mailbox settings.
type Mailbox struct {
	DSN    string
	MaxAge time.Duration
}

// Board stores cached delivery board settings.
type Board struct {
	RefreshInterval time.Duration
}

// Kafka stores status command consumer settings.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// RateLimit stores HTTP rate limit settings. Rate and Burst apply to callers
// without a driver id; drivers get DriverRate and DriverBurst.
type RateLimit struct {
	Enabled     bool
	Rate        float64
	Burst       int
	DriverRate  float64
	DriverBurst int
	TTL         time.Duration
	MaxBuckets  int
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:           defaultPort,
		LogLevel:       defaultLogLevel,
		SortLocale:     defaultSortLocale,
		GRPCHealthPort: defaultGRPCHealthPort,
		DB:             DefaultDB(),
		Retry:          DefaultRetry(),
		Mailbox:        DefaultMailbox(),
		Board:          DefaultBoard(),
		Kafka:          DefaultKafka(),
		RateLimit:      DefaultRateLimit(),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.SortLocale = envString("SORT_LOCALE", cfg.SortLocale)
	if cfg.GRPCHealthPort, err = envInt("GRPC_HEALTH_PORT", cfg.GRPCHealthPort); err != nil {
		return nil, err
	}

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err)
	}

	if cfg.Retry.MaxAttempts, err = envInt("RETRY_MAX_ATTEMPTS", cfg.Retry.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.Retry.BaseDelay, err = envDuration("RETRY_BASE_DELAY", cfg.Retry.BaseDelay); err != nil {
		return nil, err
	}
	if cfg.Retry.MaxDelay, err = envDuration("RETRY_MAX_DELAY", cfg.Retry.MaxDelay); err != nil {
		return nil, err
	}

	cfg.Mailbox.DSN = envString("MAILBOX_DSN", cfg.Mailbox.DSN)
	if cfg.Mailbox.MaxAge, err = envDuration("MAILBOX_MAX_AGE", cfg.Mailbox.MaxAge); err != nil {
		return nil, err
	}
	if cfg.Board.RefreshInterval, err = envDuration("BOARD_REFRESH_INTERVAL", cfg.Board.RefreshInterval); err != nil {
		return nil, err
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.Topic = envString("KAFKA_TOPIC", cfg.Kafka.Topic)

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Rate, err = envFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}
	if cfg.RateLimit.DriverRate, err = envFloat("RATE_LIMIT_DRIVER_RATE", cfg.RateLimit.DriverRate); err != nil {
		return nil, err
	}
	if cfg.RateLimit.DriverBurst, err = envInt("RATE_LIMIT_DRIVER_BURST", cfg.RateLimit.DriverBurst); err != nil {
		return nil, err
	}
	if cfg.RateLimit.TTL, err = envDuration("RATE_LIMIT_TTL", cfg.RateLimit.TTL); err != nil {
		return nil, err
	}
	if cfg.RateLimit.MaxBuckets, err = envInt("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets); err != nil {
		return nil, err
	}

	fs := pflag.CommandLine
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Mailbox.DSN, "mailbox-dsn", cfg.Mailbox.DSN, "status mailbox store")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.GRPCHealthPort <= 0 || c.GRPCHealthPort > 65535 {
		return fmt.Errorf("invalid grpc health port: %d", c.GRPCHealthPort)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("invalid RETRY_MAX_ATTEMPTS: %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BaseDelay < 0 || c.Retry.MaxDelay < 0 {
		return fmt.Errorf("retry delays must not be negative")
	}
	if c.Mailbox.MaxAge <= 0 {
		return fmt.Errorf("invalid MAILBOX_MAX_AGE: %s", c.Mailbox.MaxAge)
	}
	if c.Board.RefreshInterval <= 0 {
		return fmt.Errorf("invalid BOARD_REFRESH_INTERVAL: %s", c.Board.RefreshInterval)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
