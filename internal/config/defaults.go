package config

import "time"

const defaultPort = 8080

const defaultLogLevel = "info"

var defaultRetry = Retry{
	MaxAttempts: 3,
	BaseDelay:   2 * time.Second,
	MaxDelay:    30 * time.Second,
}

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultMailbox = Mailbox{
	DSN:    "memory://",
	MaxAge: 60 * time.Second,
}

var defaultBoard = Board{
	RefreshInterval: 30 * time.Second,
}

const defaultSortLocale = "ko"

var defaultKafka = Kafka{
	Brokers: []string{"localhost:9092"},
	GroupID: "status-worker",
	Topic:   "delivery.status.commands",
}

const defaultGRPCHealthPort = 50051

var defaultRateLimit = RateLimit{
	Enabled:     true,
	Rate:        5,
	Burst:       10,
	DriverRate:  10,
	DriverBurst: 30,
	TTL:         10 * time.Minute,
	MaxBuckets:  10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultRetry returns the default persistence retry settings.
func DefaultRetry() Retry {
	return defaultRetry
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultMailbox returns the default mailbox settings.
func DefaultMailbox() Mailbox {
	return defaultMailbox
}

// DefaultBoard returns the default board settings.
func DefaultBoard() Board {
	return defaultBoard
}

// DefaultKafka returns the default status command stream settings.
func DefaultKafka() Kafka {
	k := defaultKafka
	k.Brokers = append([]string(nil), defaultKafka.Brokers...)
	return k
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
