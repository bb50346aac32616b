package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-commerce-api/internal/shared/fanout"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	ServiceName            string
	Port                   string
	PostgresDSN            string
	PostgresMaxOpenConns   int
	TemporalAddress        string
	TemporalNamespace      string
	TemporalDisabled       bool
	StockUpdateConcurrency int
	OrderTransactions      bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		ServiceName:            envDefault("SERVICE_NAME", "commerce-api"),
		Port:                   envDefault("PORT", "8080"),
		PostgresDSN:            strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:        envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:      envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:       isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		StockUpdateConcurrency: fanout.DefaultLimit,
		OrderTransactions:      true,
	}
	if raw := strings.TrimSpace(os.Getenv("STOCK_UPDATE_CONCURRENCY")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("STOCK_UPDATE_CONCURRENCY must be a positive integer")
		}
		cfg.StockUpdateConcurrency = n
	}
	if raw := strings.TrimSpace(os.Getenv("POSTGRES_MAX_OPEN_CONNS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("POSTGRES_MAX_OPEN_CONNS must be a positive integer")
		}
		cfg.PostgresMaxOpenConns = n
	}
	if raw := strings.TrimSpace(os.Getenv("ORDER_TRANSACTIONS")); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("ORDER_TRANSACTIONS must be a boolean")
		}
		cfg.OrderTransactions = enabled
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
