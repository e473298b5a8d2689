// Package config loads host-boundary configuration from the environment.
// Nothing here touches the routing core: these values size the HTTP
// server, the report worker pool, and the optional Redis cache.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment-derived settings for the HTTP host.
type Config struct {
	Port               string
	LogLevel           string
	RedisAddr          string
	ReportCacheTTL     time.Duration
	ReportWorkers      int
	DefaultReportCount int
}

// Load builds a Config from environment variables, falling back to the
// documented defaults for anything unset.
func Load() *Config {
	return &Config{
		Port:               getEnv("NIMBUS_PORT", ":8080"),
		LogLevel:           getEnv("NIMBUS_LOG_LEVEL", "info"),
		RedisAddr:          getEnv("NIMBUS_REDIS_ADDR", ""),
		ReportCacheTTL:     time.Duration(getIntEnv("NIMBUS_REPORT_CACHE_TTL_SECONDS", 60)) * time.Second,
		ReportWorkers:      getIntEnv("NIMBUS_REPORT_WORKERS", 0),
		DefaultReportCount: getIntEnv("NIMBUS_DEFAULT_REPORT_COUNT", 200),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
