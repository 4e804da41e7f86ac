package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	FeedBase        string
	FeedKey         string
	Workers         int
	PrintDataErrors bool
	SnapshotTTL     int
	CacheTTL        time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/aic?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPass:       env("REDIS_PASSWORD", ""),
		FeedBase:        env("FEED_BASE_URL", "https://aic-mobile-tours.artic.edu"),
		FeedKey:         env("FEED_API_KEY", ""),
		Workers:         atoi("INGEST_WORKERS", 2),
		PrintDataErrors: env("PRINT_DATA_ERRORS", "") == "true",
		SnapshotTTL:     atoi("SNAPSHOT_TTL_SECONDS", 0), // 0 = keep until replaced
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
