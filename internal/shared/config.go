package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	StorageDriver string // bolt | mysql
	BoltPath      string
	MySQLDSN      string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	JWTSecret string
	HotelName string // registry auto-init default
	RateRPS   int    // global HTTP request limit
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
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		StorageDriver: env("STORAGE_DRIVER", "bolt"),
		BoltPath:      env("BOLT_PATH", "hotel.db"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
		JWTSecret:     env("JWT_SECRET", ""),
		HotelName:     env("HOTEL_NAME", "Luxury Hotel"),
		RateRPS:       atoi("HTTP_RATE_RPS", 50),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; all authenticated requests will be rejected")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
