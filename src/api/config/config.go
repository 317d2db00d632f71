package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	MySQLDSN     string
	RedisURL     string
	JWTSecret    string
	BackendURL   string
	Port         string
	SyncInterval int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	si, _ := strconv.Atoi(getenv("SYNC_INTERVAL", "60"))
	return Config{
		MySQLDSN:     getenv("MYSQL_DSN", "launchpad:launchpad@tcp(127.0.0.1:3306)/launchpad"),
		RedisURL:     getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:    getenv("JWT_SECRET", ""),
		BackendURL:   getenv("BACKEND_URL", "https://backend.starpool.io/api/v1"),
		Port:         getenv("PORT", "8080"),
		SyncInterval: si,
	}
}
