package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	MySQLDSN      string
	RedisURL      string
	JWTSecret     string
	Port          string
	SweepInterval int // seconds between consistency sweeps
	AllowOrigins  []string
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
	si, _ := strconv.Atoi(getenv("SWEEP_INTERVAL", "300"))
	return Config{
		MySQLDSN:      getenv("MYSQL_DSN", "lostfound:lostfound@tcp(127.0.0.1:3306)/lostfound?parseTime=true"),
		RedisURL:      getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:     getenv("JWT_SECRET", ""),
		Port:          getenv("PORT", "8080"),
		SweepInterval: si,
		AllowOrigins:  []string{getenv("FRONTEND_ORIGIN", "http://localhost:3000")},
	}
}
