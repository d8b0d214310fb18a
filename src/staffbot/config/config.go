package config

import (
	"log"
	"os"
)

type Config struct {
	Token          string
	StaffChannelID string
	RedisURL       string
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
	return Config{
		Token:          getenv("DISCORD_TOKEN", ""),
		StaffChannelID: getenv("STAFF_CHANNEL_ID", ""),
		RedisURL:       getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
	}
}
