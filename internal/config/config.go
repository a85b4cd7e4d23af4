// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hokmlab/hokm/internal/bot"
)

// Config holds everything the server binary needs at startup.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Origins is the WebSocket origin allowlist; empty allows same-host
	// only.
	Origins []string
	// LogLevel is a logrus level name.
	LogLevel string
	// LogJSON switches the log formatter to JSON.
	LogJSON bool
	// BotDifficulty is the default tier for multiplayer rooms.
	BotDifficulty bot.Difficulty
	// RedisAddr enables action history when non-empty.
	RedisAddr string
}

// Load reads the environment. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:      getenv("HOKM_ADDR", ":8080"),
		LogLevel:  getenv("HOKM_LOG_LEVEL", "info"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}
	if raw := os.Getenv("HOKM_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Origins = append(cfg.Origins, o)
			}
		}
	}
	if raw := os.Getenv("HOKM_LOG_JSON"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("HOKM_LOG_JSON: %w", err)
		}
		cfg.LogJSON = v
	}
	diff, err := bot.ParseDifficulty(getenv("HOKM_BOT_DIFFICULTY", string(bot.Medium)))
	if err != nil {
		return Config{}, fmt.Errorf("HOKM_BOT_DIFFICULTY: %w", err)
	}
	cfg.BotDifficulty = diff
	return cfg, nil
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
