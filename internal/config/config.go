package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/padel-league/internal/league"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	defaults := league.DefaultPolicy()
	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: envOr("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		Slack: SlackConfig{
			Token:         os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID:     os.Getenv("SLACK_CHANNEL_ID"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		Playtomic: PlaytomicConfig{
			TenantID: os.Getenv("PLAYTOMIC_TENANT_ID"),
		},
		Inngest: InngestConfig{
			AppID:      os.Getenv("INNGEST_APP_ID"),
			SigningKey: os.Getenv("INNGEST_SIGNING_KEY"),
			EventKey:   os.Getenv("INNGEST_EVENT_KEY"),
			Schedule:   os.Getenv("INNGEST_IMPORT_SCHEDULE"),
			Dev:        boolEnv("INNGEST_DEV", false),
		},
		ProjectID: os.Getenv("GCP_PROJECT"),
		Policy: league.Policy{
			EnforceTieBreak:          boolEnv("LEAGUE_ENFORCE_TIEBREAK", defaults.EnforceTieBreak),
			RequireThirdSet:          boolEnv("LEAGUE_REQUIRE_THIRD_SET", defaults.RequireThirdSet),
			ForbidThirdSetAfterSweep: boolEnv("LEAGUE_FORBID_THIRD_SET_AFTER_SWEEP", defaults.ForbidThirdSetAfterSweep),
			MaxGames:                 intEnv("LEAGUE_MAX_GAMES", defaults.MaxGames),
		},
	}
	return cfg
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn("Invalid boolean in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return b
}

func intEnv(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn("Invalid integer in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return n
}
