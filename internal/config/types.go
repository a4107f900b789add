package config

import "github.com/mauv0809/padel-league/internal/league"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	Playtomic     PlaytomicConfig
	Inngest       InngestConfig
	ProjectID     string
	Policy        league.Policy
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type PlaytomicConfig struct {
	TenantID string
}
type InngestConfig struct {
	AppID      string
	SigningKey string
	EventKey   string
	// Schedule is a cron expression for the periodic import. Empty disables it.
	Schedule string
	Dev      bool
}
