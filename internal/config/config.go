// Package config provides application configuration management using Viper.
// It supports loading from environment variables, config files, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Office    OfficeConfig
	Database  DatabaseConfig
	Twilio    TwilioConfig
	Retell    RetellConfig
	SMTP      SMTPConfig
	Anthropic AnthropicConfig
	Sweep     SweepConfig
}

// ServerConfig holds HTTP server settings. PublicURL is the externally
// visible base URL, used to reconstruct webhook request URLs for
// signature validation.
type ServerConfig struct {
	Host        string
	Port        int
	Environment string
	PublicURL   string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// OfficeConfig identifies the dental practice the engine speaks for.
type OfficeConfig struct {
	Name     string
	Timezone string
}

// DatabaseConfig holds PostgreSQL connection settings. When Enabled is
// false the engine runs purely in memory.
type DatabaseConfig struct {
	Enabled               bool
	Host                  string
	Port                  int
	User                  string
	Password              string
	Name                  string
	SSLMode               string
	MaxConnections        int
	MaxIdleConnections    int
	ConnectionMaxLifetime time.Duration
}

// ConnectionString returns a PostgreSQL connection string.
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// TwilioConfig holds Twilio REST API settings for the SMS channel. The
// auth token doubles as the webhook signature key.
type TwilioConfig struct {
	Enabled    bool
	AccountSID string
	AuthToken  string
	FromNumber string
	APIURL     string
}

// RetellConfig holds Retell AI settings for the voice channel.
type RetellConfig struct {
	Enabled       bool
	APIKey        string
	AgentID       string
	FromNumber    string
	WebhookSecret string
	APIURL        string
}

// SMTPConfig holds outbound email settings.
type SMTPConfig struct {
	Enabled   bool
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// AnthropicConfig holds Claude settings for the AI fallback responder.
type AnthropicConfig struct {
	Enabled bool
	APIKey  string
	Model   string
}

// SweepConfig controls the maintenance sweeps.
type SweepConfig struct {
	NoShowInterval time.Duration
	PowerHourBatch int
}

// Load reads configuration from environment variables and config files.
// Environment variables take precedence over config file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/sdrengine")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configNotFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFoundErr) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("server.host"),
			Port:        v.GetInt("server.port"),
			Environment: v.GetString("server.env"),
			PublicURL:   v.GetString("server.public_url"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Office: OfficeConfig{
			Name:     v.GetString("office.name"),
			Timezone: v.GetString("office.timezone"),
		},
		Database: DatabaseConfig{
			Enabled:               v.GetBool("database.enabled"),
			Host:                  v.GetString("database.host"),
			Port:                  v.GetInt("database.port"),
			User:                  v.GetString("database.user"),
			Password:              v.GetString("database.password"),
			Name:                  v.GetString("database.name"),
			SSLMode:               v.GetString("database.sslmode"),
			MaxConnections:        v.GetInt("database.max_connections"),
			MaxIdleConnections:    v.GetInt("database.max_idle_connections"),
			ConnectionMaxLifetime: v.GetDuration("database.connection_max_lifetime"),
		},
		Twilio: TwilioConfig{
			Enabled:    v.GetBool("twilio.enabled"),
			AccountSID: v.GetString("twilio.account_sid"),
			AuthToken:  v.GetString("twilio.auth_token"),
			FromNumber: v.GetString("twilio.from_number"),
			APIURL:     v.GetString("twilio.api_url"),
		},
		Retell: RetellConfig{
			Enabled:       v.GetBool("retell.enabled"),
			APIKey:        v.GetString("retell.api_key"),
			AgentID:       v.GetString("retell.agent_id"),
			FromNumber:    v.GetString("retell.from_number"),
			WebhookSecret: v.GetString("retell.webhook_secret"),
			APIURL:        v.GetString("retell.api_url"),
		},
		SMTP: SMTPConfig{
			Enabled:   v.GetBool("smtp.enabled"),
			Host:      v.GetString("smtp.host"),
			Port:      v.GetInt("smtp.port"),
			Username:  v.GetString("smtp.username"),
			Password:  v.GetString("smtp.password"),
			FromName:  v.GetString("smtp.from_name"),
			FromEmail: v.GetString("smtp.from_email"),
		},
		Anthropic: AnthropicConfig{
			Enabled: v.GetBool("anthropic.enabled"),
			APIKey:  v.GetString("anthropic.api_key"),
			Model:   v.GetString("anthropic.model"),
		},
		Sweep: SweepConfig{
			NoShowInterval: v.GetDuration("sweep.no_show_interval"),
			PowerHourBatch: v.GetInt("sweep.power_hour_batch"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults configures default values for all settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.env", "development")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("office.name", "Bright Smile Dental")
	v.SetDefault("office.timezone", "America/Chicago")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "sdrengine")
	v.SetDefault("database.name", "sdrengine")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.max_idle_connections", 5)
	v.SetDefault("database.connection_max_lifetime", "5m")

	v.SetDefault("twilio.enabled", false)
	v.SetDefault("twilio.api_url", "https://api.twilio.com/2010-04-01")

	v.SetDefault("retell.enabled", false)
	v.SetDefault("retell.api_url", "https://api.retellai.com")

	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from_name", "Bright Smile Dental")

	v.SetDefault("anthropic.enabled", false)
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")

	v.SetDefault("sweep.no_show_interval", "1h")
	v.SetDefault("sweep.power_hour_batch", 25)
}

// Validate checks that every enabled integration has its required values.
func (c *Config) Validate() error {
	var missing []string

	if c.Office.Name == "" {
		missing = append(missing, "OFFICE_NAME")
	}
	if c.Database.Enabled && c.Database.Password == "" {
		missing = append(missing, "DATABASE_PASSWORD")
	}
	if c.Twilio.Enabled {
		if c.Twilio.AccountSID == "" {
			missing = append(missing, "TWILIO_ACCOUNT_SID")
		}
		if c.Twilio.AuthToken == "" {
			missing = append(missing, "TWILIO_AUTH_TOKEN")
		}
		if c.Twilio.FromNumber == "" {
			missing = append(missing, "TWILIO_FROM_NUMBER")
		}
	}
	if c.Retell.Enabled && c.Retell.APIKey == "" {
		missing = append(missing, "RETELL_API_KEY")
	}
	if c.SMTP.Enabled {
		if c.SMTP.Host == "" {
			missing = append(missing, "SMTP_HOST")
		}
		if c.SMTP.FromEmail == "" {
			missing = append(missing, "SMTP_FROM_EMAIL")
		}
	}
	if c.Anthropic.Enabled && c.Anthropic.APIKey == "" {
		missing = append(missing, "ANTHROPIC_API_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
