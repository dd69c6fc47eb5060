package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Local  LocalStoreConfig
	Sheets SheetsConfig
	Admin  AdminConfig
	Alerts AlertsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoConfig holds settings for the remote bed collection. An empty URI
// means no remote backend is configured and the local file store is used.
type MongoConfig struct {
	URI    string
	DBName string
}

// LocalStoreConfig locates the file used by the local backend.
type LocalStoreConfig struct {
	Path string
}

// SheetsConfig contains configuration required to read the tenant/parcel
// spreadsheet. Both fields empty disables the sheet path.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// AdminConfig carries the admin gate credentials and session signing secret.
type AdminConfig struct {
	Username      string
	Password      string
	SessionSecret string
}

// AlertsConfig holds the overdue-alert scheduler settings. An empty webhook
// URL disables alerting.
type AlertsConfig struct {
	CronSchedule string
	WebhookURL   string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Mongo: MongoConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "boardinghouse"),
		},
		Local: LocalStoreConfig{
			Path: getenvWithDefault("LOCAL_STORE_PATH", "data/boardinghouse-beds.json"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_ID"),
		},
		Admin: AdminConfig{
			Username:      os.Getenv("ADMIN_USERNAME"),
			Password:      os.Getenv("ADMIN_PASSWORD"),
			SessionSecret: os.Getenv("ADMIN_SESSION_SECRET"),
		},
		Alerts: AlertsConfig{
			CronSchedule: getenvWithDefault("ALERT_CRON_SCHEDULE", "0 20 * * *"),
			WebhookURL:   os.Getenv("ALERT_WEBHOOK_URL"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Manila"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. Optional
// integrations (Mongo, Sheets, alerts, admin gate) degrade rather than fail.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Mongo.URI != "" && c.Mongo.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if c.Mongo.URI == "" && c.Local.Path == "" {
		return errors.New("LOCAL_STORE_PATH must be provided when no MONGODB_URI is set")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_ID must be provided together")
	}

	if c.Alerts.WebhookURL != "" && c.Alerts.CronSchedule == "" {
		return errors.New("ALERT_CRON_SCHEDULE must be provided when ALERT_WEBHOOK_URL is set")
	}

	return nil
}

// SheetsEnabled reports whether the spreadsheet read path is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
