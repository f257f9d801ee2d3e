// Package config loads service configuration from the environment and an
// optional resume-screener.yaml in the working directory. Environment
// variables win over the file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const configName = "resume-screener"

// Config holds everything the service needs to run.
type Config struct {
	Port string `mapstructure:"port"`

	GeminiAPIKey string `mapstructure:"gemini-api-key"`
	GeminiModel  string `mapstructure:"gemini-model"`

	SpreadsheetID       string `mapstructure:"spreadsheet-id"`
	ServiceAccountEmail string `mapstructure:"service-account-email"`
	ServiceAccountKey   string `mapstructure:"service-account-key"`

	SMTPHost         string `mapstructure:"smtp-host"`
	SMTPPort         int    `mapstructure:"smtp-port"`
	GmailUser        string `mapstructure:"gmail-user"`
	GmailAppPassword string `mapstructure:"gmail-app-password"`
	HREmail          string `mapstructure:"hr-email"`

	ReportDir string `mapstructure:"report-dir"`
	Debug     bool   `mapstructure:"debug"`
	JSONLog   bool   `mapstructure:"json"`
}

// Load reads the optional config file and environment variables and
// returns a validated configuration.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("gemini-model", "gemini-2.0-flash-lite")
	v.SetDefault("smtp-host", "smtp.gmail.com")
	v.SetDefault("smtp-port", 587)
	v.SetDefault("report-dir", "reports")

	bindings := map[string]string{
		"port":                  "PORT",
		"gemini-api-key":        "GEMINI_API_KEY",
		"gemini-model":          "GEMINI_MODEL",
		"spreadsheet-id":        "GOOGLE_SHEET_ID",
		"service-account-email": "GOOGLE_SERVICE_ACCOUNT_EMAIL",
		"service-account-key":   "GOOGLE_PRIVATE_KEY",
		"gmail-user":            "GMAIL_USER",
		"gmail-app-password":    "GMAIL_APP_PASSWORD",
		"hr-email":              "HR_EMAIL",
		"report-dir":            "REPORT_DIR",
		"debug":                 "DEBUG",
		"json":                  "JSON_LOG",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Keys pasted into env vars arrive with literal \n sequences.
	cfg.ServiceAccountKey = strings.ReplaceAll(cfg.ServiceAccountKey, `\n`, "\n")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the credentials the pipeline cannot run without
// are present.
func (c *Config) Validate() error {
	var missing []string

	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.SpreadsheetID == "" {
		missing = append(missing, "GOOGLE_SHEET_ID")
	}
	if c.ServiceAccountEmail == "" {
		missing = append(missing, "GOOGLE_SERVICE_ACCOUNT_EMAIL")
	}
	if c.ServiceAccountKey == "" {
		missing = append(missing, "GOOGLE_PRIVATE_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}

// SheetURL returns the browser URL for the configured spreadsheet.
func (c *Config) SheetURL() string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", c.SpreadsheetID)
}
