package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/promoreport/internal/agent"
	"github.com/maxbolgarin/promoreport/internal/collector"
	"github.com/maxbolgarin/promoreport/internal/impact"
	"github.com/maxbolgarin/promoreport/internal/notifier"
	"github.com/maxbolgarin/promoreport/internal/report"
)

const dotEnvFile = ".env"

// Environment variables holding paths to files with secrets
const (
	SMTPUsernameFileEnv = "SMTP_USERNAME_FILE"
	SMTPPasswordFileEnv = "SMTP_PASSWORD_FILE"
	AgentAPIKeyFileEnv  = "AGENT_API_KEY_FILE"
)

// Config represents the main application configuration
type Config struct {
	Collector collector.Config `yaml:"git"`
	Impact    impact.Config    `yaml:"impact"`
	Agent     agent.Config     `yaml:"agent"`
	Report    report.Config    `yaml:"report"`
	Notifier  notifier.Config  `yaml:"smtp"`
}

// Load reads configuration from an optional YAML file and the environment.
// Variables from a .env file in the working directory are loaded first
// and never override the ones already set.
func Load(path string) (Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errm.Wrap(err, "failed to load "+dotEnvFile)
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, errm.Wrap(ErrConfigNotFound, path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, errm.Wrap(err, "failed to read config")
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, errm.Wrap(err, "failed to read environment")
	}

	cfg.Notifier.Username = secretOr(SMTPUsernameFileEnv, "SMTP_USERNAME", cfg.Notifier.Username)
	cfg.Notifier.Password = secretOr(SMTPPasswordFileEnv, "SMTP_PASSWORD", cfg.Notifier.Password)
	cfg.Agent.APIKey = secretOr(AgentAPIKeyFileEnv, "AGENT_API_KEY", cfg.Agent.APIKey)

	return cfg, nil
}

// Secret returns the trimmed content of the file named by the fileKey variable,
// or the value of the valueKey variable if the file is not set or unreadable.
func Secret(fileKey, valueKey string) string {
	if path := os.Getenv(fileKey); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return os.Getenv(valueKey)
}

func secretOr(fileKey, valueKey, fallback string) string {
	if v := Secret(fileKey, valueKey); v != "" {
		return v
	}
	return fallback
}
