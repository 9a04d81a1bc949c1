// Package config provides Viper-based hierarchical configuration for the
// statement pipeline: defaults, then an optional config file, then
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	envOnce sync.Once

	// Logger is the shared logrus instance configured by ConfigureLogging.
	Logger = logrus.New()
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Fetch struct {
		TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"fetch" yaml:"fetch"`

	PDF struct {
		PdftotextPath string `mapstructure:"pdftotext_path" yaml:"pdftotext_path"`
	} `mapstructure:"pdf" yaml:"pdf"`

	AI struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Dispatch struct {
		AliasFile string `mapstructure:"alias_file" yaml:"alias_file"`
	} `mapstructure:"dispatch" yaml:"dispatch"`
}

// InitializeConfig loads the hierarchical configuration.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.statement-chat")
	v.AddConfigPath(".statement-chat")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STMT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			Logger.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the environment, unprefixed.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		Logger.Warnf("failed to bind GEMINI_API_KEY environment variable: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("fetch.timeout_seconds", 30)
	v.SetDefault("pdf.pdftotext_path", "pdftotext")
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("dispatch.alias_file", "")
}

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() {
	envOnce.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
		}
	})
}

// ConfigureLogging applies the configured level and format to the shared
// logger and returns it.
func ConfigureLogging(cfg *Config) *logrus.Logger {
	level := "info"
	format := "text"
	if cfg != nil {
		level = cfg.Log.Level
		format = cfg.Log.Format
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", level)
		logLevel = logrus.InfoLevel
	}
	Logger.SetLevel(logLevel)

	if strings.ToLower(format) == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return Logger
}

// GetEnv retrieves an environment variable with a fallback value if not set.
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
