package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDatabasePath = "data/recipe-planner.db"
	defaultLogLevel     = "info"
	defaultTokenTTL     = 30 * 24 * time.Hour
	defaultPort         = "8080"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string        `yaml:"database_path"`
	LogLevel     string        `yaml:"log_level"`
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`

	// Telegram Config
	TelegramBotToken       string  `yaml:"telegram_bot_token"`
	TelegramWebhookURL     string  `yaml:"telegram_webhook_url"`
	TelegramAllowedUserIDs []int64 `yaml:"telegram_allowed_user_ids"`
	AdminTelegramID        int64   `yaml:"admin_telegram_id"`
	Port                   string  `yaml:"port"`
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	return Load("")
}

// Load reads the environment, overlays the YAML file at path when one is
// given, and checks the result.
func Load(path string) (*Config, error) {
	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the values present in a YAML file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable not set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// IsAllowed reports whether a Telegram user may talk to the bot. An empty
// allow-list admits everybody.
func (c *Config) IsAllowed(telegramID int64) bool {
	if len(c.TelegramAllowedUserIDs) == 0 {
		return true
	}
	for _, id := range c.TelegramAllowedUserIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		DatabasePath:       getEnv("DATABASE_PATH", defaultDatabasePath),
		LogLevel:           getEnv("LOG_LEVEL", defaultLogLevel),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           defaultTokenTTL,
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
		Port:               getEnv("PORT", defaultPort),
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		cfg.TokenTTL = ttl
	}

	if v := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
			}
			cfg.TelegramAllowedUserIDs = append(cfg.TelegramAllowedUserIDs, id)
		}
	}

	if v := os.Getenv("ADMIN_TELEGRAM_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID %q: %w", v, err)
		}
		cfg.AdminTelegramID = id
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
