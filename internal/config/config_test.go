package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	// Helper function to set environment variables for a test
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Defaults", func(t *testing.T) {
		setEnv("JWT_SECRET", "s3cret")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/recipe-planner.db" {
			t.Errorf("Expected default DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
		}
		if cfg.TokenTTL != 720*time.Hour {
			t.Errorf("Expected TokenTTL 720h, got %s", cfg.TokenTTL)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected Port '8080', got '%s'", cfg.Port)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		setEnv("JWT_SECRET", "s3cret")
		setEnv("DATABASE_PATH", "/tmp/x.db")
		setEnv("TOKEN_TTL", "2h")
		setEnv("TELEGRAM_ALLOWED_USER_IDS", "1, 2,3")
		setEnv("ADMIN_TELEGRAM_ID", "2")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/x.db" {
			t.Errorf("Expected DatabasePath '/tmp/x.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.TokenTTL != 2*time.Hour {
			t.Errorf("Expected TokenTTL 2h, got %s", cfg.TokenTTL)
		}
		if len(cfg.TelegramAllowedUserIDs) != 3 {
			t.Errorf("Expected 3 allowed users, got %v", cfg.TelegramAllowedUserIDs)
		}
		if !cfg.IsAllowed(3) || cfg.IsAllowed(4) {
			t.Errorf("Unexpected allow-list behaviour for %v", cfg.TelegramAllowedUserIDs)
		}
		if cfg.AdminTelegramID != 2 {
			t.Errorf("Expected AdminTelegramID 2, got %d", cfg.AdminTelegramID)
		}
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing JWT_SECRET, got nil")
		}
		expectedError := "JWT_SECRET environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("InvalidTokenTTL", func(t *testing.T) {
		setEnv("JWT_SECRET", "s3cret")
		setEnv("TOKEN_TTL", "a week")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for invalid TOKEN_TTL, got nil")
		}
	})

	t.Run("InvalidAllowList", func(t *testing.T) {
		setEnv("JWT_SECRET", "s3cret")
		setEnv("TELEGRAM_ALLOWED_USER_IDS", "1,bob")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for invalid TELEGRAM_ALLOWED_USER_IDS, got nil")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("FileOverlaysEnv", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "/from/env.db")
		os.Unsetenv("JWT_SECRET")

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "jwt_secret: from-file\ntoken_ttl: 36h\ntelegram_allowed_user_ids: [10, 20]\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.JWTSecret != "from-file" {
			t.Errorf("Expected JWTSecret from file, got '%s'", cfg.JWTSecret)
		}
		if cfg.TokenTTL != 36*time.Hour {
			t.Errorf("Expected TokenTTL 36h, got %s", cfg.TokenTTL)
		}
		if cfg.DatabasePath != "/from/env.db" {
			t.Errorf("Expected DatabasePath kept from env, got '%s'", cfg.DatabasePath)
		}
		if len(cfg.TelegramAllowedUserIDs) != 2 {
			t.Errorf("Expected 2 allowed users, got %v", cfg.TelegramAllowedUserIDs)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("Expected an error for a missing file, got nil")
		}
	})
}
