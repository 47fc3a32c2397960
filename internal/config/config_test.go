package config

import (
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("MENU_DATA_DIR", "")
		t.Setenv("MENU_DB_PATH", "")
		t.Setenv("MENU_PLAN_WEEKS", "")
		t.Setenv("MENU_USER_ID", "")
		t.Setenv("TELEGRAM_ALLOW_USER_ID", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DataDir != "data" {
			t.Errorf("Expected DataDir 'data', got %q", cfg.DataDir)
		}
		if cfg.NumberOfWeeks != 4 {
			t.Errorf("Expected 4 weeks by default, got %d", cfg.NumberOfWeeks)
		}
		if cfg.DefaultUserID != "famille" {
			t.Errorf("Expected default user 'famille', got %q", cfg.DefaultUserID)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("MENU_DATA_DIR", "/var/menu")
		t.Setenv("MENU_DB_PATH", "/var/menu/m.db")
		t.Setenv("MENU_PLAN_WEEKS", "2")
		t.Setenv("MENU_USER_ID", "alex")
		t.Setenv("TELEGRAM_ALLOW_USER_ID", "12345")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DataDir != "/var/menu" {
			t.Errorf("Expected DataDir '/var/menu', got %q", cfg.DataDir)
		}
		if cfg.DatabasePath != "/var/menu/m.db" {
			t.Errorf("Expected DatabasePath '/var/menu/m.db', got %q", cfg.DatabasePath)
		}
		if cfg.NumberOfWeeks != 2 {
			t.Errorf("Expected 2 weeks, got %d", cfg.NumberOfWeeks)
		}
		if cfg.TelegramAllowUserID != 12345 {
			t.Errorf("Expected allow user 12345, got %d", cfg.TelegramAllowUserID)
		}
	})

	t.Run("DatabasePathFollowsDataDir", func(t *testing.T) {
		t.Setenv("MENU_DATA_DIR", "/srv/menus")
		t.Setenv("MENU_DB_PATH", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/srv/menus/metrics.db" {
			t.Errorf("Expected DatabasePath under data dir, got %q", cfg.DatabasePath)
		}
	})

	t.Run("WeeksOutOfRange", func(t *testing.T) {
		for _, v := range []string{"0", "5", "-1"} {
			t.Setenv("MENU_PLAN_WEEKS", v)
			if _, err := NewFromEnv(); err == nil {
				t.Errorf("Expected an error for MENU_PLAN_WEEKS=%s, got nil", v)
			}
		}
	})

	t.Run("WeeksNotAnInteger", func(t *testing.T) {
		t.Setenv("MENU_PLAN_WEEKS", "four")
		if _, err := NewFromEnv(); err == nil {
			t.Error("Expected an error for a non-integer week count, got nil")
		}
	})

	t.Run("BadAllowUserID", func(t *testing.T) {
		t.Setenv("MENU_PLAN_WEEKS", "")
		t.Setenv("TELEGRAM_ALLOW_USER_ID", "not-a-number")
		if _, err := NewFromEnv(); err == nil {
			t.Error("Expected an error for a non-integer user id, got nil")
		}
	})
}
