package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.App.Port)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
	if cfg.Storage.Driver != StorageRedis {
		t.Fatalf("expected redis storage by default, got %q", cfg.Storage.Driver)
	}
	if got := cfg.Session.TTL; got != 720*time.Hour {
		t.Fatalf("expected session ttl 720h, got %v", got)
	}
	if cfg.Commerce.EmailProvider != "emailpass" || cfg.Commerce.PhoneProvider != "phone" {
		t.Fatalf("unexpected auth providers %q/%q", cfg.Commerce.EmailProvider, cfg.Commerce.PhoneProvider)
	}
	if len(cfg.App.SupportedLocales) != 2 || cfg.App.SupportedLocales[0] != "ka" {
		t.Fatalf("unexpected supported locales %v", cfg.App.SupportedLocales)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_StorageDrivers(t *testing.T) {
	t.Run("postgres requires dsn", func(t *testing.T) {
		setMinimalEnv(t)
		t.Setenv(EnvStorageDriver, "postgres")
		if _, err := Load(); err == nil {
			t.Fatal("expected error without dsn")
		}
	})

	t.Run("sqlite gets default dsn", func(t *testing.T) {
		setMinimalEnv(t)
		t.Setenv(EnvStorageDriver, "SQLite")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Storage.Driver != StorageSQLite || cfg.DB.DSN == "" {
			t.Fatalf("expected sqlite with dsn, got %q %q", cfg.Storage.Driver, cfg.DB.DSN)
		}
		if !cfg.Storage.UsesSQL() {
			t.Fatal("expected sqlite to use sql storage")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		setMinimalEnv(t)
		t.Setenv(EnvStorageDriver, "memcached")
		if _, err := Load(); err == nil {
			t.Fatal("expected unsupported driver error")
		}
	})
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvSessionSecret, "secret")
	t.Setenv(EnvCMSURL, "https://cms.example.com")
	t.Setenv(EnvCommerceURL, "https://commerce.example.com")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
