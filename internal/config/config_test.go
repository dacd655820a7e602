package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_AuditWebhookRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("AUDIT_WEBHOOK_ENABLED", "true")
	t.Setenv("AUDIT_WEBHOOK_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when AUDIT_WEBHOOK_ENABLED=true without AUDIT_WEBHOOK_URL")
	}
}

func TestLoad_AuditWebhookConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("AUDIT_WEBHOOK_ENABLED", "true")
	t.Setenv("AUDIT_WEBHOOK_URL", "https://audit.example.com/ingest")
	t.Setenv("AUDIT_WEBHOOK_TOKEN", "token-123")
	t.Setenv("AUDIT_WEBHOOK_TIMEOUT", "4s")
	t.Setenv("AUDIT_WEBHOOK_CIRCUIT_FAILURE_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.AuditWebhookEnabled {
		t.Fatalf("expected AuditWebhookEnabled=true")
	}
	if cfg.AuditWebhookURL != "https://audit.example.com/ingest" {
		t.Fatalf("unexpected AuditWebhookURL: %q", cfg.AuditWebhookURL)
	}
	if cfg.AuditWebhookToken != "token-123" {
		t.Fatalf("unexpected AuditWebhookToken")
	}
	if cfg.AuditWebhookTimeout != 4*time.Second {
		t.Fatalf("unexpected AuditWebhookTimeout: %s", cfg.AuditWebhookTimeout)
	}
	if cfg.AuditWebhookCircuitFailures != 7 {
		t.Fatalf("unexpected AuditWebhookCircuitFailures: %d", cfg.AuditWebhookCircuitFailures)
	}
}

func TestLoad_DBURLDefaultsToMemoryMode(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("DB_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB_URL default, got %q", cfg.DBURL)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_SeedMaxWorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SEED_MAX_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when SEED_MAX_WORKERS < 1")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel.String())
	}
}
