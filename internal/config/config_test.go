package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DEFAULT_LANGUAGE", "")
	t.Setenv("SEED_DEMO_DATA", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q, want en", cfg.DefaultLanguage)
	}
	if !cfg.SeedDemoData {
		t.Error("SeedDemoData should default to true")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "eighty")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric PORT")
	}
}

func TestLoadRejectsBadLanguage(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_LANGUAGE", "fr")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported DEFAULT_LANGUAGE")
	}
}

func TestLoadRejectsBadDatabaseURL(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_LANGUAGE", "")
	t.Setenv("DATABASE_URL", "not a url")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed DATABASE_URL")
	}
}

func TestLoadAcceptsPostgresURL(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_LANGUAGE", "so")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/healthapi?sslmode=disable")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" || cfg.DefaultLanguage != "so" || cfg.SeedDemoData {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
