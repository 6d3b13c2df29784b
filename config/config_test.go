package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("COVERLANE_SYSTEM_WORKDIR", tmp)

	cfg := LoadConfig("")
	if cfg.Web.Port != 1820 {
		t.Errorf("default web port = %d, want 1820", cfg.Web.Port)
	}
	if cfg.Database.Type != "postgres" {
		t.Errorf("default database type = %q, want postgres", cfg.Database.Type)
	}
	if cfg.System.Workdir != tmp {
		t.Errorf("workdir override not applied: %q", cfg.System.Workdir)
	}
	if _, err := os.Stat(filepath.Join(tmp, "logs")); err != nil {
		t.Errorf("logs dir not created: %v", err)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("COVERLANE_SYSTEM_WORKDIR", t.TempDir())
	t.Setenv("COVERLANE_WEB_PORT", "8088")
	t.Setenv("COVERLANE_ADMIN_USERNAME", "operator")
	t.Setenv("COVERLANE_DB_DEBUG", "true")
	t.Setenv("COVERLANE_STORAGE_BUCKET", "flyers-prod")

	cfg := LoadConfig("")
	if cfg.Web.Port != 8088 {
		t.Errorf("web port = %d, want 8088", cfg.Web.Port)
	}
	if cfg.Admin.Username != "operator" {
		t.Errorf("admin username = %q, want operator", cfg.Admin.Username)
	}
	if !cfg.Database.Debug {
		t.Error("database debug override not applied")
	}
	if cfg.Storage.Bucket != "flyers-prod" {
		t.Errorf("storage bucket = %q, want flyers-prod", cfg.Storage.Bucket)
	}
}

func TestLoadConfigLeavesDefaultsUntouched(t *testing.T) {
	t.Setenv("COVERLANE_SYSTEM_WORKDIR", t.TempDir())
	t.Setenv("COVERLANE_WEB_PORT", "9210")
	t.Setenv("COVERLANE_ADMIN_USERNAME", "operator2")

	cfg := LoadConfig("")
	if cfg.Web.Port != 9210 {
		t.Fatalf("web port = %d, want 9210", cfg.Web.Port)
	}
	if DefaultAppConfig.Web.Port != 1820 {
		t.Errorf("override mutated DefaultAppConfig port: %d", DefaultAppConfig.Web.Port)
	}
	if DefaultAppConfig.Admin.Username != "admin" {
		t.Errorf("override mutated DefaultAppConfig username: %q", DefaultAppConfig.Admin.Username)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("COVERLANE_SYSTEM_WORKDIR", tmp)
	cfile := filepath.Join(tmp, "coverlane.yml")
	content := "web:\n  host: 127.0.0.1\n  port: 9001\nsmtp:\n  notify_to: sales@coverlane.example\n"
	if err := os.WriteFile(cfile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(cfile)
	if cfg.Web.Port != 9001 {
		t.Errorf("web port from file = %d, want 9001", cfg.Web.Port)
	}
	if cfg.Smtp.NotifyTo != "sales@coverlane.example" {
		t.Errorf("smtp notify_to = %q", cfg.Smtp.NotifyTo)
	}
}
