package portfolio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Name != "Portfolio" {
		t.Errorf("Name = %q, want default", cfg.Name)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", cfg.Addr)
	}
	if cfg.ProjectsPath != filepath.Join("content", "projects.yaml") {
		t.Errorf("ProjectsPath = %q", cfg.ProjectsPath)
	}
	if cfg.PostCacheTTL != 5*time.Minute {
		t.Errorf("PostCacheTTL = %v, want 5m", cfg.PostCacheTTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
name = "My Site"
url = "https://example.com/"
description = "notes"
author = "Jane Doe"
addr = ":8080"
content_dir = "posts-dir"
cache_ttl = "90s"
cookie_secure = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "My Site" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.URL != "https://example.com" {
		t.Errorf("URL = %q, want trailing slash trimmed", cfg.URL)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.PostCacheTTL != 90*time.Second {
		t.Errorf("PostCacheTTL = %v", cfg.PostCacheTTL)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure not set from file")
	}
	if cfg.ProjectsPath != filepath.Join("posts-dir", "projects.yaml") {
		t.Errorf("ProjectsPath = %q, want derived from content_dir", cfg.ProjectsPath)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`name = "From File"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SITE_NAME", "From Env")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "From Env" {
		t.Errorf("Name = %q, env should win over file", cfg.Name)
	}
	if cfg.SessionSecret != "s3cret" {
		t.Errorf("SessionSecret = %q", cfg.SessionSecret)
	}
}

func TestLoadConfigBadTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`cache_ttl = "soon"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for unparseable cache_ttl")
	}
}
