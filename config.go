package portfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	ContentDir   string // Markdown content directory (default "content")
	StaticDir    string // Static assets directory (default "public")
	ProjectsPath string // Projects data file (default "<content>/projects.yaml")

	SessionSecret string // Required: secret for signing the preference cookie
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ProjectsPath == "" {
		c.ProjectsPath = filepath.Join(c.ContentDir, "projects.yaml")
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// fileConfig mirrors the optional TOML config file.
type fileConfig struct {
	Name         string `toml:"name"`
	URL          string `toml:"url"`
	Description  string `toml:"description"`
	Author       string `toml:"author"`
	Addr         string `toml:"addr"`
	ContentDir   string `toml:"content_dir"`
	StaticDir    string `toml:"static_dir"`
	ProjectsPath string `toml:"projects_path"`
	CookieSecure bool   `toml:"cookie_secure"`
	CacheTTL     string `toml:"cache_ttl"`
}

// LoadConfig builds a SiteConfig from the TOML file at path, environment
// overrides, and defaults, in that order of increasing precedence for
// the env values. A missing file is fine: env and defaults carry it.
// Secrets only come from the environment, never from the file.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fall through to env + defaults
	case err != nil:
		return cfg, err
	default:
		var fc fileConfig
		if err := toml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.Name = fc.Name
		cfg.URL = strings.TrimSuffix(fc.URL, "/")
		cfg.Description = fc.Description
		cfg.Author = fc.Author
		cfg.Addr = fc.Addr
		cfg.ContentDir = fc.ContentDir
		cfg.StaticDir = fc.StaticDir
		cfg.ProjectsPath = fc.ProjectsPath
		cfg.CookieSecure = fc.CookieSecure
		if fc.CacheTTL != "" {
			ttl, err := time.ParseDuration(fc.CacheTTL)
			if err != nil {
				return cfg, fmt.Errorf("%s: cache_ttl: %w", path, err)
			}
			cfg.PostCacheTTL = ttl
		}
	}

	applyEnv(&cfg)
	cfg.setDefaults()
	return cfg, nil
}

func applyEnv(cfg *SiteConfig) {
	if v := os.Getenv("SITE_NAME"); v != "" {
		cfg.Name = v
	}
	if v := os.Getenv("SITE_URL"); v != "" {
		cfg.URL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv("SITE_DESCRIPTION"); v != "" {
		cfg.Description = v
	}
	if v := os.Getenv("SITE_AUTHOR"); v != "" {
		cfg.Author = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CONTENT_DIR"); v != "" {
		cfg.ContentDir = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.SessionSecret = v
	}
	cfg.CookieSecure = cfg.CookieSecure || strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true")
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithContentFS overrides the content source, e.g. with an embed.FS.
func WithContentFS(store *ContentStore) Option {
	return func(a *App) {
		a.Content = store
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("required environment variable %s is not set", key)
	}
	return v
}
