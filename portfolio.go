// Package portfolio is a personal portfolio and blog server built with
// Go, Echo, and templ. Content is authored as markdown files with YAML
// front matter; the visitor's light/dark preference persists in a signed
// cookie session, so the server itself stays stateless.
package portfolio

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components the server renders. The views
// package provides the site's implementation; tests can substitute
// stubs.
type ViewFuncs struct {
	Home        func(p Page, posts []Post, projects []Project) templ.Component
	Blog        func(p Page, posts []Post, activeCategory string, categories []string) templ.Component
	BlogSection func(posts []Post, activeCategory string, categories []string) templ.Component
	Post        func(p Page, post Post, related []Post) templ.Component
	Projects    func(p Page, projects []Project) templ.Component
	About       func(p Page, body string) templ.Component
	NotFound    func(p Page) templ.Component
	ServerError func(p Page) templ.Component
}

// Page carries the per-request state every template needs: site config,
// the resolved theme, and the CSRF token for the theme toggle form.
type Page struct {
	Site SiteConfig
	Dark bool
	CSRF string
}

// App is the central application. It wires together the content store,
// cache, projects, handlers, middleware, and templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Content  *ContentStore
	Cache    *PostCache
	Projects []Project
	Views    ViewFuncs

	resizeLimiter *rateLimiter
	images        *imageCache
	customRoutes  []func(*App)
	stopWatcher   func()
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes content, cache, middleware, and routes, then starts
// the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("portfolio: SessionSecret is required")
	}

	if a.Content == nil {
		a.Content = NewContentStore(a.Config.ContentDir)
	}
	a.Cache = NewPostCache(a.Content, a.Config.PostCacheTTL)

	// Invalidate the cache on content edits. Embedded or read-only
	// content has nothing to watch, so a failure only disables reload.
	postsDir := filepath.Join(a.Config.ContentDir, "posts")
	if stop, err := a.Cache.Watch(postsDir, a.Config.ContentDir); err != nil {
		a.Echo.Logger.Warnf("content watch disabled: %v", err)
	} else {
		a.stopWatcher = stop
	}

	projects, err := LoadProjects(a.Config.ProjectsPath)
	if err != nil {
		return fmt.Errorf("portfolio: load projects: %w", err)
	}
	a.Projects = projects

	a.resizeLimiter = newRateLimiter(30, time.Minute)
	a.images = newImageCache()

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/img/:name", a.handleImage)

	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/projects/", a.handleProjects)
	e.GET("/about/", a.handleAbout)
	e.POST("/theme/", a.handleThemeToggle)
}

// Close stops the content watcher and drains the server.
func (a *App) Close() error {
	if a.stopWatcher != nil {
		a.stopWatcher()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Echo.Shutdown(ctx)
}
