package portfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// page assembles the per-request view state shared by every template.
func (a *App) page(c echo.Context) Page {
	return Page{
		Site: a.Config,
		Dark: themeFor(c).Dark(),
		CSRF: CsrfToken(c),
	}
}

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(a.page(c), posts, a.Projects))
}

// handleBlog serves the blog listing, with HTMX partial support for
// category filtering.
func (a *App) handleBlog(c echo.Context) error {
	category := c.QueryParam("category")
	posts, err := a.Cache.ListPosts(category)
	if err != nil {
		return err
	}
	categories, err := a.Cache.ListCategories()
	if err != nil {
		return err
	}
	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "blog" {
		return Render(c, a.Views.BlogSection(posts, category, categories))
	}
	return Render(c, a.Views.Blog(a.page(c), posts, category, categories))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c)))
		}
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(a.page(c), post, RelatedPosts(post, posts)))
}

func (a *App) handleProjects(c echo.Context) error {
	return Render(c, a.Views.Projects(a.page(c), a.Projects))
}

func (a *App) handleAbout(c echo.Context) error {
	body, err := a.Content.Page("about.md")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c)))
		}
		return err
	}
	return Render(c, a.Views.About(a.page(c), body))
}

// handleThemeToggle flips the visitor's theme, persists it in the
// preference cookie, and sends the browser back to the page it came
// from so it re-renders with the new document marker.
func (a *App) handleThemeToggle(c echo.Context) error {
	tc := NewThemeController(NewSessionThemeStore(c))
	if _, err := tc.Toggle(systemPrefersDark(c)); err != nil {
		// A client refusing the cookie is a normal condition, not a 500.
		c.Logger().Warnf("theme: persist preference: %v", err)
	}
	return c.Redirect(http.StatusSeeOther, refererPath(c))
}

// refererPath returns a same-site path to redirect back to after the
// theme toggle, falling back to the home page.
func refererPath(c echo.Context) string {
	ref, err := url.Parse(c.Request().Referer())
	if err != nil || ref.Path == "" {
		return "/"
	}
	return ref.Path
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.page(c)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
