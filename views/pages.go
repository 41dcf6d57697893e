package views

import (
	"context"
	"html"
	"io"
	"net/url"

	"github.com/a-h/templ"

	portfolio "github.com/vadimghedreutan/portfolio-2025"
	"github.com/vadimghedreutan/portfolio-2025/markdown"
)

// Funcs wires the site's components into the server.
func Funcs() portfolio.ViewFuncs {
	return portfolio.ViewFuncs{
		Home:        Home,
		Blog:        Blog,
		BlogSection: BlogSection,
		Post:        Post,
		Projects:    Projects,
		About:       About,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

// Home renders the landing page: intro, latest posts, featured projects.
func Home(p portfolio.Page, posts []portfolio.Post, projects []portfolio.Project) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}

		h.raw(`<section class="py-10">`)
		h.rawf(`<h1 class="text-3xl font-bold">%s</h1>`, html.EscapeString(p.Site.Name))
		if p.Site.Description != "" {
			h.rawf(`<p class="mt-3 text-stone-600 dark:text-neutral-300">%s</p>`, html.EscapeString(p.Site.Description))
		}
		h.raw("</section>")

		h.raw(`<section><h2 class="text-xl font-semibold">Latest posts</h2>`)
		latest := posts
		if len(latest) > 3 {
			latest = latest[:3]
		}
		postList(h, latest)
		h.raw(`<p class="mt-4"><a href="/blog/" class="underline decoration-2 underline-offset-4">All posts</a></p>`)
		h.raw("</section>")

		if len(projects) > 0 {
			h.raw(`<section class="mt-12"><h2 class="text-xl font-semibold">Projects</h2>`)
			featured := projects
			if len(featured) > 3 {
				featured = featured[:3]
			}
			projectList(h, featured)
			h.rawf(`<p class="mt-4"><a href="/projects/" class="underline decoration-2 underline-offset-4">All projects</a></p>`)
			h.raw("</section>")
		}
		return h.err
	})
	return Layout(p, PageMeta{
		Description: p.Site.Description,
		URL:         portfolio.BuildURL(p.Site.URL),
	}, body)
}

// Blog renders the full listing page with category filters.
func Blog(p portfolio.Page, posts []portfolio.Post, activeCategory string, categories []string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		h.rawf(`<h1 class="py-10 text-3xl font-bold">Blog</h1>`)
		h.raw(`<div id="blog-section">`)
		if h.err != nil {
			return h.err
		}
		if err := BlogSection(posts, activeCategory, categories).Render(ctx, w); err != nil {
			return err
		}
		h.raw("</div>")
		return h.err
	})
	return Layout(p, PageMeta{
		Title:       "Blog",
		Description: p.Site.Description,
		URL:         portfolio.BuildURL(p.Site.URL, "blog"),
	}, body)
}

// BlogSection is the HTMX-swappable listing fragment: category pills
// plus the filtered post list.
func BlogSection(posts []portfolio.Post, activeCategory string, categories []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}

		h.raw(`<div class="flex flex-wrap gap-2">`)
		h.rawf(`<a href="/blog/" hx-get="/blog/?partial=blog" hx-target="#blog-section" hx-push-url="/blog/" class="%s">all</a>`,
			attr(CategoryClass(activeCategory == "")))
		for _, cat := range categories {
			href := "/blog/?category=" + url.QueryEscape(cat)
			h.rawf(`<a href="%s" hx-get="%s&partial=blog" hx-target="#blog-section" hx-push-url="%s" class="%s">%s</a>`,
				attr(href), attr(href), attr(href), attr(CategoryClass(cat == activeCategory)), html.EscapeString(cat))
		}
		h.raw("</div>")

		if len(posts) == 0 {
			h.raw(`<p class="mt-8 text-stone-500 dark:text-neutral-400">Nothing here yet.</p>`)
		} else {
			postList(h, posts)
		}
		return h.err
	})
}

// Post renders a single blog post page.
func Post(p portfolio.Page, post portfolio.Post, related []portfolio.Post) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}

		h.raw(`<article class="py-10">`)
		h.raw("<header>")
		h.rawf(`<h1 class="text-3xl font-bold">%s</h1>`, html.EscapeString(post.Title))
		h.rawf(`<p class="mt-2 text-sm text-stone-500 dark:text-neutral-400"><time datetime="%s">%s</time>`,
			attr(post.PublishedAt.Format("2006-01-02")), html.EscapeString(FormatDate(post.PublishedAt)))
		if post.Category != "" {
			h.rawf(` &middot; <a href="/blog/?category=%s">%s</a>`, attr(url.QueryEscape(post.Category)), html.EscapeString(post.Category))
		}
		h.raw("</p></header>")

		h.raw(`<div class="prose dark:prose-invert mt-8">`)
		if h.err != nil {
			return h.err
		}
		if err := markdown.Markdown(post.Content).Render(ctx, w); err != nil {
			return err
		}
		h.raw("</div></article>")

		if len(related) > 0 {
			h.raw(`<aside class="mt-12"><h2 class="text-xl font-semibold">Related posts</h2>`)
			postList(h, related)
			h.raw("</aside>")
		}

		h.rawf(`<script type="application/ld+json">%s</script>`, BlogPostingJsonLD(p.Site, post))
		return h.err
	})
	return Layout(p, PageMeta{
		Title:       post.Title,
		Description: post.Summary,
		URL:         portfolio.BuildURL(p.Site.URL, "blog", post.Slug),
		OGType:      "article",
	}, body)
}

// Projects renders the portfolio grid.
func Projects(p portfolio.Page, projects []portfolio.Project) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		h.raw(`<h1 class="py-10 text-3xl font-bold">Projects</h1>`)
		if len(projects) == 0 {
			h.raw(`<p class="text-stone-500 dark:text-neutral-400">Nothing here yet.</p>`)
		} else {
			projectList(h, projects)
		}
		return h.err
	})
	return Layout(p, PageMeta{
		Title: "Projects",
		URL:   portfolio.BuildURL(p.Site.URL, "projects"),
	}, body)
}

// About renders the about page from its markdown source.
func About(p portfolio.Page, source string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		h.raw(`<div class="prose dark:prose-invert py-10">`)
		if h.err != nil {
			return h.err
		}
		if err := markdown.Markdown(source).Render(ctx, w); err != nil {
			return err
		}
		h.raw("</div>")
		return h.err
	})
	return Layout(p, PageMeta{
		Title: "About",
		URL:   portfolio.BuildURL(p.Site.URL, "about"),
	}, body)
}

// NotFound renders the styled 404 page.
func NotFound(p portfolio.Page) templ.Component {
	return statusPage(p, "404", "This page does not exist.")
}

// ServerError renders the styled 500 page.
func ServerError(p portfolio.Page) templ.Component {
	return statusPage(p, "500", "Something went wrong. Try again later.")
}

func statusPage(p portfolio.Page, code, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		h.rawf(`<section class="py-20 text-center"><h1 class="text-5xl font-bold">%s</h1>`, html.EscapeString(code))
		h.rawf(`<p class="mt-4">%s</p>`, html.EscapeString(message))
		h.raw(`<p class="mt-6"><a href="/" class="underline decoration-2 underline-offset-4">Back home</a></p></section>`)
		return h.err
	})
	return Layout(p, PageMeta{Title: code}, body)
}

func postList(h *hw, posts []portfolio.Post) {
	h.raw(`<ul class="mt-6 space-y-6">`)
	for _, p := range posts {
		h.raw("<li>")
		h.rawf(`<a href="%s" class="text-lg font-semibold underline-offset-4 hover:underline">%s</a>`,
			attr(p.Link), html.EscapeString(p.Title))
		h.rawf(`<p class="text-sm text-stone-500 dark:text-neutral-400"><time datetime="%s">%s</time></p>`,
			attr(p.PublishedAt.Format("2006-01-02")), html.EscapeString(RelativeDate(p.PublishedAt)))
		if p.Summary != "" {
			h.rawf(`<p class="mt-1">%s</p>`, html.EscapeString(p.Summary))
		}
		h.raw("</li>")
	}
	h.raw("</ul>")
}

func projectList(h *hw, projects []portfolio.Project) {
	h.raw(`<ul class="mt-6 grid gap-6 sm:grid-cols-2">`)
	for _, pr := range projects {
		h.raw(`<li class="rounded border border-stone-200 dark:border-white/10 p-4">`)
		name := html.EscapeString(pr.Name)
		if u := markdown.SafeURL(pr.URL); u != "" {
			h.rawf(`<a href="%s" class="font-semibold underline-offset-4 hover:underline">%s</a>`, u, name)
		} else {
			h.rawf(`<span class="font-semibold">%s</span>`, name)
		}
		if pr.Summary != "" {
			h.rawf(`<p class="mt-1 text-sm">%s</p>`, html.EscapeString(pr.Summary))
		}
		if len(pr.Stack) > 0 {
			h.raw(`<p class="mt-2 text-xs uppercase tracking-[0.12em] text-stone-500 dark:text-neutral-400">`)
			for i, s := range pr.Stack {
				if i > 0 {
					h.raw(" &middot; ")
				}
				h.text(s)
			}
			h.raw("</p>")
		}
		if u := markdown.SafeURL(pr.Repo); u != "" {
			h.rawf(`<p class="mt-2 text-sm"><a href="%s" class="underline decoration-2 underline-offset-4">Source</a></p>`, u)
		}
		h.raw("</li>")
	}
	h.raw("</ul>")
}
