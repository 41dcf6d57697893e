package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	portfolio "github.com/vadimghedreutan/portfolio-2025"
)

// hw is a thin writer that remembers the first error, so page builders
// can chain writes without checking each one.
type hw struct {
	w   io.Writer
	err error
}

func (h *hw) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *hw) text(s string) {
	h.raw(html.EscapeString(s))
}

func (h *hw) rawf(format string, args ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, args...)
	}
}

// attr escapes s for use inside a double-quoted attribute value.
func attr(s string) string {
	return html.EscapeString(s)
}

// Layout wraps body in the site chrome: head with SEO metadata, header
// with navigation and the theme toggle, and footer. The resolved theme
// drives the "dark" marker class on the document root.
func Layout(p portfolio.Page, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}

		htmlClass := ""
		if p.Dark {
			htmlClass = ` class="dark"`
		}
		h.raw("<!DOCTYPE html>")
		h.rawf(`<html lang="en"%s>`, htmlClass)

		h.raw("<head>")
		h.raw(`<meta charset="utf-8"/>`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		h.rawf("<title>%s</title>", html.EscapeString(titleFor(p.Site, meta.Title)))
		if meta.Description != "" {
			h.rawf(`<meta name="description" content="%s"/>`, attr(meta.Description))
		}
		if meta.URL != "" {
			h.rawf(`<link rel="canonical" href="%s"/>`, attr(meta.URL))
			h.rawf(`<meta property="og:url" content="%s"/>`, attr(meta.URL))
		}
		h.rawf(`<meta property="og:title" content="%s"/>`, attr(titleFor(p.Site, meta.Title)))
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		h.rawf(`<meta property="og:type" content="%s"/>`, attr(ogType))
		h.rawf(`<meta property="og:site_name" content="%s"/>`, attr(p.Site.Name))
		h.raw(`<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`)
		h.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"/>`)
		h.raw(`<link rel="stylesheet" href="/public/styles.css"/>`)
		h.raw(`<script src="/public/htmx.min.js" defer></script>`)
		h.rawf(`<script type="application/ld+json">%s</script>`, WebsiteJsonLD(p.Site))
		h.raw("</head>")

		h.raw(`<body class="bg-white text-ink dark:bg-neutral-900 dark:text-white antialiased">`)

		h.raw(`<header class="mx-auto flex max-w-3xl items-center justify-between px-4 py-6">`)
		h.rawf(`<a href="/" class="text-lg font-bold">%s</a>`, html.EscapeString(p.Site.Name))
		h.raw(`<nav class="flex items-center gap-5 text-sm">`)
		h.raw(`<a href="/blog/">Blog</a>`)
		h.raw(`<a href="/projects/">Projects</a>`)
		h.raw(`<a href="/about/">About</a>`)
		themeToggle(h, p)
		h.raw("</nav></header>")

		h.raw(`<main class="mx-auto max-w-3xl px-4 pb-16">`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw("</main>")

		h.raw(`<footer class="mx-auto max-w-3xl px-4 py-8 text-sm text-stone-500 dark:text-neutral-400">`)
		if p.Site.Author != "" {
			h.rawf("<p>&copy; %s</p>", html.EscapeString(p.Site.Author))
		}
		h.raw(`<p><a href="/feed.xml">RSS</a></p>`)
		h.raw("</footer>")

		h.raw("</body></html>")
		return h.err
	})
}

// themeToggle renders the POST form that flips the light/dark preference.
func themeToggle(h *hw, p portfolio.Page) {
	label := "Dark"
	if p.Dark {
		label = "Light"
	}
	h.raw(`<form method="post" action="/theme/" class="inline">`)
	h.rawf(`<input type="hidden" name="_csrf" value="%s"/>`, attr(p.CSRF))
	h.rawf(`<button type="submit" aria-label="Switch to %s mode" class="rounded border border-ink dark:border-white/30 px-2 py-1 text-xs">%s</button>`, attr(label), html.EscapeString(label))
	h.raw("</form>")
}
