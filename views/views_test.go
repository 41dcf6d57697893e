package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	portfolio "github.com/vadimghedreutan/portfolio-2025"
)

func testPage(dark bool) portfolio.Page {
	return portfolio.Page{
		Site: portfolio.SiteConfig{
			Name:        "Test Site",
			URL:         "https://example.com",
			Description: "A test site",
			Author:      "Test Author",
		},
		Dark: dark,
		CSRF: "tok123",
	}
}

func render(t *testing.T, p portfolio.Page, posts []portfolio.Post, projects []portfolio.Project) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Home(p, posts, projects).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func TestLayoutDarkMarker(t *testing.T) {
	got := render(t, testPage(true), nil, nil)
	if !strings.Contains(got, `<html lang="en" class="dark">`) {
		t.Errorf("dark page missing dark class on document root:\n%s", got[:200])
	}

	got = render(t, testPage(false), nil, nil)
	if strings.Contains(got, `class="dark"`) {
		t.Error("light page should not carry the dark marker class")
	}
}

func TestLayoutThemeToggleForm(t *testing.T) {
	got := render(t, testPage(false), nil, nil)
	if !strings.Contains(got, `action="/theme/"`) {
		t.Error("missing theme toggle form")
	}
	if !strings.Contains(got, `name="_csrf" value="tok123"`) {
		t.Error("toggle form missing CSRF token")
	}
	if !strings.Contains(got, ">Dark</button>") {
		t.Error("light page should offer switching to dark")
	}

	got = render(t, testPage(true), nil, nil)
	if !strings.Contains(got, ">Light</button>") {
		t.Error("dark page should offer switching to light")
	}
}

func TestHomeEscapesPostTitles(t *testing.T) {
	posts := []portfolio.Post{{
		Slug:        "xss",
		Title:       `<script>alert("x")</script>`,
		PublishedAt: time.Now(),
		Link:        "/blog/xss/",
	}}
	got := render(t, testPage(false), posts, nil)
	if strings.Contains(got, `<script>alert`) {
		t.Error("post title was not escaped")
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Error("escaped title missing from output")
	}
}

func TestPostPageRendersMarkdownBody(t *testing.T) {
	post := portfolio.Post{
		Slug:        "hello",
		Title:       "Hello",
		PublishedAt: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		Summary:     "summary",
		Category:    "go",
		Content:     "# Section\n\nSome **bold** text.",
	}
	var buf bytes.Buffer
	if err := Post(testPage(false), post, nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("markdown body not rendered: %q", got)
	}
	if !strings.Contains(got, "BlogPosting") {
		t.Error("missing BlogPosting JSON-LD")
	}
	if !strings.Contains(got, `datetime="2024-05-20"`) {
		t.Error("missing machine-readable publish date")
	}
}

func TestBlogSectionCategoryPills(t *testing.T) {
	var buf bytes.Buffer
	err := BlogSection(nil, "go", []string{"go", "web"}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "category=go") || !strings.Contains(got, "category=web") {
		t.Errorf("category links missing: %q", got)
	}
	if !strings.Contains(got, "Nothing here yet.") {
		t.Error("empty listing should say so")
	}
}

func TestProjectsSkipsUnsafeURLs(t *testing.T) {
	projects := []portfolio.Project{{
		Name: "Sketchy",
		URL:  "javascript:alert(1)",
	}}
	var buf bytes.Buffer
	if err := Projects(testPage(false), projects).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	got := buf.String()
	if strings.Contains(got, "javascript:") {
		t.Errorf("unsafe project URL leaked into output: %q", got)
	}
	if !strings.Contains(got, "Sketchy") {
		t.Error("project name should still render without a link")
	}
}

func TestFuncsIsComplete(t *testing.T) {
	f := Funcs()
	if f.Home == nil || f.Blog == nil || f.BlogSection == nil || f.Post == nil ||
		f.Projects == nil || f.About == nil || f.NotFound == nil || f.ServerError == nil {
		t.Error("Funcs left a view unset")
	}
}
