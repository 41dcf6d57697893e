package portfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("post not found")

// Post is the core content type, parsed from markdown files under the
// content directory and rendered by templates.
type Post struct {
	Slug        string
	Title       string
	PublishedAt time.Time
	Summary     string
	Category    string
	Content     string // markdown body, rendered at view time
	Link        string
}

// postMeta mirrors the YAML front matter block of a content file.
type postMeta struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Summary  string `yaml:"summary"`
	Category string `yaml:"category"`
	Slug     string `yaml:"slug"`
	Draft    bool   `yaml:"draft"`
}

// ContentStore reads blog posts from a directory of markdown files.
// Content is static: files are authored offline and the store never
// mutates them.
type ContentStore struct {
	fsys fs.FS
}

// NewContentStore creates a store over the given content directory.
// Posts live in dir/posts/*.md, standalone pages directly in dir.
func NewContentStore(dir string) *ContentStore {
	return &ContentStore{fsys: os.DirFS(dir)}
}

// NewContentStoreFS creates a store over an arbitrary filesystem,
// e.g. an fstest.MapFS in tests or an embed.FS.
func NewContentStoreFS(fsys fs.FS) *ContentStore {
	return &ContentStore{fsys: fsys}
}

// ListPosts returns all non-draft posts ordered by publish date
// descending. If category is non-empty, results are filtered to posts in
// that category. An empty content directory yields an empty slice.
func (s *ContentStore) ListPosts(category string) ([]Post, error) {
	posts, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	if category == "" {
		return posts, nil
	}
	normalized := normalizeCategory(category)
	var filtered []Post
	for _, p := range posts {
		if normalizeCategory(p.Category) == normalized {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListCategories returns a sorted, deduplicated slice of all categories.
func (s *ContentStore) ListCategories() ([]string, error) {
	posts, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, p := range posts {
		if c := normalizeCategory(p.Category); c != "" {
			set[c] = struct{}{}
		}
	}
	var result []string
	for c := range set {
		result = append(result, c)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single post by slug.
func (s *ContentStore) GetPost(slug string) (Post, error) {
	posts, err := s.loadAll()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Page reads a standalone markdown page (e.g. "about.md") from the
// content root and returns its body with front matter stripped.
func (s *ContentStore) Page(name string) (string, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	var meta postMeta
	body, err := frontmatter.Parse(f, &meta)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", name, err)
	}
	return string(body), nil
}

func (s *ContentStore) loadAll() ([]Post, error) {
	names, err := fs.Glob(s.fsys, "posts/*.md")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]string, len(names))
	var posts []Post
	for _, name := range names {
		post, draft, err := s.parsePost(name)
		if err != nil {
			return nil, err
		}
		if draft {
			continue
		}
		if prev, dup := seen[post.Slug]; dup {
			return nil, fmt.Errorf("duplicate slug %q in %s and %s", post.Slug, prev, name)
		}
		seen[post.Slug] = name
		posts = append(posts, post)
	}
	SortPosts(posts)
	return posts, nil
}

func (s *ContentStore) parsePost(name string) (Post, bool, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return Post{}, false, err
	}
	defer f.Close()

	var meta postMeta
	body, err := frontmatter.Parse(f, &meta)
	if err != nil {
		return Post{}, false, fmt.Errorf("parse %s: %w", name, err)
	}
	if meta.Draft {
		return Post{}, true, nil
	}

	slug := meta.Slug
	if slug == "" {
		base := strings.TrimSuffix(name[len("posts/"):], ".md")
		slug = Slugify(base)
	}
	if slug == "" {
		return Post{}, false, fmt.Errorf("%s: cannot derive a slug", name)
	}

	publishedAt, err := parsePublishDate(meta.Date)
	if err != nil {
		return Post{}, false, fmt.Errorf("%s: %w", name, err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		return Post{}, false, fmt.Errorf("%s: title is required", name)
	}

	return Post{
		Slug:        slug,
		Title:       title,
		PublishedAt: publishedAt,
		Summary:     strings.TrimSpace(meta.Summary),
		Category:    normalizeCategory(meta.Category),
		Content:     string(body),
		Link:        "/blog/" + slug + "/",
	}, false, nil
}

// parsePublishDate accepts the date formats content files use in the
// wild: plain days and full RFC 3339 timestamps.
func parsePublishDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
}

// SortPosts orders posts by publish date descending, most recent first.
// The sort is stable: posts sharing a date keep their input order.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
