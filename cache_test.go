package portfolio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"
)

func setupTestCache(t *testing.T) *PostCache {
	t.Helper()
	store := NewContentStoreFS(fstest.MapFS{
		"posts/first.md":  postFile("2024-01-01", "First", "go", ""),
		"posts/second.md": postFile("2024-06-01", "Second", "web", ""),
	})
	return NewPostCache(store, time.Minute)
}

func TestCacheListPosts(t *testing.T) {
	cache := setupTestCache(t)

	got, err := cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListPosts count = %d, want 2", len(got))
	}
	if got[0].Slug != "second" {
		t.Errorf("first post = %q, want the most recent (second)", got[0].Slug)
	}
}

func TestCacheListPostsByCategory(t *testing.T) {
	cache := setupTestCache(t)

	got, err := cache.ListPosts("go")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "first" {
		t.Errorf("ListPosts(go) = %v, want only the go post", got)
	}
}

func TestCacheGetPostNotFound(t *testing.T) {
	cache := setupTestCache(t)

	_, err := cache.GetPost("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCacheEmptyStoreStaysValid(t *testing.T) {
	cache := NewPostCache(NewContentStoreFS(fstest.MapFS{}), time.Minute)

	// Two reads: the second must come from cache, not reparse.
	for i := 0; i < 2; i++ {
		got, err := cache.ListPosts("")
		if err != nil {
			t.Fatalf("ListPosts failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("ListPosts = %d posts, want 0", len(got))
		}
	}
}

func TestCacheInvalidateForcesReload(t *testing.T) {
	dir := t.TempDir()
	postsDir := filepath.Join(dir, "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writePostFile(t, postsDir, "one.md", "2024-01-01", "One")

	cache := NewPostCache(NewContentStore(dir), time.Hour)
	got, err := cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListPosts count = %d, want 1", len(got))
	}

	writePostFile(t, postsDir, "two.md", "2024-02-01", "Two")

	// TTL has not expired, so the new file is invisible until Invalidate.
	got, _ = cache.ListPosts("")
	if len(got) != 1 {
		t.Fatalf("ListPosts before invalidate = %d posts, want 1", len(got))
	}

	cache.Invalidate()
	got, err = cache.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts after invalidate failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListPosts after invalidate = %d posts, want 2", len(got))
	}
}

func TestCacheWatchInvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	postsDir := filepath.Join(dir, "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writePostFile(t, postsDir, "one.md", "2024-01-01", "One")

	cache := NewPostCache(NewContentStore(dir), time.Hour)
	stop, err := cache.Watch(postsDir)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer stop()

	if _, err := cache.ListPosts(""); err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}

	writePostFile(t, postsDir, "two.md", "2024-02-01", "Two")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		got, err := cache.ListPosts("")
		if err != nil {
			t.Fatalf("ListPosts failed: %v", err)
		}
		if len(got) == 2 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Error("cache never picked up the new post after a file write")
}

func writePostFile(t *testing.T, dir, name, date, title string) {
	t.Helper()
	content := "---\ntitle: " + title + "\ndate: " + date + "\n---\n\nBody.\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
