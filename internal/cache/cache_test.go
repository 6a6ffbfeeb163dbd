package cache

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/studyme-ai/studyme/internal/models"
)

func sampleResult(summary string) *models.PipelineResult {
	return &models.PipelineResult{
		Summary: models.SummaryStage{OK: true, Text: summary},
		Search:  models.SearchStage{Ran: false, Note: models.SearchDidNotRun},
		Notes:   models.FallbackNotes,
	}
}

func newTestCache(t *testing.T, ttl time.Duration) *FileCache {
	t.Helper()
	c, err := New(t.TempDir(), ttl, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestStoreThenLookup(t *testing.T) {
	c := newTestCache(t, time.Hour)
	text := "some extracted document text for caching purposes"

	if _, ok := c.Lookup(text); ok {
		t.Fatal("lookup before store should miss")
	}
	if !c.Store(text, sampleResult("the summary")) {
		t.Fatal("store should succeed")
	}

	got, ok := c.Lookup(text)
	if !ok {
		t.Fatal("lookup after store should hit")
	}
	if got.Summary.Text != "the summary" || !got.Summary.OK {
		t.Errorf("unexpected cached summary: %+v", got.Summary)
	}
	if got.Notes != models.FallbackNotes {
		t.Errorf("unexpected cached notes: %q", got.Notes)
	}
}

func TestLookupExpiresLazily(t *testing.T) {
	c := newTestCache(t, time.Hour)
	text := "text whose cache entry will expire before the second lookup"
	c.Store(text, sampleResult("stale"))

	c.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, ok := c.Lookup(text); ok {
		t.Fatal("expired entry should miss")
	}
	// The stale file was removed as a side effect of the check.
	if _, err := os.Stat(c.entryPath(text)); !os.IsNotExist(err) {
		t.Errorf("stale entry file should be gone, stat err=%v", err)
	}
}

func TestFingerprintCollision(t *testing.T) {
	c := newTestCache(t, time.Hour)
	prefix := strings.Repeat("a", 1000)

	c.Store(prefix+" first document tail", sampleResult("first"))
	got, ok := c.Lookup(prefix + " completely different tail")
	if !ok {
		t.Fatal("texts sharing the 1000-char prefix should hit the same entry")
	}
	if got.Summary.Text != "first" {
		t.Errorf("got %q, want the first document's result", got.Summary.Text)
	}
}

func TestShortTextsWithDifferentContentDoNotCollide(t *testing.T) {
	c := newTestCache(t, time.Hour)
	c.Store("short text number one", sampleResult("one"))
	if _, ok := c.Lookup("short text number two"); ok {
		t.Fatal("distinct short texts must not share an entry")
	}
}

func TestLastWriterWins(t *testing.T) {
	c := newTestCache(t, time.Hour)
	text := "the same fingerprint written twice in a row"
	c.Store(text, sampleResult("old"))
	c.Store(text, sampleResult("new"))

	got, ok := c.Lookup(text)
	if !ok || got.Summary.Text != "new" {
		t.Fatalf("expected the second write to win, got %+v ok=%v", got, ok)
	}
}

func TestCorruptEntryIsDroppedOnRead(t *testing.T) {
	c := newTestCache(t, time.Hour)
	text := "text backed by a corrupt cache file"
	c.Store(text, sampleResult("fine"))

	if err := os.WriteFile(c.entryPath(text), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupting entry: %v", err)
	}
	if _, ok := c.Lookup(text); ok {
		t.Fatal("corrupt entry should miss")
	}
	if _, err := os.Stat(c.entryPath(text)); !os.IsNotExist(err) {
		t.Error("corrupt entry should be deleted")
	}
}

func TestStoreFailureReturnsFalse(t *testing.T) {
	c := newTestCache(t, time.Hour)
	// Point the cache at a directory that no longer exists.
	c.dir = c.dir + "-missing"
	if c.Store("whatever text", sampleResult("x")) {
		t.Fatal("store into a missing directory should report false, not panic")
	}
}
