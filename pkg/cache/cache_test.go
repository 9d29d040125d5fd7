// pkg/cache/cache_test.go

package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return New(t.TempDir(), zerolog.Nop())
}

func TestFingerprint_Stable(t *testing.T) {
	a := Fingerprint("Hello", "Adele")
	b := Fingerprint("Hello", "Adele")

	if a != b {
		t.Errorf("Fingerprint not deterministic: %s != %s", a, b)
	}

	if len(a) != 32 {
		t.Errorf("Expected 32-char hex key, got %d chars: %s", len(a), a)
	}
}

func TestFingerprint_CaseInsensitive(t *testing.T) {
	a := Fingerprint("Hello", "Adele")
	b := Fingerprint("HELLO", "adele")

	if a != b {
		t.Errorf("Fingerprint should be case-insensitive: %s != %s", a, b)
	}
}

func TestFingerprint_DistinctInputs(t *testing.T) {
	a := Fingerprint("Hello", "Adele")
	b := Fingerprint("Someone Like You", "Adele")

	if a == b {
		t.Error("Different queries produced the same fingerprint")
	}
}

func TestCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)

	stored := &Entry{
		Lyrics: "Verse 1\nLine 2",
		URL:    "https://example.com/songs/hello",
		Title:  "Hello",
		Artist: "Adele",
	}
	c.Store(Fingerprint("Hello", "Adele"), stored)

	// Lookup with different input casing must hit the same record.
	got, ok := c.Lookup(Fingerprint("HELLO", "ADELE"))
	if !ok {
		t.Fatal("Expected cache hit after store")
	}

	if got.Lyrics != stored.Lyrics || got.URL != stored.URL || got.Title != stored.Title || got.Artist != stored.Artist {
		t.Errorf("Round-trip mismatch: got %+v, stored %+v", got, stored)
	}
}

func TestCache_NegativeEntry(t *testing.T) {
	c := newTestCache(t)

	key := Fingerprint("Unknown Song", "Unknown Artist")
	c.Store(key, &Entry{NotFound: true})

	got, ok := c.Lookup(key)
	if !ok {
		t.Fatal("Expected cache hit for negative entry")
	}
	if !got.NotFound {
		t.Error("Expected NotFound marker to survive the round trip")
	}
}

func TestCache_MissingKey(t *testing.T) {
	c := newTestCache(t)

	if _, ok := c.Lookup(Fingerprint("never", "stored")); ok {
		t.Error("Expected miss for unseen fingerprint")
	}
}

func TestCache_CorruptRecord(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, zerolog.Nop())

	key := Fingerprint("Hello", "Adele")
	if err := os.WriteFile(filepath.Join(dir, key+".json"), []byte("{not valid json"), 0644); err != nil {
		t.Fatalf("Failed to plant corrupt record: %v", err)
	}

	// Corruption is a miss, never a panic or error.
	if _, ok := c.Lookup(key); ok {
		t.Error("Expected corrupt record to be treated as a miss")
	}
}

func TestCache_LazyDirectoryCreation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := New(dir, zerolog.Nop())

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("Cache directory should not exist before first store")
	}

	c.Store(Fingerprint("a", "b"), &Entry{NotFound: true})

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected cache directory after store: %v", err)
	}
}

func TestCache_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	key := Fingerprint("Hello", "Adele")

	New(dir, zerolog.Nop()).Store(key, &Entry{Lyrics: "text"})

	got, ok := New(dir, zerolog.Nop()).Lookup(key)
	if !ok {
		t.Fatal("Expected hit from a fresh cache instance over the same root")
	}
	if got.Lyrics != "text" {
		t.Errorf("Expected lyrics 'text', got %q", got.Lyrics)
	}
}
