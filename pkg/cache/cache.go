// pkg/cache/cache.go - Fingerprint-keyed file cache for resolution results

package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Entry is one cached resolution outcome. A NotFound entry records an
// authoritative miss so repeated queries skip the network entirely.
type Entry struct {
	NotFound bool   `json:"not_found,omitempty"`
	Lyrics   string `json:"lyrics,omitempty"`
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	Artist   string `json:"artist,omitempty"`
}

// Cache is a file-backed key-value store: one JSON record per fingerprint
// under the root directory. The cache is a performance optimization, never a
// correctness dependency - read and write failures degrade to cache misses.
type Cache struct {
	root   string
	logger zerolog.Logger
}

// New creates a cache rooted at dir. The directory is created lazily on the
// first store, so constructing a cache never touches the filesystem.
func New(dir string, logger zerolog.Logger) *Cache {
	return &Cache{
		root:   dir,
		logger: logger,
	}
}

// Fingerprint derives the stable storage key for a query: each field is
// lower-cased, fields are joined with ":", and the result is hashed to a
// fixed-width hex string. The key is deterministic across runs and
// case-insensitive in its inputs.
func Fingerprint(fields ...string) string {
	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(f)
	}

	sum := md5.Sum([]byte(strings.Join(lowered, ":")))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the entry stored under key, or (nil, false) on a miss.
// A missing, unreadable or unparsable record is a miss, never an error.
func (c *Cache) Lookup(key string) (*Entry, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn().Str("key", key).Err(err).Msg("discarding unparsable cache record")
		return nil, false
	}

	return &entry, true
}

// Store writes entry under key. I/O failures are logged and swallowed;
// callers never see them. The record is written to a temp file and renamed
// so a concurrent reader cannot observe a torn record.
func (c *Cache) Store(key string, entry *Entry) {
	if err := os.MkdirAll(c.root, 0755); err != nil {
		c.logger.Warn().Str("dir", c.root).Err(err).Msg("failed to create cache directory")
		return
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		c.logger.Warn().Str("key", key).Err(err).Msg("failed to encode cache record")
		return
	}

	tmp, err := os.CreateTemp(c.root, key+".tmp-*")
	if err != nil {
		c.logger.Warn().Str("key", key).Err(err).Msg("failed to create cache temp file")
		return
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		c.logger.Warn().Str("key", key).Err(err).Msg("failed to write cache record")
		return
	}
	tmp.Close()

	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		os.Remove(tmp.Name())
		c.logger.Warn().Str("key", key).Err(err).Msg("failed to publish cache record")
	}
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.root, key+".json")
}
