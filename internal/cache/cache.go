// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
)

// Key prefixes for the two pipeline stages that consult the cache.
const (
	PrefixPages   = "pages"
	PrefixResults = "results"
)

// maxSanitizedLen caps the sanitized portion of a key.
const maxSanitizedLen = 100

var (
	separatorRe = regexp.MustCompile(`[\\/*?:"<>|\s]+`)
	invalidRe   = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
)

// Entry is the on-disk wrapper around a cached payload.
type Entry struct {
	Timestamp float64 `json:"timestamp"`
	Data      any     `json:"data"`
}

// FileCache stores one JSON file per key beneath Dir.
type FileCache struct {
	dir string
	now func() time.Time
}

// Option customizes a FileCache.
type Option func(*FileCache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *FileCache) { c.now = now }
}

// New returns a FileCache rooted at dir. The directory is not created until
// Init or Put.
func New(dir string, opts ...Option) *FileCache {
	c := &FileCache{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the cache root.
func (c *FileCache) Dir() string {
	return c.dir
}

// Init ensures the cache directory exists.
func (c *FileCache) Init() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Sanitize reduces a category name to [A-Za-z0-9_-], at most 100 characters,
// without leading or trailing underscores. Distinct names may collide.
func Sanitize(name string) string {
	name = separatorRe.ReplaceAllString(name, "_")
	name = invalidRe.ReplaceAllString(name, "")
	if len(name) > maxSanitizedLen {
		name = name[:maxSanitizedLen]
	}
	return strings.Trim(name, "_")
}

// Key composes a cache key from a prefix and a category name. A name with
// nothing left after sanitizing shares its key with every other such name.
func Key(prefix, category string) string {
	s := Sanitize(category)
	if s == "" {
		log.WithField("category", category).Warnf("category sanitizes to an empty name, cache key %s_ is shared", prefix)
	}
	return prefix + "_" + s
}

// Path maps a key to its file.
func (c *FileCache) Path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get returns the payload stored under key if it is younger than ttl. Stale,
// unreadable or malformed entries are removed and reported as a miss.
func (c *FileCache) Get(key string, ttl time.Duration) (gjson.Result, bool) {
	p := c.Path(key)
	name := filepath.Base(p)

	raw, err := os.ReadFile(p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warnf("error reading cache file %s, ignoring cache", name)
			c.discard(p)
		}
		return gjson.Result{}, false
	}

	raw = bytes.TrimSpace(raw)
	if !gjson.ValidBytes(raw) {
		log.Warnf("cache file %s is not valid JSON, ignoring cache", name)
		c.discard(p)
		return gjson.Result{}, false
	}

	doc := gjson.ParseBytes(raw)
	data := doc.Get("data")
	ts := doc.Get("timestamp")
	if !doc.IsObject() || !data.Exists() || ts.Type != gjson.Number {
		log.Warnf("cache file %s has an unexpected format, ignoring cache", name)
		c.discard(p)
		return gjson.Result{}, false
	}

	written := fromEpoch(ts.Float())
	if c.now().Sub(written) > ttl {
		log.Infof("cache file expired: %s (written %s)", name, humanize.Time(written))
		c.discard(p)
		return gjson.Result{}, false
	}

	log.Infof("cache hit: %s", name)
	return data, true
}

// Put writes value under key, replacing any previous file in one rename.
func (c *FileCache) Put(key string, value any) error {
	if err := c.Init(); err != nil {
		return err
	}

	entry := Entry{
		Timestamp: toEpoch(c.now()),
		Data:      value,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	p := c.Path(key)
	tmp, err := os.CreateTemp(c.dir, ".tmp-"+key+"-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Infof("cache written: %s", filepath.Base(p))
	return nil
}

// Delete removes the entry for key. Missing entries are not an error.
func (c *FileCache) Delete(key string) error {
	if err := os.Remove(c.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

// discard removes a file, ignoring failures.
func (c *FileCache) discard(p string) {
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Debugf("failed to remove cache file %s", filepath.Base(p))
	}
}

func toEpoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromEpoch(f float64) time.Time {
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
