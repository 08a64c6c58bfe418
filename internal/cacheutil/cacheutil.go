// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDir is used when neither a flag, the config file nor
// WIKIFREQ_CACHE_DIR names a cache directory.
const DefaultDir = ".wiki_cache"

// Dir resolves the base cache directory.
// Precedence:
//  1. override, if non-empty (the --cache-dir flag and its sources)
//  2. WIKIFREQ_CACHE_DIR, if set and non-empty
//  3. DefaultDir, relative to the working directory
func Dir(override string) string {
	if override != "" {
		return override
	}
	if c, ok := os.LookupEnv("WIKIFREQ_CACHE_DIR"); ok && c != "" {
		return c
	}
	return DefaultDir
}

// Enabled returns true unless WIKIFREQ_CACHE explicitly disables it
// ("0"/"false") or noCache is set.
func Enabled(noCache bool) bool {
	if noCache {
		return false
	}
	enabled, _ := os.LookupEnv("WIKIFREQ_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates dir when caching is enabled. It returns the absolute
// path and an error if creation failed.
func EnsureBaseDir(dir string, enabled bool) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if !enabled {
		return abs, nil
	}
	if err := os.MkdirAll(abs, 0o755); err != nil { //nolint:mnd
		return abs, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return abs, nil
}
