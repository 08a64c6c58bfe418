// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package stopwords provides the set of common words excluded from counts.
package stopwords

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed english.txt
var english string

// Set is a read-only collection of lower-case words.
type Set struct {
	words map[string]struct{}
}

// English returns the built-in English list.
func English() *Set {
	s, _ := Parse(strings.NewReader(english))
	return s
}

// Load reads a stop-word file, one word per line. Blank lines and lines
// starting with # are ignored. An empty path returns English().
func Load(path string) (*Set, error) {
	if path == "" {
		return English(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stop words: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read stop words from %s: %w", path, err)
	}
	return s, nil
}

// Parse reads a stop-word list from r.
func Parse(r io.Reader) (*Set, error) {
	lower := cases.Lower(language.Und)
	s := &Set{words: map[string]struct{}{}}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		s.words[lower.String(w)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return s, nil
}

// New builds a Set from words as given.
func New(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.words[w] = struct{}{}
	}
	return s
}

// Contains reports whether w is a stop word. A nil Set contains nothing.
func (s *Set) Contains(w string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[w]
	return ok
}

// Len returns the number of words.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}
