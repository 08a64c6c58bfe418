// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package freq

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tidwall/gjson"
)

// ErrInvalidTable marks a document that is not an object of counts.
var ErrInvalidTable = errors.New("invalid frequency table")

// Count is one word and how often it occurred.
type Count struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Table maps words to counts in first-occurrence order.
type Table struct {
	index   map[string]int
	entries []Count
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{index: map[string]int{}}
}

// Add increases the count of word by n, appending it if new.
func (t *Table) Add(word string, n int) {
	if i, ok := t.index[word]; ok {
		t.entries[i].Count += n
		return
	}
	t.index[word] = len(t.entries)
	t.entries = append(t.entries, Count{Word: word, Count: n})
}

// Get returns the count of word, or 0.
func (t *Table) Get(word string) int {
	if i, ok := t.index[word]; ok {
		return t.entries[i].Count
	}
	return 0
}

// Len returns the number of distinct words.
func (t *Table) Len() int {
	return len(t.entries)
}

// Words returns the words in insertion order.
func (t *Table) Words() []string {
	words := make([]string, len(t.entries))
	for i, e := range t.entries {
		words[i] = e.Word
	}
	return words
}

// Entries returns a copy of every entry in insertion order.
func (t *Table) Entries() []Count {
	return append([]Count(nil), t.entries...)
}

// Top returns at most n entries by descending count. Equal counts keep
// insertion order. n <= 0 yields nothing.
func (t *Table) Top(n int) []Count {
	if n <= 0 {
		return []Count{}
	}
	sorted := t.Entries()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// MarshalJSON writes the table as an object whose keys keep insertion order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	out := []byte{'{'}
	for i, e := range t.entries {
		if i > 0 {
			out = append(out, ',')
		}
		buf.Reset()
		if err := enc.Encode(e.Word); err != nil {
			return nil, err
		}
		out = append(out, bytes.TrimRight(buf.Bytes(), "\n")...)
		out = append(out, ':')
		out = fmt.Appendf(out, "%d", e.Count)
	}
	out = append(out, '}')

	return out, nil
}

// FromJSON rebuilds a Table from an object of non-negative integer counts,
// keeping document order.
func FromJSON(doc gjson.Result) (*Table, error) {
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: not an object", ErrInvalidTable)
	}

	t := NewTable()
	var err error
	doc.ForEach(func(k, v gjson.Result) bool {
		if v.Type != gjson.Number || v.Num < 0 || v.Num != math.Trunc(v.Num) {
			err = fmt.Errorf("%w: count for %q is %s", ErrInvalidTable, k.String(), v.Raw)
			return false
		}
		t.Add(k.String(), int(v.Int()))
		return true
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
