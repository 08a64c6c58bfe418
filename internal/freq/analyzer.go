// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package freq

import (
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tokenRe matches runs of word characters.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// StopSet reports whether a word is excluded from counting.
type StopSet interface {
	Contains(word string) bool
}

// Analyzer counts non-stop words. It holds no state between calls.
type Analyzer struct {
	stop StopSet
}

// NewAnalyzer returns an Analyzer that drops words in stop. stop may be nil.
func NewAnalyzer(stop StopSet) *Analyzer {
	return &Analyzer{stop: stop}
}

// Tokenize lower-cases text and splits it into word tokens.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(cases.Lower(language.Und).String(text), -1)
}

// Analyze counts every token longer than one character that is not a stop
// word.
func (a *Analyzer) Analyze(text string) *Table {
	t := NewTable()
	for _, tok := range Tokenize(text) {
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if a.stop != nil && a.stop.Contains(tok) {
			continue
		}
		t.Add(tok, 1)
	}
	return t
}
