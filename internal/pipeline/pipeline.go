// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package pipeline runs a category from page list to frequency table,
// consulting the cache before any network work.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"github.com/staranto/wikifreq/internal/cache"
	"github.com/staranto/wikifreq/internal/category"
	"github.com/staranto/wikifreq/internal/freq"
)

var (
	// ErrNoPages means the category had no member pages.
	ErrNoPages = errors.New("no pages found")

	// ErrNoContent means no extract text came back for any page.
	ErrNoContent = errors.New("no content fetched")
)

// Store is the part of the file cache the runner needs.
type Store interface {
	Get(key string, ttl time.Duration) (gjson.Result, bool)
	Put(key string, value any) error
}

// Lister resolves a category to page titles.
type Lister interface {
	ListPages(ctx context.Context, category string, useCache bool, ttl time.Duration) ([]string, error)
}

// Fetcher returns the concatenated text of pages.
type Fetcher interface {
	FetchContent(ctx context.Context, titles []string) string
}

// Options selects what a run does.
type Options struct {
	Category string
	UseCache bool
	TTL      time.Duration
}

// Result is the outcome of a run.
type Result struct {
	// Category is the name as given, for display.
	Category  string
	Table     *freq.Table
	FromCache bool
	Pages     int
}

// Runner wires the stages together. Store may be nil when caching is off.
type Runner struct {
	Store    Store
	Lister   Lister
	Fetcher  Fetcher
	Analyzer *freq.Analyzer
}

// Run computes the frequency table for opts.Category.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	name := category.Normalize(opts.Category)
	useCache := opts.UseCache && r.Store != nil
	key := cache.Key(cache.PrefixResults, name)

	ll := log.WithField("category", opts.Category)

	if useCache {
		if table, ok := r.cachedResults(key, opts.TTL); ok {
			ll.WithField("words", table.Len()).Info("loaded results from cache")
			return &Result{Category: opts.Category, Table: table, FromCache: true}, nil
		}
	}

	titles, err := r.Lister.ListPages(ctx, name, useCache, opts.TTL)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w in Category:%s", ErrNoPages, opts.Category)
	}

	ll.WithField("pages", len(titles)).Info("fetching page content")
	start := time.Now()

	text := r.Fetcher.FetchContent(ctx, titles)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("%w for Category:%s", ErrNoContent, opts.Category)
	}

	table := r.Analyzer.Analyze(text)
	ll.WithFields(log.Fields{
		"words":   humanize.Comma(int64(table.Len())),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("analyzed content")

	if useCache {
		if err := r.Store.Put(key, table); err != nil {
			ll.WithError(err).Warn("failed to cache results")
		}
	}

	return &Result{Category: opts.Category, Table: table, Pages: len(titles)}, nil
}

// Pages lists the titles of opts.Category.
func (r *Runner) Pages(ctx context.Context, opts Options) ([]string, error) {
	useCache := opts.UseCache && r.Store != nil
	return r.Lister.ListPages(ctx, category.Normalize(opts.Category), useCache, opts.TTL)
}

func (r *Runner) cachedResults(key string, ttl time.Duration) (*freq.Table, bool) {
	data, ok := r.Store.Get(key, ttl)
	if !ok {
		return nil, false
	}
	table, err := freq.FromJSON(data)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("cached results have an unexpected shape, ignoring")
		return nil, false
	}
	return table, true
}
