// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package category

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/wikifreq/internal/api"
	"github.com/staranto/wikifreq/internal/cache"
)

// DefaultPageDelay separates successive listing requests.
const DefaultPageDelay = 500 * time.Millisecond

// ErrMalformedListing marks a listing response without the expected shape.
var ErrMalformedListing = errors.New("malformed category listing")

// Querier performs one API call against the configured endpoint.
type Querier interface {
	Query(ctx context.Context, params url.Values) (gjson.Result, error)
}

// Store is the part of the file cache the lister needs.
type Store interface {
	Get(key string, ttl time.Duration) (gjson.Result, bool)
	Put(key string, value any) error
}

// Lister resolves a category to its member page titles.
type Lister struct {
	client    Querier
	store     Store
	PageDelay time.Duration
}

// NewLister returns a Lister. store may be nil when caching is disabled.
func NewLister(client Querier, store Store) *Lister {
	return &Lister{client: client, store: store, PageDelay: DefaultPageDelay}
}

// Normalize converts a display category name into the form used for the API
// and cache keys.
func Normalize(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// ListPages returns every page title of category, in API order. When useCache
// is set, a fresh cached listing is returned without network access and a
// successful non-empty listing is written back.
func (l *Lister) ListPages(ctx context.Context, category string, useCache bool, ttl time.Duration) ([]string, error) {
	key := cache.Key(cache.PrefixPages, category)
	useCache = useCache && l.store != nil

	if useCache {
		if titles, ok := l.fromCache(key, ttl); ok {
			log.WithField("pages", len(titles)).Infof("loaded page list for Category:%s from cache", category)
			return titles, nil
		}
	}

	log.Infof("fetching page list for Category:%s from API", category)

	titles, err := l.fetch(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list Category:%s: %w", category, err)
	}

	log.WithField("pages", len(titles)).Infof("found pages in Category:%s", category)

	if useCache && len(titles) > 0 {
		if err := l.store.Put(key, titles); err != nil {
			log.WithError(err).Warn("failed to cache page list")
		}
	}

	return titles, nil
}

// fromCache accepts only an array of strings.
func (l *Lister) fromCache(key string, ttl time.Duration) ([]string, bool) {
	data, ok := l.store.Get(key, ttl)
	if !ok {
		return nil, false
	}

	if !data.IsArray() {
		log.WithField("key", key).Warn("cached page list has an unexpected shape, ignoring")
		return nil, false
	}

	items := data.Array()
	titles := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != gjson.String {
			log.WithField("key", key).Warn("cached page list has an unexpected shape, ignoring")
			return nil, false
		}
		titles = append(titles, item.String())
	}

	return titles, true
}

// fetch walks the continuation chain until a response carries no continue
// object. Each request is the base query plus only the latest continue
// object. Any failure discards everything collected so far.
func (l *Lister) fetch(ctx context.Context, category string) ([]string, error) {
	base := url.Values{
		"action":  {"query"},
		"format":  {"json"},
		"list":    {"categorymembers"},
		"cmtitle": {"Category:" + category},
		"cmlimit": {"max"},
		"cmtype":  {"page"},
	}

	params := base
	var titles []string
	for page := 1; ; page++ {
		doc, err := l.client.Query(ctx, params)
		if err != nil {
			return nil, err
		}

		members := doc.Get("query.categorymembers")
		if !members.IsArray() {
			return nil, fmt.Errorf("%w: response %d has no categorymembers list", ErrMalformedListing, page)
		}
		for _, m := range members.Array() {
			title := m.Get("title")
			if title.Type != gjson.String {
				return nil, fmt.Errorf("%w: response %d has a member without a title", ErrMalformedListing, page)
			}
			titles = append(titles, title.String())
		}

		cont := doc.Get("continue")
		if !cont.Exists() {
			break
		}
		if !cont.IsObject() {
			return nil, fmt.Errorf("%w: response %d has a non-object continue", ErrMalformedListing, page)
		}

		params = cloneValues(base)
		cont.ForEach(func(k, v gjson.Result) bool {
			params.Set(k.String(), v.String())
			return true
		})

		log.WithField("pages", len(titles)).Debugf("continuing listing after response %d", page)

		if err := api.Pause(ctx, l.PageDelay); err != nil {
			return nil, err
		}
	}

	if titles == nil {
		titles = []string{}
	}

	return titles, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
