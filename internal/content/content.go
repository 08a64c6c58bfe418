// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package content downloads the plain-text extracts of a list of pages.
package content

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"github.com/staranto/wikifreq/internal/api"
)

const (
	// DefaultBatchSize is the number of titles per extracts request.
	DefaultBatchSize = 50

	// DefaultBatchDelay separates successive batches.
	DefaultBatchDelay = 500 * time.Millisecond
)

// Querier performs one API call against the configured endpoint.
type Querier interface {
	Query(ctx context.Context, params url.Values) (gjson.Result, error)
}

// Fetcher collects extracts in batches. A failed batch is skipped.
type Fetcher struct {
	client     Querier
	BatchSize  int
	BatchDelay time.Duration
}

// NewFetcher returns a Fetcher with the default batch size and delay.
func NewFetcher(client Querier) *Fetcher {
	return &Fetcher{client: client, BatchSize: DefaultBatchSize, BatchDelay: DefaultBatchDelay}
}

// FetchContent returns the concatenated extracts of titles, each followed by
// a newline, in batch order and then response order within a batch. The
// result is empty when nothing usable came back. Only cancellation of ctx
// stops it early.
func (f *Fetcher) FetchContent(ctx context.Context, titles []string) string {
	size := f.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	batches := (len(titles) + size - 1) / size
	var sb strings.Builder

	for i := 0; i < batches; i++ {
		start := i * size
		end := min(start+size, len(titles))
		batch := titles[start:end]

		log.Infof("fetching content for batch %d/%d (%d titles)", i+1, batches, len(batch))

		// Whole-article extracts are capped at one page per request, so only
		// intros are asked for.
		params := url.Values{
			"action":      {"query"},
			"format":      {"json"},
			"prop":        {"extracts"},
			"titles":      {strings.Join(batch, "|")},
			"exintro":     {"1"},
			"explaintext": {"1"},
			"exlimit":     {"max"},
		}

		doc, err := f.client.Query(ctx, params)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.WithError(err).Errorf("failed to fetch content for batch %d/%d, skipping", i+1, batches)
		} else {
			appendExtracts(&sb, doc)
		}

		if i < batches-1 {
			if err := api.Pause(ctx, f.BatchDelay); err != nil {
				break
			}
		}
	}

	text := sb.String()
	log.WithField("bytes", humanize.Bytes(uint64(len(text)))).Info("finished fetching content")

	return text
}

// appendExtracts writes every present page's extract in document order.
func appendExtracts(sb *strings.Builder, doc gjson.Result) {
	pages := doc.Get("query.pages")
	if !pages.IsObject() {
		log.Warn("extracts response has no pages object")
		return
	}

	pages.ForEach(func(id, page gjson.Result) bool {
		if page.Get("missing").Exists() {
			log.WithField("title", page.Get("title").String()).Debug("page missing, skipping")
			return true
		}
		extract := page.Get("extract")
		if !extract.Exists() {
			return true
		}
		sb.WriteString(extract.String())
		sb.WriteByte('\n')
		return true
	})
}
