// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/wikifreq/internal/api"
	"github.com/staranto/wikifreq/internal/cache"
	"github.com/staranto/wikifreq/internal/cacheutil"
	"github.com/staranto/wikifreq/internal/category"
	"github.com/staranto/wikifreq/internal/content"
	"github.com/staranto/wikifreq/internal/freq"
	"github.com/staranto/wikifreq/internal/meta"
	"github.com/staranto/wikifreq/internal/pipeline"
	"github.com/staranto/wikifreq/internal/stopwords"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr wikifreq` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "wikifreq")
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata, looking at
// parent commands too. If missing or of an unexpected type, it returns the
// zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	for _, c := range lineage(cmd) {
		if c.Metadata == nil {
			continue
		}
		if m, ok := c.Metadata["meta"].(meta.Meta); ok {
			return m
		}
	}
	return meta.Meta{}
}

func lineage(cmd *cli.Command) []*cli.Command {
	if cmd == nil {
		return nil
	}
	return cmd.Lineage()
}

// categoryArg returns the single positional argument.
func categoryArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 || cmd.Args().First() == "" {
		return "", fmt.Errorf("expected exactly one category, got %d arguments; usage: %s", cmd.Args().Len(), cmd.UsageText)
	}
	return cmd.Args().First(), nil
}

// NewRunner assembles the listing and fetching stages from flag values.
// Callers that count words also set Analyzer, see newAnalyzer. The cache is
// disabled when --no-cache or WIKIFREQ_CACHE says so, or when its directory
// cannot be created.
func NewRunner(cmd *cli.Command) (*pipeline.Runner, pipeline.Options, error) {
	opts := pipeline.Options{
		UseCache: cacheutil.Enabled(cmd.Bool("no-cache")),
		TTL:      cacheTTL(cmd),
	}

	var store pipeline.Store
	if opts.UseCache {
		dir, err := cacheutil.EnsureBaseDir(cacheutil.Dir(cmd.String("cache-dir")), true)
		if err != nil {
			log.WithError(err).Warn("caching disabled")
			opts.UseCache = false
		} else {
			log.WithField("dir", dir).Debug("using cache directory")
			store = cache.New(dir)
		}
	} else {
		log.Info("caching disabled")
	}

	endpoint, err := NormalizeURL(cmd.String("api-url"))
	if err != nil {
		return nil, opts, err
	}

	client := api.New(
		api.WithEndpoint(endpoint),
		api.WithUserAgent(cmd.String("user-agent")),
		api.WithTimeout(cmd.Duration("timeout")),
	)

	return &pipeline.Runner{
		Store:   store,
		Lister:  category.NewLister(client, store),
		Fetcher: content.NewFetcher(client),
	}, opts, nil
}

// newAnalyzer loads the --stopwords list, or the built-in one.
func newAnalyzer(cmd *cli.Command) (*freq.Analyzer, error) {
	stop, err := stopwords.Load(cmd.String("stopwords"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stop words: %w", err)
	}
	log.WithField("words", stop.Len()).Debug("loaded stop words")

	return freq.NewAnalyzer(stop), nil
}

// useColor honours an explicit --color/--no-color and otherwise colors only
// a terminal stdout.
func useColor(cmd *cli.Command, m meta.Meta) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	if !m.IsStdout() {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
