// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/wikifreq/internal/config"
	"github.com/staranto/wikifreq/internal/meta"
)

// InitApp builds the root command. Results are written to w, or stdout when
// w is nil.
func InitApp(ctx context.Context, args []string, w io.Writer) (*cli.Command, error) {
	sd, _ := os.Getwd()

	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		log.Debugf("no config file: %v", err)
	}

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
		Stdout:      w,
	}

	app := &cli.Command{
		Name:      "wikifreq",
		Usage:     "cumulative word frequencies for the pages of a Wikipedia category",
		UsageText: "wikifreq [options] <category>",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			newVersionFlag(),
			newTLDRFlag(),
		}, NewGlobalFlags(cfg.Source)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: RootCommandAction,
	}

	if w != nil {
		app.Writer = w
	}

	app.Commands = append(app.Commands,
		PagesCommandBuilder(meta),
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}
