// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/wikifreq/internal/meta"
	"github.com/staranto/wikifreq/internal/output"
)

// PagesCommandAction prints the member page titles of a category.
func PagesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	name, err := categoryArg(cmd)
	if err != nil {
		return err
	}

	runner, opts, err := NewRunner(cmd)
	if err != nil {
		return err
	}
	opts.Category = name

	titles, err := runner.Pages(ctx, opts)
	if err != nil {
		return err
	}

	return output.RenderList(m.Out(), titles, cmd.String("output"))
}

// PagesCommandBuilder constructs the cli.Command for "pages".
func PagesCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "pages",
		Usage:     "list the pages of a category",
		UsageText: "wikifreq [options] pages <category>",
		Metadata: map[string]any{
			"meta": meta,
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: PagesCommandAction,
	}
}
