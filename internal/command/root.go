// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/wikifreq/internal/output"
	"github.com/staranto/wikifreq/internal/pipeline"
	"github.com/staranto/wikifreq/internal/version"
)

// RootCommandAction computes and prints the word frequencies of the category
// named by the only argument.
func RootCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if cmd.Bool("version") {
		fmt.Fprintln(m.Out(), version.Version)
		return nil
	}

	if ShortCircuitTLDR(ctx, cmd) {
		return nil
	}

	name, err := categoryArg(cmd)
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}

	runner, opts, err := NewRunner(cmd)
	if err != nil {
		return err
	}
	runner.Analyzer = analyzer
	opts.Category = name

	res, err := runner.Run(ctx, opts)
	if errors.Is(err, pipeline.ErrNoPages) {
		fmt.Fprintf(m.Out(), "No pages found in Category:%s.\n", name)
		return nil
	}
	if err != nil {
		return err
	}

	report := output.NewReport(res.Category, res.Table, int(cmd.Int("top")), res.FromCache)
	return output.Render(m.Out(), report, output.Options{
		Format: cmd.String("output"),
		Color:  useColor(cmd, m),
	})
}
