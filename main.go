// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"

	"github.com/staranto/wikifreq/internal/command"
	mylog "github.com/staranto/wikifreq/internal/log"
	"github.com/staranto/wikifreq/internal/version"
)

func main() {
	os.Exit(realMain(os.Args))
}

func realMain(args []string) int {
	mylog.InitLogger()

	// Without a category the help text is shown, but the run still fails.
	noCategory := len(args) < 2
	if noCategory {
		fmt.Fprintln(os.Stderr, "No category specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v.
	for _, a := range args[1:] {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := command.InitApp(ctx, args, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		log.Debugf("run failed: %v", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if noCategory {
		return 1
	}

	return 0
}
