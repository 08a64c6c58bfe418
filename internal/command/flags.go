// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/wikifreq/internal/api"
)

const (
	defaultCacheTTL = 86400
	defaultTop      = 100
)

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

func newVersionFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "version",
		Aliases:     []string{"v"},
		Usage:       "wikifreq version info",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the flags shared by the root command and its
// subcommands. source is the YAML config file backing their defaults.
func NewGlobalFlags(source string) (flags []cli.Flag) {
	src := altsrc.StringSourcer(source)

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "api-url",
			Usage: "MediaWiki API endpoint",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WIKIFREQ_API_URL"),
				yaml.YAML("api.url", src),
			),
			Value: api.DefaultEndpoint,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, URLValidator)
			},
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "directory holding cache files (default .wiki_cache)",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("cache.dir", src),
			),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.IntFlag{
			Name:  "cache-ttl",
			Usage: "cache time-to-live in seconds",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WIKIFREQ_CACHE_TTL"),
				yaml.YAML("cache.ttl", src),
			),
			Value: defaultCacheTTL,
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output (default when stdout is a terminal)",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("color", src),
			),
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "bypass all caches and force API fetches and reprocessing",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WIKIFREQ_NO_CACHE"),
			),
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, table)",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("output", src),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:  "stopwords",
			Usage: "file of stop words, one per line, replacing the built-in English list",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("stopwords", src),
			),
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "timeout for each API request",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("api.timeout", src),
			),
			Value: api.DefaultTimeout,
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "number of words to show",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("top", src),
			),
			Value: defaultTop,
		},
		&cli.StringFlag{
			Name:  "user-agent",
			Usage: "User-Agent header sent with every request",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WIKIFREQ_USER_AGENT"),
				yaml.YAML("api.user_agent", src),
			),
			Value: api.DefaultUserAgent,
		},
	}

	return
}

// cacheTTL converts the --cache-ttl seconds into a duration.
func cacheTTL(cmd *cli.Command) time.Duration {
	return time.Duration(cmd.Int("cache-ttl")) * time.Second
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
