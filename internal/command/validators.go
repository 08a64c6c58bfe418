// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
	"github.com/urfave/cli/v3"

	"github.com/staranto/wikifreq/internal/output"
)

// GlobalFlagsValidator checks flag combinations a single Validator cannot.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if n := c.Int("top"); n < 1 {
		return fmt.Errorf("--top must be at least 1, got %d", n)
	}
	if ttl := c.Int("cache-ttl"); ttl < 0 {
		return fmt.Errorf("--cache-ttl must not be negative, got %d", ttl)
	}
	if d := c.Duration("timeout"); d <= 0 {
		return fmt.Errorf("--timeout must be positive, got %s", d)
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if !output.ValidFormat(value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// URLValidator accepts absolute http and https URLs.
func URLValidator(value any) error {
	u, err := url.Parse(value.(string))
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be an http or https URL")
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

// NormalizeURL canonicalizes the API endpoint so equivalent spellings hit the
// same server path.
func NormalizeURL(raw string) (string, error) {
	n, err := purell.NormalizeURLString(raw, purell.FlagsSafe|purell.FlagRemoveDotSegments)
	if err != nil {
		return "", fmt.Errorf("failed to normalize %q: %w", raw, err)
	}
	return n, nil
}
