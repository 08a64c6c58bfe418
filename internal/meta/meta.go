// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"
	"io"
	"os"

	"github.com/staranto/wikifreq/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
	// Stdout receives rendered results. Nil means os.Stdout.
	Stdout io.Writer
}

// Out returns the writer results go to.
func (m Meta) Out() io.Writer {
	if m.Stdout == nil {
		return os.Stdout
	}
	return m.Stdout
}

// IsStdout reports whether results go to the process stdout.
func (m Meta) IsStdout() bool {
	return m.Stdout == nil || m.Stdout == os.Stdout
}
