// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"
)

// RenderList writes page titles to w in format. Text prints one per line.
func RenderList(w io.Writer, titles []string, format string) error {
	if w == nil {
		w = os.Stdout
	}
	if titles == nil {
		titles = []string{}
	}

	switch format {
	case "", "text":
		for _, t := range titles {
			if _, err := fmt.Fprintln(w, t); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(titles)
	case "yaml":
		out, err := yaml.Marshal(titles)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "table":
		rows := make([][]string, 0, len(titles))
		for i, t := range titles {
			rows = append(rows, []string{strconv.Itoa(i + 1), t})
		}
		tbl := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderHeader(false).
			Headers("#", "TITLE").
			Rows(rows...)
		_, err := fmt.Fprintln(w, tbl)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want one of %v)", format, Formats)
	}
}
