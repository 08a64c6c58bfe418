// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"

	"github.com/staranto/wikifreq/internal/config"
	"github.com/staranto/wikifreq/internal/freq"
)

// Formats lists the accepted --output values.
var Formats = []string{"text", "json", "yaml", "table"}

// EmptyMessage is printed in place of rows when there are no counts.
const EmptyMessage = "No frequencies to display."

// Report is what gets rendered.
type Report struct {
	Category  string       `json:"category" yaml:"category"`
	Top       int          `json:"top" yaml:"top"`
	FromCache bool         `json:"from_cache" yaml:"from_cache"`
	Counts    []freq.Count `json:"counts" yaml:"counts"`
}

// Options controls rendering.
type Options struct {
	Format string
	Color  bool
}

// NewReport takes the top n entries of t.
func NewReport(category string, t *freq.Table, n int, fromCache bool) Report {
	return Report{Category: category, Top: n, FromCache: fromCache, Counts: t.Top(n)}
}

// Title is the heading line of the text and table formats.
func (r Report) Title() string {
	return fmt.Sprintf("--- Top %d Cumulative Non-Common Word Frequencies for Category:%s ---", r.Top, r.Category)
}

// Render writes r to w in opts.Format. A nil w means stdout.
func Render(w io.Writer, r Report, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	log.Debugf("rendering %d counts as %s", len(r.Counts), opts.Format)

	switch opts.Format {
	case "", "text":
		return TextWriter(w, r, opts.Color)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		out, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "table":
		return TableWriter(w, r, opts.Color)
	default:
		return fmt.Errorf("unknown output format %q (want one of %v)", opts.Format, Formats)
	}
}

// ValidFormat reports whether f is an accepted format.
func ValidFormat(f string) bool {
	return slices.Contains(Formats, f)
}

// TextWriter prints the title and then one "word: count" line per entry.
func TextWriter(w io.Writer, r Report, color bool) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title(r, color)); err != nil {
		return err
	}

	if len(r.Counts) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	for _, c := range r.Counts {
		if _, err := fmt.Fprintf(w, "%s: %d\n", c.Word, c.Count); err != nil {
			return err
		}
	}
	return nil
}

// TableWriter renders the counts as a ranked table.
func TableWriter(w io.Writer, r Report, color bool) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title(r, color)); err != nil {
		return err
	}

	if len(r.Counts) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		numberStyle  = cellStyle.Align(lipgloss.Right)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
		numberStyle = numberStyle.Foreground(lipgloss.Color(evenColor))
	}

	rows := make([][]string, 0, len(r.Counts))
	for i, c := range r.Counts {
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Word, strconv.Itoa(c.Count)})
	}

	pad, _ := config.GetInt("padding", 2)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case col != 1:
				style = numberStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers("#", "WORD", "COUNT").
		BorderHeader(false).
		Rows(rows...)

	_, err := fmt.Fprintln(w, t)
	return err
}

func title(r Report, color bool) string {
	if !color {
		return r.Title()
	}
	headerColor, _, _ := getColors("colors")
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(headerColor)).Render(r.Title())
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
