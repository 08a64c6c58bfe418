// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/staranto/wikifreq/internal/freq"
)

func sampleReport() Report {
	t := freq.NewTable()
	for _, w := range []string{"cat", "sat", "cat", "mat", "runs"} {
		t.Add(w, 1)
	}
	return NewReport("Big cats", t, 100, false)
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: "text"}))

	want := "\n--- Top 100 Cumulative Non-Common Word Frequencies for Category:Big cats ---\n" +
		"cat: 2\nsat: 1\nmat: 1\nruns: 1\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_TextIsDefault(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Render(&a, sampleReport(), Options{}))
	require.NoError(t, Render(&b, sampleReport(), Options{Format: "text"}))
	assert.Equal(t, a.String(), b.String())
}

func TestRender_Empty(t *testing.T) {
	r := NewReport("Nothing", freq.NewTable(), 100, false)

	for _, format := range []string{"text", "table"} {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, r, Options{Format: format}))
		assert.Equal(t,
			"\n--- Top 100 Cumulative Non-Common Word Frequencies for Category:Nothing ---\nNo frequencies to display.\n",
			buf.String(), format)
	}
}

func TestRender_TopLimitsRows(t *testing.T) {
	tb := freq.NewTable()
	for _, w := range []string{"aa", "bb", "cc", "aa"} {
		tb.Add(w, 1)
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewReport("X", tb, 2, false), Options{Format: "text"}))
	assert.Contains(t, buf.String(), "--- Top 2 ")
	assert.Contains(t, buf.String(), "aa: 2\nbb: 1\n")
	assert.NotContains(t, buf.String(), "cc")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: "json"}))

	doc := gjson.Parse(buf.String())
	assert.Equal(t, "Big cats", doc.Get("category").String())
	assert.Equal(t, int64(100), doc.Get("top").Int())
	assert.False(t, doc.Get("from_cache").Bool())
	assert.Equal(t, "cat", doc.Get("counts.0.word").String())
	assert.Equal(t, int64(2), doc.Get("counts.0.count").Int())
	assert.Equal(t, int64(4), doc.Get("counts.#").Int())
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), Options{Format: "yaml"}))

	var back Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sampleReport(), back)
}

func TestRender_Table(t *testing.T) {
	for _, color := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, sampleReport(), Options{Format: "table", Color: color}))

		out := buf.String()
		assert.Contains(t, out, "Cumulative Non-Common Word Frequencies")
		for _, s := range []string{"WORD", "COUNT", "cat", "runs"} {
			assert.Contains(t, out, s)
		}
		catLine := lineContaining(out, "cat")
		assert.Contains(t, catLine, "2")
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, sampleReport(), Options{Format: "xml"})
	assert.ErrorContains(t, err, "unknown output format")
}

func TestValidFormat(t *testing.T) {
	for _, f := range Formats {
		assert.True(t, ValidFormat(f))
	}
	assert.False(t, ValidFormat("raw"))
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.Equal(t, "#f6be00", header)
	assert.Equal(t, "#ffffff", even)
	assert.Equal(t, "#00c8f0", odd)
}

func lineContaining(s, sub string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, sub) && !strings.Contains(line, "Category") {
			return line
		}
	}
	return ""
}
