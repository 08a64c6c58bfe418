// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "# wikifreq\n\n" +
	"## Description\n\n" +
	"Count words across a category.\nCaches results.\n\n" +
	"## Quick examples\n\n" +
	"```sh\n" +
	"# Top words of a category\n" +
	"wikifreq   \"Large language models\"\n" +
	"\n" +
	"wikifreq --no-cache Cats\n" +
	"```\n"

func TestPageName(t *testing.T) {
	assert.Equal(t, "wikifreq", pageName("wikifreq"))
	assert.Equal(t, "wikifreq-pages", pageName("pages"))
}

func TestExtractTitleAndShortDesc(t *testing.T) {
	title, short := extractTitleAndShortDesc(sampleDoc)
	assert.Equal(t, "wikifreq", title)
	assert.Equal(t, "Count words across a category. Caches results.", short)

	title, short = extractTitleAndShortDesc("# only a title\n")
	assert.Equal(t, "only a title", title)
	assert.Equal(t, "only a title.", short)
}

func TestExtractQuickExamples(t *testing.T) {
	exs := extractQuickExamples(sampleDoc)
	assert.Equal(t, []example{
		{Desc: "Top words of a category", Cmd: `wikifreq "Large language models"`},
		{Desc: "Example", Cmd: "wikifreq --no-cache Cats"},
	}, exs)

	assert.Nil(t, extractQuickExamples("# nothing here\n"))
}

func TestBuildTLDR(t *testing.T) {
	got := buildTLDR("wikifreq-pages", "pages", "List pages.", nil)
	assert.Equal(t, "# wikifreq-pages\n\n> List pages.\n> More information: https://github.com/staranto/wikifreq.\n\n"+
		"- Show help for the command:\n\n`wikifreq pages --help`\n", got)

	got = buildTLDR("wikifreq", "", "", []example{{Desc: "Run", Cmd: "wikifreq Cats"}})
	assert.Contains(t, got, "> wikifreq\n")
	assert.Contains(t, got, "- Run:\n\n`wikifreq Cats`\n")
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	cmds := filepath.Join(root, "docs", "commands")
	require.NoError(t, os.MkdirAll(cmds, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cmds, "wikifreq.md"), []byte(sampleDoc), 0o644))

	n, err := generate(root, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	man, err := os.ReadFile(filepath.Join(root, "docs", "man", "share", "man1", "wikifreq.1"))
	require.NoError(t, err)
	assert.NotEmpty(t, man)

	tldr, err := os.ReadFile(filepath.Join(root, "docs", "tldr", "wikifreq.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "`wikifreq --no-cache Cats`")

	_, err = generate(t.TempDir(), true)
	assert.Error(t, err)
}

func TestWriteFileIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, writeFileIfChanged(path, []byte("a\n"), true))
	info1, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, writeFileIfChanged(path, []byte("a"), true))
	b, _ := os.ReadFile(path)
	assert.Equal(t, "a\n", string(b), "whitespace-only change is skipped")
	info2, _ := os.Stat(path)
	assert.Equal(t, info1.ModTime(), info2.ModTime())

	require.NoError(t, writeFileIfChanged(path, []byte("b"), false))
	b, _ = os.ReadFile(path)
	assert.Equal(t, "b", string(b))
}
