// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/wikifreq/internal/meta"
)

const bashCompletionScript = `# bash completion for wikifreq
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_wikifreq()
{
    local cur prev
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    local opts="--api-url --cache-dir --cache-ttl --color -c --no-color --no-cache --output -o --stopwords --timeout --top -n --user-agent --tldr --help --version"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml table" -- "$cur") )
            return 0
            ;;
        --stopwords|--cache-dir)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "pages completion" -- "$cur") )
    fi
    return 0
}

complete -F _wikifreq wikifreq
`

const zshCompletionScript = `#compdef wikifreq

_wikifreq() {
  local -a cmds
  cmds=(
    'pages:list the pages of a category'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '--api-url[MediaWiki API endpoint]:url'
  '--cache-dir[cache directory]:dir:_directories'
  '--cache-ttl[cache time-to-live in seconds]:seconds'
  '(-c --color --no-color)'{-c,--color}'[enable colored text]'
  '(-c --color --no-color)--no-color[disable colored text]'
  '--no-cache[bypass all caches]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml table)'
  '--stopwords[stop word file]:file:_files'
  '--timeout[request timeout]:duration'
  '(-n --top)'{-n,--top}'[number of words to show]:count'
  '--user-agent[User-Agent header]:agent'
  '--tldr[show tldr page]'
  )

  case $words[2] in
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    pages)
      _arguments -C $common '1:category'
      ;;
    *)
      _arguments -C $common '1: :->first'
      if [[ $state == first ]]; then
        _describe -t commands 'wikifreq commands' cmds
      fi
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _wikifreq wikifreq
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	out := GetMeta(cmd).Out()

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(out, bashCompletionScript)
	case "zsh":
		fmt.Fprint(out, zshCompletionScript)
	case "":
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(out, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(out, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: wikifreq completion [bash|zsh]")
		}
	default:
		return fmt.Errorf("unsupported shell %q; usage: wikifreq completion [bash|zsh]", shell)
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "wikifreq completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
