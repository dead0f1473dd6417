// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command quillc drives the front end's three stages from the command
// line: lex, parse, and lower. Each subcommand reads one program from
// stdin and writes to stdout one line per token (lex) or one multi-line
// tree dump per statement (parse, lower), followed by any diagnostics on
// stderr.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/dump"
	"github.com/quill-lang/quill/internal/hir"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/quill-lang/quill/internal/token"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quillc",
		Short:         "quillc drives the lexer, parser, and lowering pass over a program read from stdin",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newLexCmd(), newParseCmd(), newLowerCmd())
	return root
}

func readStdin() ([]byte, error) {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.Wrap(err, "reading program from stdin")
	}
	return src, nil
}

// reportAndExitCode prints every recorded diagnostic to stderr and
// returns the process exit code the caller should use: 0 if clean, 1 if
// diagnostics were reported but none were errors, 2 if any were errors.
func reportAndExitCode(diags *diag.Bag) int {
	entries := diags.Entries()
	for _, d := range entries {
		fmt.Fprintln(os.Stderr, d.String())
	}
	switch {
	case diags.HasErrors():
		return 2
	case len(entries) > 0:
		return 1
	default:
		return 0
	}
}

func newLexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex",
		Short: "tokenize a program read from stdin, one token per output line",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readStdin()
			if err != nil {
				return err
			}
			var diags diag.Bag
			l := lexer.New(lexer.NewByteReader(src))
			for {
				tok := l.Next(&diags)
				dump.Token(cmd.OutOrStdout(), tok)
				fmt.Fprintln(cmd.OutOrStdout())
				if tok.Kind == token.EOF {
					break
				}
			}
			os.Exit(reportAndExitCode(&diags))
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse",
		Short: "parse a program read from stdin, one AST dump per statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readStdin()
			if err != nil {
				return err
			}
			var diags diag.Bag
			p := parser.New(lexer.NewByteReader(src), &diags)
			for {
				stmt, more := p.NextStmt()
				if !more {
					break
				}
				dump.Stmt(cmd.OutOrStdout(), stmt)
			}
			os.Exit(reportAndExitCode(&diags))
			return nil
		},
	}
}

func newLowerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lower",
		Short: "parse and lower a program read from stdin, one HIR dump per statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readStdin()
			if err != nil {
				return err
			}
			var diags diag.Bag
			p := parser.New(lexer.NewByteReader(src), &diags)
			lowerer := hir.New(&diags)
			for {
				stmt, more := p.NextStmt()
				if !more {
					break
				}
				dump.Expr(cmd.OutOrStdout(), lowerer.LowerStmt(stmt))
			}
			os.Exit(reportAndExitCode(&diags))
			return nil
		},
	}
}
