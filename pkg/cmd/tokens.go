package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/r-k-jonynas/chparse/pkg/parser"
)

// tokensCmd creates a CLI command that prints the token stream of a SQL
// file, one token per line as start-end, kind and quoted text.
//
// Whitespace and comments are skipped unless --trivia is given.
//
// Examples:
//
//	chparse tokens schema.sql
//	chparse tokens --trivia schema.sql
func (a *app) tokensCmd() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "Print the tokens of a SQL file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "trivia",
				Usage: "include whitespace and comment tokens",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := requireOneArg(cmd, "file")
			if err != nil {
				return err
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "failed to read file: %s", path)
			}

			tokens, err := parser.Tokenize(string(content))
			if err != nil {
				return errors.Wrapf(err, "failed to tokenize file: %s", path)
			}

			trivia := cmd.Bool("trivia")
			w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 1, ' ', 0)
			count := 0
			for _, tok := range tokens {
				if tok.IsTrivia() && !trivia {
					continue
				}
				fmt.Fprintf(w, "%d-%d\t%s\t%q\n", tok.Span.Start, tok.Span.End, tok.Kind, tok.Text)
				count++
			}
			a.logger.Debug("tokenized file", "path", path, "tokens", count)

			return errors.Wrap(w.Flush(), "failed to write tokens")
		},
	}
}
