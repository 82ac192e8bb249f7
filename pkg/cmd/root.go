package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/r-k-jonynas/chparse/pkg/config"
	"github.com/r-k-jonynas/chparse/pkg/consts"
	"github.com/r-k-jonynas/chparse/pkg/parser"
)

type (
	// Version describes the build of the binary.
	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}

	// app carries the state shared by all commands. It is filled by the root
	// command's Before hook.
	app struct {
		config *config.Config
		logger *slog.Logger
	}
)

// Run creates and executes the chparse CLI application with the given
// version and command-line arguments.
//
// Global Flags:
//   - --config, -c: Config file (defaults to chparse.yaml, or $CHPARSE_CONFIG)
//   - --verbose: Log at debug level, including grammar ambiguity notes
//
// Example usage:
//
//	err := Run(ctx, []string{"chparse", "fmt", "-w", "schema/"}, Version{Version: "v1.0.0"})
func Run(ctx context.Context, args []string, version Version) error {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Root().Writer, "Version:", version.Version)
		fmt.Fprintln(cmd.Root().Writer, "Commit:", version.Commit)
		fmt.Fprintln(cmd.Root().Writer, "Date:", version.Timestamp)
	}

	return NewCommand(version).Run(ctx, args)
}

// NewCommand builds the root command with all subcommands registered.
func NewCommand(version Version) *cli.Command {
	a := &app{}

	return &cli.Command{
		Name:  "chparse",
		Usage: "Parse and format ClickHouse SQL",
		Description: `chparse parses ClickHouse CREATE TABLE, SELECT and INSERT statements,
reports syntax errors with their exact position, and rewrites SQL files
in a canonical layout.`,
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the chparse config file",
				Sources: cli.EnvVars(consts.ConfigEnvVar),
				Value:   consts.DefaultConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log at debug level",
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			a.fmtCmd(),
			a.parseCmd(),
			a.tokensCmd(),
		},
	}
}

// setup installs the logger and loads the configuration. An explicitly
// requested config file must exist; the default one is optional.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: level}))

	path := cmd.String("config")
	var err error
	if cmd.IsSet("config") {
		a.config, err = config.LoadConfigFile(path)
	} else {
		a.config, err = config.Resolve(path)
	}
	if err != nil {
		return ctx, errors.Wrap(err, "failed to load config")
	}

	a.logger.Debug("loaded config", "path", path, "indent_size", a.config.Format.IndentSize)
	return ctx, nil
}

// parseSource parses src, read from path, with the configured parser options
// and reports syntax errors as path:line:column.
func (a *app) parseSource(path, src string) (*parser.SourceFile, error) {
	tree, err := parser.ParseString(src, a.config.ParserOptions(a.logger)...)
	if err == nil {
		return tree, nil
	}

	var perr *parser.Error
	if errors.As(err, &perr) {
		return nil, errors.Errorf("%s:%d:%d: %s: %s", path, perr.Line, perr.Column, perr.Kind, perr.Message)
	}
	return nil, err
}

// requireOneArg fails unless the command received exactly one argument.
func requireOneArg(cmd *cli.Command, what string) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", errors.Errorf("exactly one %s argument is required", what)
	}
	return cmd.Args().First(), nil
}
