package cmd

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/r-k-jonynas/chparse/pkg/consts"
	"github.com/r-k-jonynas/chparse/pkg/parser"
)

// fmtCmd creates a CLI command for formatting SQL files. It works like gofmt:
// individual files or entire directory trees are formatted, either to
// stdout or in place.
//
// Path handling:
//   - File paths: Format the specified SQL file directly
//   - Directory paths: Recursively find and format all .sql files
//
// Flags:
//   - -w: Write formatted results back to source files instead of stdout
//   - -l: List files whose formatting differs instead of printing them
//
// Examples:
//
//	# Format single file to stdout
//	chparse fmt schema.sql
//
//	# Format all SQL files in directory tree in-place
//	chparse fmt -w db/
//
// Indentation, keyword case, column alignment and ON CLUSTER injection come
// from the format section of chparse.yaml. Files with syntax errors cause
// the command to fail without touching any file after them.
//
// Only comments directly above a statement survive formatting. Comments
// inside a statement or after the last one are dropped, so -w refuses to
// rewrite such files and the other modes log a warning.
func (a *app) fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List files whose formatting differs",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := requireOneArg(cmd, "path")
			if err != nil {
				return err
			}

			f := &fileFormatter{
				app:       a,
				writeBack: cmd.Bool("write"),
				list:      cmd.Bool("list"),
				writer:    cmd.Root().Writer,
			}
			return f.formatPath(path)
		},
	}
}

// fileFormatter formats SQL files for the fmt command.
type fileFormatter struct {
	*app
	writeBack bool
	list      bool
	writer    io.Writer
}

// formatPath handles formatting of either a single file or directory recursively.
func (f *fileFormatter) formatPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return f.formatDirectory(path)
	}

	return f.formatFile(path)
}

// formatDirectory recursively walks through a directory and formats all .sql
// files in lexicographical order.
func (f *fileFormatter) formatDirectory(dir string) error {
	var sqlFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			sqlFiles = append(sqlFiles, path)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	if len(sqlFiles) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", dir)
	}

	for _, sqlFile := range sqlFiles {
		if err := f.formatFile(sqlFile); err != nil {
			return errors.Wrapf(err, "failed to format file: %s", sqlFile)
		}
	}

	return nil
}

// formatFile formats a single SQL file and writes the result to the output,
// back to the file, or only lists the file when its content would change.
func (f *fileFormatter) formatFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	sql, err := f.parseSource(path, string(content))
	if err != nil {
		return err
	}

	lost, err := droppedComments(string(content), sql)
	if err != nil {
		return errors.Wrapf(err, "failed to tokenize file: %s", path)
	}
	if lost > 0 {
		if f.writeBack {
			return errors.Errorf("%s: formatting would drop %d comment(s) inside or after statements", path, lost)
		}
		f.logger.Warn("formatting drops comments", "path", path, "comments", lost)
	}

	var buf bytes.Buffer
	if err := f.config.GetFormatter().Format(&buf, sql.Statements...); err != nil {
		return errors.Wrapf(err, "failed to format SQL in file: %s", path)
	}
	if len(sql.Statements) > 0 {
		buf.WriteByte('\n')
	}

	formatted := buf.Bytes()
	changed := !bytes.Equal(content, formatted)
	f.logger.Debug("formatted file", "path", path, "statements", len(sql.Statements), "changed", changed)

	switch {
	case f.list:
		if changed {
			if _, err := io.WriteString(f.writer, path+"\n"); err != nil {
				return errors.Wrap(err, "failed to write file name to output")
			}
		}
	case f.writeBack:
		if !changed {
			return nil
		}
		if err := os.WriteFile(path, formatted, consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", path)
		}
	default:
		if _, err := f.writer.Write(formatted); err != nil {
			return errors.Wrap(err, "failed to write formatted content to output")
		}
	}

	return nil
}

// droppedComments counts the comments of src that the formatter does not
// reproduce, i.e. all comments except those leading a statement.
func droppedComments(src string, file *parser.SourceFile) (int, error) {
	tokens, err := parser.Tokenize(src)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, tok := range tokens {
		if tok.Kind == parser.TokenComment {
			total++
		}
	}
	for _, stmt := range file.Statements {
		total -= len(stmt.GetLeadingComments())
	}
	return total, nil
}
