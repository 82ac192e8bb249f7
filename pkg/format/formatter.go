package format

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/r-k-jonynas/chparse/pkg/parser"
)

type (
	// FormatterOptions controls formatting behavior
	FormatterOptions struct {
		// IndentSize specifies the number of spaces for each indent level
		IndentSize int
		// UppercaseKeywords whether to uppercase SQL keywords
		UppercaseKeywords bool
		// AlignColumns whether to align column definitions in tables
		AlignColumns bool
		// OnCluster, when set, adds ON CLUSTER to every CREATE TABLE that has none.
		OnCluster string
	}

	// Formatter handles SQL statement formatting with configurable options
	Formatter struct {
		options FormatterOptions
	}
)

// Defaults are the standard formatting options.
var Defaults = FormatterOptions{
	IndentSize:        4,
	UppercaseKeywords: true,
	AlignColumns:      true,
}

// New creates a new Formatter with the specified options
func New(options FormatterOptions) *Formatter {
	if options.IndentSize <= 0 {
		options.IndentSize = Defaults.IndentSize
	}
	return &Formatter{options: options}
}

// Format writes the statements to w using the given options.
func Format(w io.Writer, options FormatterOptions, stmts ...parser.Statement) error {
	return New(options).Format(w, stmts...)
}

// FormatSQL writes every statement of a parsed source file to w.
func FormatSQL(w io.Writer, options FormatterOptions, file *parser.SourceFile) error {
	if file == nil {
		return nil
	}
	return Format(w, options, file.Statements...)
}

// Format writes the statements to w, separated by blank lines. Each statement
// is terminated by ';' and preceded by its leading comments.
func (f *Formatter) Format(w io.Writer, stmts ...parser.Statement) error {
	for i, stmt := range stmts {
		var b strings.Builder
		if i > 0 {
			b.WriteString("\n\n")
		}
		for _, comment := range stmt.GetLeadingComments() {
			b.WriteString(comment + "\n")
		}
		b.WriteString(f.Statement(stmt) + ";")

		if _, err := io.WriteString(w, b.String()); err != nil {
			return errors.Wrap(err, "failed to write formatted statement")
		}
	}
	return nil
}

// Statement formats a single statement without the terminating ';'.
func (f *Formatter) Statement(stmt parser.Statement) string {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return f.createTable(s)
	case *parser.SelectStmt:
		return strings.Join(f.selectLines(s), "\n")
	case *parser.InsertStmt:
		return f.insert(s)
	default:
		return ""
	}
}

// keyword formats a keyword according to the formatter options
func (f *Formatter) keyword(kw string) string {
	if f.options.UppercaseKeywords {
		return strings.ToUpper(kw)
	}
	return strings.ToLower(kw)
}

// indent returns the specified number of indent levels as spaces
func (f *Formatter) indent(level int) string {
	return strings.Repeat(" ", level*f.options.IndentSize)
}

// indentLines prefixes every line with the given indent level.
func (f *Formatter) indentLines(lines []string, level int) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, f.indent(level)+line)
	}
	return out
}

// commaLines appends a comma to every line but the last.
func commaLines(lines []string) []string {
	for i := range lines[:max(len(lines)-1, 0)] {
		lines[i] += ","
	}
	return lines
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
