package format

import (
	"strings"

	"github.com/r-k-jonynas/chparse/pkg/parser"
)

// insert formats an INSERT statement. The target goes on the first line and
// the data source on the following lines.
func (f *Formatter) insert(stmt *parser.InsertStmt) string {
	header := f.keyword("INSERT INTO") + " " + stmt.Table.String()
	if len(stmt.Columns) > 0 {
		cols := make([]string, 0, len(stmt.Columns))
		for _, col := range stmt.Columns {
			cols = append(cols, col.Name)
		}
		header += " (" + strings.Join(cols, ", ") + ")"
	}

	switch {
	case stmt.Query != nil:
		return strings.Join(append([]string{header}, f.selectLines(stmt.Query)...), "\n")
	case stmt.Format != nil:
		return header + " " + f.keyword("FORMAT") + " " + stmt.Format.Name
	}

	rows := make([]string, 0, len(stmt.Values))
	for _, row := range stmt.Values {
		rows = append(rows, f.expr(row))
	}
	lines := []string{header, f.keyword("VALUES")}
	lines = append(lines, f.indentLines(commaLines(rows), 1)...)
	return strings.Join(lines, "\n")
}
