package format

import (
	"strings"

	"github.com/r-k-jonynas/chparse/pkg/parser"
)

// selectLines formats a SELECT query, one clause per line. Subqueries are
// indented one level inside their parentheses.
func (f *Formatter) selectLines(stmt *parser.SelectStmt) []string {
	var lines []string

	if len(stmt.With) > 0 {
		lines = append(lines, f.keyword("WITH"))
		lines = append(lines, f.indentLines(f.withItems(stmt.With), 1)...)
	}

	lines = append(lines, f.projection(stmt.Projection)...)

	if stmt.From != nil {
		if stmt.From.Subquery != nil {
			lines = append(lines, f.keyword("FROM")+" (")
			lines = append(lines, f.indentLines(f.selectLines(stmt.From.Subquery), 1)...)
			lines = append(lines, ")")
		} else {
			lines = append(lines, f.keyword("FROM")+" "+stmt.From.Table.String())
		}
	}

	if stmt.Where != nil {
		lines = append(lines, f.keyword("WHERE")+" "+f.expr(stmt.Where))
	}

	if len(stmt.GroupBy) > 0 {
		lines = append(lines, f.keyword("GROUP BY")+" "+f.exprList(stmt.GroupBy))
	}

	if len(stmt.OrderBy) > 0 {
		items := make([]string, 0, len(stmt.OrderBy))
		for _, item := range stmt.OrderBy {
			s := f.expr(item.Expr)
			if item.Direction != "" {
				s += " " + f.keyword(item.Direction)
			}
			items = append(items, s)
		}
		lines = append(lines, f.keyword("ORDER BY")+" "+strings.Join(items, ", "))
	}

	if stmt.Limit != nil {
		lines = append(lines, f.keyword("LIMIT")+" "+stmt.Limit.Text)
	}

	return lines
}

// withItems formats CTEs across several lines and CSEs on one line each.
func (f *Formatter) withItems(items []parser.WithItem) []string {
	var lines []string
	for i, item := range items {
		var itemLines []string
		switch item := item.(type) {
		case *parser.Cte:
			itemLines = append(itemLines, item.Name.Name+" "+f.keyword("AS")+" (")
			itemLines = append(itemLines, f.indentLines(f.selectLines(item.Query), 1)...)
			itemLines = append(itemLines, ")")
		case *parser.Cse:
			itemLines = append(itemLines, f.expr(item.Expr)+" "+f.keyword("AS")+" "+item.Name.Name)
		}
		if i < len(items)-1 {
			itemLines[len(itemLines)-1] += ","
		}
		lines = append(lines, itemLines...)
	}
	return lines
}

// projection keeps a single item on the SELECT line and puts several items
// on their own indented lines.
func (f *Formatter) projection(items []parser.Node) []string {
	columns := make([]string, 0, len(items))
	for _, item := range items {
		switch item := item.(type) {
		case *parser.AliasedExpr:
			columns = append(columns, f.expr(item.Expr)+" "+f.keyword("AS")+" "+item.Alias.Name)
		case parser.Expr:
			columns = append(columns, f.expr(item))
		default:
			columns = append(columns, item.String())
		}
	}

	selectLine := f.keyword("SELECT")
	if len(columns) == 1 {
		return []string{selectLine + " " + columns[0]}
	}
	return append([]string{selectLine}, f.indentLines(commaLines(columns), 1)...)
}
