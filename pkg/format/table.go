package format

import (
	"strings"

	"github.com/r-k-jonynas/chparse/pkg/parser"
)

// createTable formats a CREATE TABLE statement with one column per line and
// one clause per line after ENGINE.
func (f *Formatter) createTable(stmt *parser.CreateTableStmt) string {
	lines := make([]string, 0, len(stmt.Columns)+len(stmt.Clauses)+3)

	headerParts := []string{f.keyword("CREATE TABLE")}
	if stmt.IfNotExists {
		headerParts = append(headerParts, f.keyword("IF NOT EXISTS"))
	}
	headerParts = append(headerParts, stmt.Name.String())

	switch {
	case stmt.OnCluster != nil:
		headerParts = append(headerParts, f.keyword("ON CLUSTER"), stmt.OnCluster.Name)
	case f.options.OnCluster != "":
		headerParts = append(headerParts, f.keyword("ON CLUSTER"), f.options.OnCluster)
	}
	lines = append(lines, strings.Join(headerParts, " ")+" (")

	var width int
	if f.options.AlignColumns {
		for _, col := range stmt.Columns {
			width = max(width, len(col.Name.Name))
		}
	}
	columns := make([]string, 0, len(stmt.Columns))
	for _, col := range stmt.Columns {
		columns = append(columns, f.column(col, width))
	}
	lines = append(lines, f.indentLines(commaLines(columns), 1)...)
	lines = append(lines, ")")

	lines = append(lines, f.engine(stmt.Engine))
	for _, clause := range stmt.Clauses {
		lines = append(lines, f.tableClause(clause))
	}

	return strings.Join(lines, "\n")
}

// column formats a column definition, padding the name to width.
func (f *Formatter) column(col *parser.ColumnDefinition, width int) string {
	parts := []string{padRight(col.Name.Name, width), f.dataType(col.Type)}

	if col.Nullability != parser.NullabilityUnspecified {
		parts = append(parts, f.keyword(col.Nullability.String()))
	}
	for _, mod := range col.Modifiers {
		parts = append(parts, f.columnModifier(mod))
	}
	return strings.Join(parts, " ")
}

func (f *Formatter) columnModifier(mod *parser.ColumnModifier) string {
	switch mod.Keyword {
	case parser.KeywordCodec:
		codecs := make([]string, 0, len(mod.Codecs))
		for _, codec := range mod.Codecs {
			if codec.HasArgs {
				codecs = append(codecs, codec.Name.Name+"("+f.exprList(codec.Args)+")")
			} else {
				codecs = append(codecs, codec.Name.Name)
			}
		}
		return f.keyword("CODEC") + "(" + strings.Join(codecs, ", ") + ")"
	case parser.KeywordComment:
		return f.keyword("COMMENT") + " " + mod.Comment.Text
	default:
		return f.keyword(string(mod.Keyword)) + " " + f.expr(mod.Expr)
	}
}

func (f *Formatter) engine(engine *parser.EngineRef) string {
	result := f.keyword("ENGINE") + " = " + engine.Name
	if engine.HasArgs {
		result += "(" + f.exprList(engine.Args) + ")"
	}
	return result
}

func (f *Formatter) tableClause(clause *parser.TableClause) string {
	switch clause.Clause {
	case parser.ClauseSettings:
		settings := make([]string, 0, len(clause.Settings))
		for _, s := range clause.Settings {
			settings = append(settings, s.Name.Name+" = "+f.expr(s.Value))
		}
		return f.keyword("SETTINGS") + " " + strings.Join(settings, ", ")
	case parser.ClauseComment:
		return f.keyword("COMMENT") + " " + clause.Comment.Text
	default:
		return f.keyword(clause.Clause.String()) + " " + f.expr(clause.Expr)
	}
}
