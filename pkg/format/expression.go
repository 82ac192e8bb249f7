package format

import (
	"strings"

	"github.com/r-k-jonynas/chparse/pkg/parser"
)

// expr formats an expression on a single line.
func (f *Formatter) expr(e parser.Expr) string {
	switch e := e.(type) {
	case *parser.BinaryExpr:
		return f.expr(e.Left) + " " + f.keyword(e.Op) + " " + f.expr(e.Right)
	case *parser.UnaryExpr:
		operand := f.expr(e.Operand)
		if e.Op == "NOT" {
			return f.keyword("NOT") + " " + operand
		}
		if strings.HasPrefix(operand, "-") || strings.HasPrefix(operand, "+") {
			return e.Op + " " + operand
		}
		return e.Op + operand
	case *parser.FunctionCall:
		return e.Name.Name + "(" + f.args(e.Args) + ")"
	case *parser.Lambda:
		return f.lambda(e)
	case *parser.Cast:
		if e.Postfix {
			return f.expr(e.Expr) + "::" + f.dataType(e.Type)
		}
		return f.keyword("CAST") + "(" + f.expr(e.Expr) + " " + f.keyword("AS") + " " + f.dataType(e.Type) + ")"
	case *parser.Interval:
		return f.keyword("INTERVAL") + " " + e.Value.Text + " " + e.Unit.Name
	case *parser.Array:
		return "[" + f.exprList(e.Elements) + "]"
	case *parser.Parenthesized:
		if e.Query != nil {
			return "(" + joinInline(f.selectLines(e.Query)) + ")"
		}
		return "(" + f.exprList(e.Exprs) + ")"
	default:
		return e.String()
	}
}

func (f *Formatter) exprList(exprs []parser.Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, f.expr(e))
	}
	return strings.Join(parts, ", ")
}

// args formats function arguments, which may include a wildcard.
func (f *Formatter) args(args []parser.Node) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if e, ok := arg.(parser.Expr); ok {
			parts = append(parts, f.expr(e))
			continue
		}
		parts = append(parts, arg.String())
	}
	return strings.Join(parts, ", ")
}

func (f *Formatter) lambda(l *parser.Lambda) string {
	params := make([]string, 0, len(l.Params))
	for _, p := range l.Params {
		params = append(params, p.Name)
	}
	head := strings.Join(params, ", ")
	if l.Parenthesized {
		head = "(" + head + ")"
	}
	return head + " -> " + f.expr(l.Body)
}

// dataType formats a type reference. Type names keep their canonical case.
func (f *Formatter) dataType(t parser.DataType) string {
	switch t := t.(type) {
	case *parser.PrimitiveType:
		if !t.HasParams {
			return t.Name
		}
		return t.Name + "(" + f.exprList(t.Params) + ")"
	case *parser.ComplexType:
		parts := make([]string, 0, len(t.Args))
		for _, arg := range t.Args {
			switch arg := arg.(type) {
			case parser.DataType:
				parts = append(parts, f.dataType(arg))
			case *parser.ColumnDefinition:
				parts = append(parts, f.column(arg, 0))
			}
		}
		return string(t.Constructor) + "(" + strings.Join(parts, ", ") + ")"
	default:
		return t.String()
	}
}

// joinInline collapses formatted lines into one, without padding inside
// parentheses.
func joinInline(lines []string) string {
	var (
		b    strings.Builder
		prev string
	)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i > 0 && !strings.HasSuffix(prev, "(") && !strings.HasPrefix(line, ")") {
			b.WriteByte(' ')
		}
		b.WriteString(line)
		prev = line
	}
	return b.String()
}
