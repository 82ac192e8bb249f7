package parser

import (
	"strings"

	"github.com/r-k-jonynas/chparse/pkg/compare"
)

// NodeKind tags the variant of a syntax node.
type NodeKind int

const (
	KindSourceFile NodeKind = iota + 1
	KindCreateTable
	KindSelect
	KindInsert
	KindColumnDefinition
	KindColumnModifier
	KindCodec
	KindBinaryExpr
	KindUnaryExpr
	KindFunctionCall
	KindLambda
	KindCast
	KindInterval
	KindArray
	KindParenthesized
	KindIdentifier
	KindQualifiedName
	KindNumber
	KindStringLiteral
	KindPrimitiveType
	KindComplexType
	KindEngineRef
	KindTableClause
	KindSettingPair
	KindCte
	KindCse
	KindWildcard
	KindAliasedExpr
	KindOrderByItem
	KindFromClause
)

var nodeKindNames = map[NodeKind]string{
	KindSourceFile:       "SourceFile",
	KindCreateTable:      "CreateTable",
	KindSelect:           "Select",
	KindInsert:           "Insert",
	KindColumnDefinition: "ColumnDefinition",
	KindColumnModifier:   "ColumnModifier",
	KindCodec:            "Codec",
	KindBinaryExpr:       "BinaryExpr",
	KindUnaryExpr:        "UnaryExpr",
	KindFunctionCall:     "FunctionCall",
	KindLambda:           "Lambda",
	KindCast:             "Cast",
	KindInterval:         "Interval",
	KindArray:            "Array",
	KindParenthesized:    "Parenthesized",
	KindIdentifier:       "Identifier",
	KindQualifiedName:    "QualifiedName",
	KindNumber:           "Number",
	KindStringLiteral:    "StringLiteral",
	KindPrimitiveType:    "PrimitiveType",
	KindComplexType:      "ComplexType",
	KindEngineRef:        "EngineRef",
	KindTableClause:      "TableClause",
	KindSettingPair:      "SettingPair",
	KindCte:              "Cte",
	KindCse:              "Cse",
	KindWildcard:         "Wildcard",
	KindAliasedExpr:      "AliasedExpr",
	KindOrderByItem:      "OrderByItem",
	KindFromClause:       "FromClause",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type (
	// Node is implemented by every syntax tree node. Nodes are immutable once
	// built and own their children exclusively.
	Node interface {
		// Bounds returns the input range covered by the node.
		Bounds() Span
		Kind() NodeKind
		// Children returns the direct child nodes in source order.
		Children() []Node
		// String renders the node as canonical SQL.
		String() string
		// Equal reports structural equality, ignoring spans and comments.
		Equal(other Node) bool
	}

	// Expr is an expression node.
	Expr interface {
		Node
		exprNode()
	}

	// DataType is a type reference node.
	DataType interface {
		Node
		dataTypeNode()
	}

	// Statement is a top-level statement node.
	Statement interface {
		Node
		CommentAccessor
		statementNode()
	}

	// SourceFile is the root of a parse: the statements of one input in order.
	SourceFile struct {
		Span
		Statements []Statement
		// Notes lists how ambiguous constructs were resolved.
		Notes []Note
	}

	// Identifier is a bare name.
	Identifier struct {
		Span
		Name string
	}

	// QualifiedName is a table reference, optionally prefixed by a database.
	QualifiedName struct {
		Span
		Database *Identifier
		Name     *Identifier
	}

	// Number is a numeric literal kept in its source spelling.
	Number struct {
		Span
		Text string
	}

	// StringLiteral is a quoted string. Text keeps the quotes and escapes.
	StringLiteral struct {
		Span
		Text string
	}

	// Wildcard is the bare '*' of a projection or function argument list.
	Wildcard struct {
		Span
	}
)

func (*Identifier) exprNode()    {}
func (*Number) exprNode()        {}
func (*StringLiteral) exprNode() {}

func (*SourceFile) Kind() NodeKind    { return KindSourceFile }
func (*Identifier) Kind() NodeKind    { return KindIdentifier }
func (*QualifiedName) Kind() NodeKind { return KindQualifiedName }
func (*Number) Kind() NodeKind        { return KindNumber }
func (*StringLiteral) Kind() NodeKind { return KindStringLiteral }
func (*Wildcard) Kind() NodeKind      { return KindWildcard }

func (s *SourceFile) Children() []Node {
	children := make([]Node, 0, len(s.Statements))
	for _, stmt := range s.Statements {
		children = append(children, stmt)
	}
	return children
}

func (*Identifier) Children() []Node    { return nil }
func (*Number) Children() []Node        { return nil }
func (*StringLiteral) Children() []Node { return nil }
func (*Wildcard) Children() []Node      { return nil }

func (q *QualifiedName) Children() []Node {
	if q.Database != nil {
		return []Node{q.Database, q.Name}
	}
	return []Node{q.Name}
}

func (s *SourceFile) String() string {
	stmts := make([]string, 0, len(s.Statements))
	for _, stmt := range s.Statements {
		stmts = append(stmts, stmt.String()+";")
	}
	return strings.Join(stmts, "\n")
}

func (i *Identifier) String() string    { return i.Name }
func (n *Number) String() string        { return n.Text }
func (s *StringLiteral) String() string { return s.Text }
func (*Wildcard) String() string        { return "*" }

func (q *QualifiedName) String() string {
	if q.Database != nil {
		return q.Database.Name + "." + q.Name.Name
	}
	return q.Name.Name
}

// Value returns the string contents with quotes removed and escapes resolved.
func (s *StringLiteral) Value() string {
	if len(s.Text) < 2 {
		return s.Text
	}
	body := s.Text[1 : len(s.Text)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func (s *SourceFile) Equal(other Node) bool {
	o, ok := other.(*SourceFile)
	if !ok || o == nil {
		return false
	}
	return equalNodeSlices(s.Statements, o.Statements)
}

func (i *Identifier) Equal(other Node) bool {
	o, ok := other.(*Identifier)
	return ok && o != nil && i.Name == o.Name
}

func (q *QualifiedName) Equal(other Node) bool {
	o, ok := other.(*QualifiedName)
	if !ok || o == nil {
		return false
	}
	return compare.PointersWithEqual(q.Database, o.Database, equalIdentifiers) &&
		compare.PointersWithEqual(q.Name, o.Name, equalIdentifiers)
}

func (n *Number) Equal(other Node) bool {
	o, ok := other.(*Number)
	return ok && o != nil && n.Text == o.Text
}

func (s *StringLiteral) Equal(other Node) bool {
	o, ok := other.(*StringLiteral)
	return ok && o != nil && s.Value() == o.Value()
}

func (*Wildcard) Equal(other Node) bool {
	o, ok := other.(*Wildcard)
	return ok && o != nil
}

// equalNodes compares two possibly-nil nodes structurally.
func equalNodes[T Node](a, b T) bool {
	return compare.Optional(a, b, func(x, y T) bool { return x.Equal(y) })
}

func equalNodeSlices[T Node](a, b []T) bool {
	return compare.Slices(a, b, equalNodes[T])
}

func equalIdentifiers(a, b *Identifier) bool {
	return a.Equal(b)
}

// Walk visits n and its descendants depth-first in source order. Children
// of a node are skipped when fn returns false for it.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}
