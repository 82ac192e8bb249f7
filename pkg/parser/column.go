package parser

import "strings"

// Nullability is the optional NULL / NOT NULL constraint of a column.
type Nullability int

const (
	NullabilityUnspecified Nullability = iota
	NullabilityNull
	NullabilityNotNull
)

func (n Nullability) String() string {
	switch n {
	case NullabilityNull:
		return "NULL"
	case NullabilityNotNull:
		return "NOT NULL"
	default:
		return ""
	}
}

type (
	// ColumnDefinition represents a column in CREATE TABLE, a Nested field
	// or a named Tuple element.
	// ClickHouse syntax:
	//
	//	name Type [NULL | NOT NULL]
	//	  [DEFAULT expr | MATERIALIZED expr | EPHEMERAL expr | ALIAS expr]
	//	  [CODEC(codec, ...)] [TTL expr] [COMMENT 'text']
	//
	// Modifiers may repeat in any order.
	ColumnDefinition struct {
		Span
		Name        *Identifier
		Type        DataType
		Nullability Nullability
		Modifiers   []*ColumnModifier
	}

	// ColumnModifier is one column attribute. Keyword selects which field is
	// set: Codecs for CODEC, Comment for COMMENT and Expr otherwise.
	ColumnModifier struct {
		Span
		Keyword Keyword
		Expr    Expr
		Codecs  []*Codec
		Comment *StringLiteral
	}

	// Codec is one compression codec, such as Delta or ZSTD(3).
	Codec struct {
		Span
		Name    *Identifier
		Args    []Expr
		HasArgs bool
	}
)

func (*ColumnDefinition) Kind() NodeKind { return KindColumnDefinition }
func (*ColumnModifier) Kind() NodeKind   { return KindColumnModifier }
func (*Codec) Kind() NodeKind            { return KindCodec }

func (c *ColumnDefinition) Children() []Node {
	children := []Node{c.Name, c.Type}
	for _, mod := range c.Modifiers {
		children = append(children, mod)
	}
	return children
}

func (m *ColumnModifier) Children() []Node {
	switch {
	case m.Codecs != nil:
		children := make([]Node, 0, len(m.Codecs))
		for _, codec := range m.Codecs {
			children = append(children, codec)
		}
		return children
	case m.Comment != nil:
		return []Node{m.Comment}
	case m.Expr != nil:
		return []Node{m.Expr}
	}
	return nil
}

func (c *Codec) Children() []Node {
	return append([]Node{c.Name}, exprNodes(c.Args)...)
}

// GetDefault returns the DEFAULT, MATERIALIZED, EPHEMERAL or ALIAS modifier.
func (c *ColumnDefinition) GetDefault() *ColumnModifier {
	for _, mod := range c.Modifiers {
		switch mod.Keyword {
		case KeywordDefault, KeywordMaterialized, KeywordEphemeral, KeywordAlias:
			return mod
		}
	}
	return nil
}

// GetComment returns the column comment without quotes, if any.
func (c *ColumnDefinition) GetComment() (string, bool) {
	for _, mod := range c.Modifiers {
		if mod.Keyword == KeywordComment {
			return mod.Comment.Value(), true
		}
	}
	return "", false
}

func (c *ColumnDefinition) String() string {
	parts := []string{c.Name.String(), c.Type.String()}
	if c.Nullability != NullabilityUnspecified {
		parts = append(parts, c.Nullability.String())
	}
	for _, mod := range c.Modifiers {
		parts = append(parts, mod.String())
	}
	return strings.Join(parts, " ")
}

func (m *ColumnModifier) String() string {
	switch m.Keyword {
	case KeywordCodec:
		return "CODEC(" + joinNodes(m.Codecs, ", ") + ")"
	case KeywordComment:
		return "COMMENT " + m.Comment.String()
	default:
		return string(m.Keyword) + " " + m.Expr.String()
	}
}

func (c *Codec) String() string {
	if !c.HasArgs {
		return c.Name.String()
	}
	return c.Name.String() + "(" + joinNodes(c.Args, ", ") + ")"
}

func (c *ColumnDefinition) Equal(other Node) bool {
	o, ok := other.(*ColumnDefinition)
	if !ok || o == nil {
		return false
	}
	return c.Nullability == o.Nullability &&
		equalNodes(c.Name, o.Name) &&
		equalNodes(c.Type, o.Type) &&
		equalNodeSlices(c.Modifiers, o.Modifiers)
}

func (m *ColumnModifier) Equal(other Node) bool {
	o, ok := other.(*ColumnModifier)
	if !ok || o == nil {
		return false
	}
	return m.Keyword == o.Keyword &&
		equalNodes(m.Expr, o.Expr) &&
		equalNodeSlices(m.Codecs, o.Codecs) &&
		equalNodes(m.Comment, o.Comment)
}

func (c *Codec) Equal(other Node) bool {
	o, ok := other.(*Codec)
	if !ok || o == nil {
		return false
	}
	return c.HasArgs == o.HasArgs && equalNodes(c.Name, o.Name) && equalNodeSlices(c.Args, o.Args)
}

func (p *parser) parseColumnDefinition() (*ColumnDefinition, error) {
	start := p.peek().Span.Start
	name, err := p.parseName("column name")
	if err != nil {
		return nil, err
	}
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}

	col := &ColumnDefinition{Name: name, Type: typ}
	switch {
	case p.acceptKeyword(KeywordNull):
		col.Nullability = NullabilityNull
	case p.isKeyword(KeywordNot) && p.isKeywordAt(1, KeywordNull):
		p.advance()
		p.advance()
		col.Nullability = NullabilityNotNull
	}

	for {
		mod, err := p.parseColumnModifier()
		if err != nil {
			return nil, err
		}
		if mod == nil {
			break
		}
		col.Modifiers = append(col.Modifiers, mod)
	}

	col.Span = p.span(start)
	return col, nil
}

// parseColumnModifier returns nil when no modifier starts at the cursor.
func (p *parser) parseColumnModifier() (*ColumnModifier, error) {
	tok := p.peek()
	if tok.Kind != TokenIdent {
		return nil, nil
	}
	kw, ok := MatchKeyword(tok.Text)
	if !ok {
		return nil, nil
	}

	mod := &ColumnModifier{Keyword: kw}
	switch kw {
	case KeywordDefault, KeywordMaterialized, KeywordEphemeral, KeywordAlias, KeywordTTL:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		mod.Expr = expr
	case KeywordCodec:
		p.advance()
		codecs, err := p.parseCodecs()
		if err != nil {
			return nil, err
		}
		mod.Codecs = codecs
	case KeywordComment:
		p.advance()
		comment, err := p.parseStringLiteral("comment string")
		if err != nil {
			return nil, err
		}
		mod.Comment = comment
	default:
		return nil, nil
	}

	mod.Span = p.span(tok.Span.Start)
	return mod, nil
}

// parseCodecs parses ( codec [, codec ...] ).
func (p *parser) parseCodecs() ([]*Codec, error) {
	if err := p.expectOp("("); err != nil {
		return nil, err
	}

	var codecs []*Codec
	for {
		start := p.peek().Span.Start
		name, err := p.parseName("codec name")
		if err != nil {
			return nil, err
		}

		codec := &Codec{Name: name}
		if p.acceptOp("(") {
			codec.HasArgs = true
			if !p.isOp(")") {
				if codec.Args, err = p.parseExpressionList(); err != nil {
					return nil, err
				}
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
		}
		codec.Span = p.span(start)
		codecs = append(codecs, codec)

		if !p.acceptOp(",") {
			break
		}
	}

	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return codecs, nil
}
