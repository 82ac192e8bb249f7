package parser

import "fmt"

type (
	// PrimitiveType is a type from the primitive table, optionally with a
	// parameter list such as FixedString(16) or DateTime64(3, 'UTC').
	// Name is the canonical spelling; datetime in any case becomes DateTime.
	PrimitiveType struct {
		Span
		Name      string
		Params    []Expr
		HasParams bool
	}

	// ComplexType is a container applied to arguments. Args hold DataType
	// values, or *ColumnDefinition for Nested fields and named Tuple elements.
	ComplexType struct {
		Span
		Constructor Container
		Args        []Node
	}
)

func (*PrimitiveType) dataTypeNode() {}
func (*ComplexType) dataTypeNode()   {}

func (*PrimitiveType) Kind() NodeKind { return KindPrimitiveType }
func (*ComplexType) Kind() NodeKind   { return KindComplexType }

func (t *PrimitiveType) Children() []Node { return exprNodes(t.Params) }
func (t *ComplexType) Children() []Node   { return t.Args }

func (t *PrimitiveType) String() string {
	if !t.HasParams {
		return t.Name
	}
	return t.Name + "(" + joinNodes(t.Params, ", ") + ")"
}

func (t *ComplexType) String() string {
	return string(t.Constructor) + "(" + joinNodes(t.Args, ", ") + ")"
}

func (t *PrimitiveType) Equal(other Node) bool {
	o, ok := other.(*PrimitiveType)
	if !ok || o == nil {
		return false
	}
	return t.Name == o.Name && t.HasParams == o.HasParams && equalNodeSlices(t.Params, o.Params)
}

func (t *ComplexType) Equal(other Node) bool {
	o, ok := other.(*ComplexType)
	if !ok || o == nil {
		return false
	}
	return t.Constructor == o.Constructor && equalNodeSlices(t.Args, o.Args)
}

func (p *parser) parseDataType() (DataType, error) {
	tok := p.peek()
	if tok.Kind != TokenIdent {
		msg := "expected type" + p.after() + ", found " + tok.describe()
		return nil, newError(ErrUnknownType, p.input, tok.Span.Start, msg)
	}

	if c, ok := MatchContainer(tok.Text); ok && p.peekAt(1).Is("(") {
		return p.parseComplexType(c)
	}

	name, ok := MatchType(tok.Text)
	if !ok {
		return nil, newError(ErrUnknownType, p.input, tok.Span.Start, fmt.Sprintf("unknown type %s", tok.Text))
	}
	p.advance()

	typ := &PrimitiveType{Name: name}
	if p.acceptOp("(") {
		typ.HasParams = true
		if !p.isOp(")") {
			params, err := p.parseExpressionList()
			if err != nil {
				return nil, err
			}
			typ.Params = params
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
	}
	typ.Span = p.span(tok.Span.Start)
	return typ, nil
}

func (p *parser) parseComplexType(c Container) (DataType, error) {
	start := p.advance().Span.Start
	p.advance()

	typ := &ComplexType{Constructor: c}
	var err error
	switch c {
	case ContainerArray, ContainerNullable, ContainerLowCardinality:
		typ.Args, err = p.parseTypeArgs(1)
	case ContainerMap:
		typ.Args, err = p.parseTypeArgs(2)
	case ContainerTuple:
		typ.Args, err = p.parseTupleElements()
	case ContainerNested:
		typ.Args, err = p.parseNestedFields()
	}
	if err != nil {
		return nil, err
	}

	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	typ.Span = p.span(start)
	return typ, nil
}

// parseTypeArgs parses exactly n comma separated types.
func (p *parser) parseTypeArgs(n int) ([]Node, error) {
	args := make([]Node, 0, n)
	for i := range n {
		if i > 0 {
			if err := p.expectOp(","); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// parseTupleElements parses zero or more Tuple elements. An element is named
// when its first identifier is followed by another identifier.
func (p *parser) parseTupleElements() ([]Node, error) {
	var elems []Node
	for !p.isOp(")") {
		if len(elems) > 0 {
			if err := p.expectOp(","); err != nil {
				return nil, err
			}
		}

		var (
			elem Node
			err  error
		)
		if p.peek().Kind == TokenIdent && p.peekAt(1).Kind == TokenIdent {
			elem, err = p.parseColumnDefinition()
		} else {
			elem, err = p.parseDataType()
		}
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	return elems, nil
}

func (p *parser) parseNestedFields() ([]Node, error) {
	var fields []Node
	for {
		field, err := p.parseColumnDefinition()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		if !p.acceptOp(",") {
			return fields, nil
		}
	}
}
