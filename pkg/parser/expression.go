package parser

import (
	"strings"

	"github.com/r-k-jonynas/chparse/pkg/compare"
)

type (
	// BinaryExpr is an infix operation. Every binary operator shares one
	// precedence level and associates to the left, so `a - b - c` nests as
	// `(a - b) - c`. Keyword operators are stored upper-case; IS NOT is one
	// two-word operator.
	BinaryExpr struct {
		Span
		Op    string
		Left  Expr
		Right Expr
	}

	// UnaryExpr is a prefix -, + or NOT. It binds tighter than any binary
	// operator.
	UnaryExpr struct {
		Span
		Op      string
		Operand Expr
	}

	// FunctionCall is name(args). Args hold expressions and *Wildcard.
	FunctionCall struct {
		Span
		Name *Identifier
		Args []Node
	}

	// Lambda is `x -> body` or `(x, y) -> body`.
	Lambda struct {
		Span
		Params        []*Identifier
		Parenthesized bool
		Body          Expr
	}

	// Cast is CAST(expr AS type), or expr::type when Postfix is set.
	Cast struct {
		Span
		Expr    Expr
		Type    DataType
		Postfix bool
	}

	// Interval is INTERVAL <number> <unit>.
	Interval struct {
		Span
		Value *Number
		Unit  *Identifier
	}

	// Array is an array literal [a, b, ...].
	Array struct {
		Span
		Elements []Expr
	}

	// Parenthesized is a parenthesized form: a grouping of one expression,
	// a tuple of two or more, or a subquery when Query is set.
	Parenthesized struct {
		Span
		Exprs []Expr
		Query *SelectStmt
	}
)

// binaryPrecedence lists the binary operators. They all share one level.
var binaryPrecedence = map[string]int{
	"+": 1, "-": 1, "*": 1, "/": 1, "%": 1,
	"=": 1, "!=": 1, "<": 1, ">": 1, "<=": 1, ">=": 1,
	"AND": 1, "OR": 1, "LIKE": 1, "IN": 1, "IS": 1, "IS NOT": 1,
}

const lowestPrecedence = 1

func (*BinaryExpr) exprNode()    {}
func (*UnaryExpr) exprNode()     {}
func (*FunctionCall) exprNode()  {}
func (*Lambda) exprNode()        {}
func (*Cast) exprNode()          {}
func (*Interval) exprNode()      {}
func (*Array) exprNode()         {}
func (*Parenthesized) exprNode() {}

func (*BinaryExpr) Kind() NodeKind    { return KindBinaryExpr }
func (*UnaryExpr) Kind() NodeKind     { return KindUnaryExpr }
func (*FunctionCall) Kind() NodeKind  { return KindFunctionCall }
func (*Lambda) Kind() NodeKind        { return KindLambda }
func (*Cast) Kind() NodeKind          { return KindCast }
func (*Interval) Kind() NodeKind      { return KindInterval }
func (*Array) Kind() NodeKind         { return KindArray }
func (*Parenthesized) Kind() NodeKind { return KindParenthesized }

// IsTuple reports whether the parentheses hold two or more expressions.
func (p *Parenthesized) IsTuple() bool {
	return p.Query == nil && len(p.Exprs) > 1
}

// Unparen strips grouping parentheses around a single expression.
// Tuples and subqueries are returned unchanged.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*Parenthesized)
		if !ok || p.Query != nil || len(p.Exprs) != 1 {
			return e
		}
		e = p.Exprs[0]
	}
}

func (b *BinaryExpr) Children() []Node { return []Node{b.Left, b.Right} }
func (u *UnaryExpr) Children() []Node  { return []Node{u.Operand} }
func (c *Cast) Children() []Node       { return []Node{c.Expr, c.Type} }
func (i *Interval) Children() []Node   { return []Node{i.Value, i.Unit} }
func (a *Array) Children() []Node      { return exprNodes(a.Elements) }

func (f *FunctionCall) Children() []Node {
	return append([]Node{f.Name}, f.Args...)
}

func (l *Lambda) Children() []Node {
	children := make([]Node, 0, len(l.Params)+1)
	for _, param := range l.Params {
		children = append(children, param)
	}
	return append(children, l.Body)
}

func (p *Parenthesized) Children() []Node {
	if p.Query != nil {
		return []Node{p.Query}
	}
	return exprNodes(p.Exprs)
}

func exprNodes(exprs []Expr) []Node {
	nodes := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		nodes = append(nodes, e)
	}
	return nodes
}

func (b *BinaryExpr) String() string {
	return b.Left.String() + " " + b.Op + " " + b.Right.String()
}

func (u *UnaryExpr) String() string {
	operand := u.Operand.String()
	if u.Op == "NOT" {
		return "NOT " + operand
	}
	// "- -x" must not collapse into a "--" comment.
	if strings.HasPrefix(operand, "-") || strings.HasPrefix(operand, "+") {
		return u.Op + " " + operand
	}
	return u.Op + operand
}

func (f *FunctionCall) String() string {
	return f.Name.String() + "(" + joinNodes(f.Args, ", ") + ")"
}

func (l *Lambda) String() string {
	params := make([]string, 0, len(l.Params))
	for _, param := range l.Params {
		params = append(params, param.Name)
	}
	if l.Parenthesized {
		return "(" + strings.Join(params, ", ") + ") -> " + l.Body.String()
	}
	return params[0] + " -> " + l.Body.String()
}

func (c *Cast) String() string {
	if c.Postfix {
		return c.Expr.String() + "::" + c.Type.String()
	}
	return "CAST(" + c.Expr.String() + " AS " + c.Type.String() + ")"
}

func (i *Interval) String() string {
	return "INTERVAL " + i.Value.String() + " " + i.Unit.String()
}

func (a *Array) String() string {
	return "[" + joinNodes(a.Elements, ", ") + "]"
}

func (p *Parenthesized) String() string {
	if p.Query != nil {
		return "(" + p.Query.String() + ")"
	}
	return "(" + joinNodes(p.Exprs, ", ") + ")"
}

func joinNodes[T Node](nodes []T, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, sep)
}

func (b *BinaryExpr) Equal(other Node) bool {
	o, ok := other.(*BinaryExpr)
	if !ok || o == nil {
		return false
	}
	return b.Op == o.Op && equalNodes(b.Left, o.Left) && equalNodes(b.Right, o.Right)
}

func (u *UnaryExpr) Equal(other Node) bool {
	o, ok := other.(*UnaryExpr)
	if !ok || o == nil {
		return false
	}
	return u.Op == o.Op && equalNodes(u.Operand, o.Operand)
}

func (f *FunctionCall) Equal(other Node) bool {
	o, ok := other.(*FunctionCall)
	if !ok || o == nil {
		return false
	}
	return compare.PointersWithEqual(f.Name, o.Name, equalIdentifiers) &&
		equalNodeSlices(f.Args, o.Args)
}

func (l *Lambda) Equal(other Node) bool {
	o, ok := other.(*Lambda)
	if !ok || o == nil {
		return false
	}
	return l.Parenthesized == o.Parenthesized &&
		equalNodeSlices(l.Params, o.Params) &&
		equalNodes(l.Body, o.Body)
}

func (c *Cast) Equal(other Node) bool {
	o, ok := other.(*Cast)
	if !ok || o == nil {
		return false
	}
	return c.Postfix == o.Postfix && equalNodes(c.Expr, o.Expr) && equalNodes(c.Type, o.Type)
}

func (i *Interval) Equal(other Node) bool {
	o, ok := other.(*Interval)
	if !ok || o == nil {
		return false
	}
	return equalNodes(i.Value, o.Value) && equalNodes(i.Unit, o.Unit)
}

func (a *Array) Equal(other Node) bool {
	o, ok := other.(*Array)
	if !ok || o == nil {
		return false
	}
	return equalNodeSlices(a.Elements, o.Elements)
}

func (p *Parenthesized) Equal(other Node) bool {
	o, ok := other.(*Parenthesized)
	if !ok || o == nil {
		return false
	}
	return equalNodeSlices(p.Exprs, o.Exprs) && equalNodes(p.Query, o.Query)
}

func (p *parser) parseExpression() (Expr, error) {
	return p.parseBinary(lowestPrecedence)
}

// parseBinary is a precedence climber. With a single binary level the right
// operand is parsed above it, which yields left associativity.
func (p *parser) parseBinary(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, width := p.binaryOperator()
		prec, ok := binaryPrecedence[op]
		if !ok || prec < minPrec {
			return left, nil
		}
		for range width {
			p.advance()
		}

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Span:  Span{Start: left.Bounds().Start, End: right.Bounds().End},
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
}

// binaryOperator returns the operator at the cursor and how many tokens it
// spans, or an empty string when none is present.
func (p *parser) binaryOperator() (string, int) {
	tok := p.peek()
	switch tok.Kind {
	case TokenOperator:
		if _, ok := binaryPrecedence[tok.Text]; ok {
			return tok.Text, 1
		}
	case TokenIdent:
		kw, ok := MatchKeyword(tok.Text)
		if !ok {
			return "", 0
		}
		switch kw {
		case KeywordAnd, KeywordOr, KeywordLike, KeywordIn:
			return string(kw), 1
		case KeywordIs:
			if p.isKeywordAt(1, KeywordNot) {
				return "IS NOT", 2
			}
			return "IS", 1
		}
	}
	return "", 0
}

func (p *parser) parseUnary() (Expr, error) {
	tok := p.peek()

	var op string
	switch {
	case tok.Is("-"), tok.Is("+"):
		op = tok.Text
	case p.isKeyword(KeywordNot):
		op = string(KeywordNot)
	default:
		return p.parsePostfix()
	}
	p.advance()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Span: p.span(tok.Span.Start), Op: op, Operand: operand}, nil
}

// parsePostfix parses an atom followed by any number of ::type casts.
func (p *parser) parsePostfix() (Expr, error) {
	start := p.peek().Span.Start
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for p.acceptOp("::") {
		typ, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		expr = &Cast{Span: p.span(start), Expr: expr, Type: typ, Postfix: true}
	}
	return expr, nil
}

func (p *parser) parseAtom() (Expr, error) {
	if p.lambdaAhead() {
		return p.parseLambda()
	}

	tok := p.peek()
	switch tok.Kind {
	case TokenNumber:
		p.advance()
		return &Number{Span: tok.Span, Text: tok.Text}, nil
	case TokenString:
		p.advance()
		return &StringLiteral{Span: tok.Span, Text: tok.Text}, nil
	case TokenIdent:
		return p.parseIdentifierAtom()
	case TokenOperator:
		switch tok.Text {
		case "(":
			return p.parseParenthesized()
		case "[":
			return p.parseArray()
		}
	}
	return nil, p.expressionError()
}

func (p *parser) parseIdentifierAtom() (Expr, error) {
	tok := p.peek()
	if kw, ok := MatchKeyword(tok.Text); ok {
		switch {
		case kw == KeywordCast && p.peekAt(1).Is("("):
			return p.parseCast()
		case kw == KeywordInterval && p.peekAt(1).Kind == TokenNumber:
			return p.parseInterval()
		case keywords[kw]:
			return nil, p.expressionError()
		}
	}

	if p.peekAt(1).Is("(") {
		return p.parseFunctionCall()
	}
	p.advance()
	return &Identifier{Span: tok.Span, Name: tok.Text}, nil
}

func (p *parser) expressionError() *Error {
	tok := p.peek()
	msg := "expected expression" + p.after() + ", found " + tok.describe()
	return newError(ErrExpression, p.input, tok.Span.Start, msg)
}

// lambdaAhead reports whether the cursor starts `x ->` or `(a, b) ->`.
// A lambda reading always wins over an identifier or grouping reading.
func (p *parser) lambdaAhead() bool {
	tok := p.peek()
	if tok.Kind == TokenIdent {
		return p.peekAt(1).Is("->")
	}
	if !tok.Is("(") {
		return false
	}

	i := 1
	if p.peekAt(i).Kind == TokenIdent {
		i++
		for p.peekAt(i).Is(",") {
			if p.peekAt(i+1).Kind != TokenIdent {
				return false
			}
			i += 2
		}
	}
	return p.peekAt(i).Is(")") && p.peekAt(i+1).Is("->")
}

func (p *parser) parseLambda() (Expr, error) {
	start := p.peek().Span.Start
	lambda := &Lambda{Parenthesized: p.acceptOp("(")}

	if lambda.Parenthesized {
		for !p.isOp(")") {
			if len(lambda.Params) > 0 {
				if err := p.expectOp(","); err != nil {
					return nil, err
				}
			}
			param, err := p.parseName("lambda parameter")
			if err != nil {
				return nil, err
			}
			lambda.Params = append(lambda.Params, param)
		}
		p.advance()
		p.note(NoteLambda, start, "parenthesized names followed by '->' read as lambda parameters")
	} else {
		param, err := p.parseName("lambda parameter")
		if err != nil {
			return nil, err
		}
		lambda.Params = []*Identifier{param}
		p.note(NoteLambda, start, "identifier followed by '->' read as lambda parameter")
	}

	if err := p.expectOp("->"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	lambda.Body = body
	lambda.Span = p.span(start)
	return lambda, nil
}

// parseParenthesized parses a subquery, a grouping or a tuple.
func (p *parser) parseParenthesized() (Expr, error) {
	start := p.advance().Span.Start

	if p.isKeyword(KeywordSelect) || p.isKeyword(KeywordWith) {
		query, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return &Parenthesized{Span: p.span(start), Query: query}, nil
	}

	exprs, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return &Parenthesized{Span: p.span(start), Exprs: exprs}, nil
}

func (p *parser) parseArray() (Expr, error) {
	start := p.advance().Span.Start
	array := &Array{}

	if !p.isOp("]") {
		elements, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		array.Elements = elements
	}
	if err := p.expectOp("]"); err != nil {
		return nil, err
	}
	array.Span = p.span(start)
	return array, nil
}

// parseExpressionList parses one or more comma separated expressions.
func (p *parser) parseExpressionList() ([]Expr, error) {
	var exprs []Expr
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !p.acceptOp(",") {
			return exprs, nil
		}
	}
}

func (p *parser) parseFunctionCall() (Expr, error) {
	start := p.peek().Span.Start
	name, err := p.parseName("function name")
	if err != nil {
		return nil, err
	}
	p.advance()

	call := &FunctionCall{Name: name}
	if !p.isOp(")") {
		for {
			var arg Node
			if tok := p.peek(); tok.Is("*") {
				p.advance()
				arg = &Wildcard{Span: tok.Span}
			} else if arg, err = p.parseExpression(); err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if !p.acceptOp(",") {
				break
			}
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	call.Span = p.span(start)
	return call, nil
}

func (p *parser) parseCast() (Expr, error) {
	start := p.advance().Span.Start
	p.advance()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(KeywordAs); err != nil {
		return nil, err
	}
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return &Cast{Span: p.span(start), Expr: expr, Type: typ}, nil
}

func (p *parser) parseInterval() (Expr, error) {
	start := p.advance().Span.Start

	value, err := p.parseNumber("interval value")
	if err != nil {
		return nil, err
	}
	unit, err := p.parseName("interval unit")
	if err != nil {
		return nil, err
	}
	return &Interval{Span: p.span(start), Value: value, Unit: unit}, nil
}
