package parser

import "strings"

type (
	// SelectStmt represents a SELECT query.
	// ClickHouse syntax:
	//
	//	[WITH cte_or_cse, ...]
	//	SELECT * | expr [AS alias], ...
	//	[FROM [db.]table | FROM (subquery)]
	//	[WHERE expr]
	//	[GROUP BY expr, ...]
	//	[ORDER BY expr [ASC|DESC], ...]
	//	[LIMIT number]
	//
	// Projection holds expressions, *Wildcard and *AliasedExpr values.
	SelectStmt struct {
		Span
		LeadingCommentField
		With       []WithItem
		Projection []Node
		From       *FromClause
		Where      Expr
		GroupBy    []Expr
		OrderBy    []*OrderByItem
		Limit      *Number
	}

	// WithItem is a *Cte or a *Cse.
	WithItem interface {
		Node
		withItemNode()
	}

	// Cte is a common table expression: name AS (SELECT ...).
	Cte struct {
		Span
		Name  *Identifier
		Query *SelectStmt
	}

	// Cse is a common scalar expression: expr AS name.
	Cse struct {
		Span
		Expr Expr
		Name *Identifier
	}

	// AliasedExpr is a projection item with an alias.
	AliasedExpr struct {
		Span
		Expr  Expr
		Alias *Identifier
	}

	// FromClause names the queried table, or holds a subquery.
	FromClause struct {
		Span
		Table    *QualifiedName
		Subquery *SelectStmt
	}

	// OrderByItem is one ORDER BY key. Direction is "", "ASC" or "DESC".
	OrderByItem struct {
		Span
		Expr      Expr
		Direction string
	}
)

func (*SelectStmt) statementNode() {}
func (*Cte) withItemNode()         {}
func (*Cse) withItemNode()         {}

func (*SelectStmt) Kind() NodeKind  { return KindSelect }
func (*Cte) Kind() NodeKind         { return KindCte }
func (*Cse) Kind() NodeKind         { return KindCse }
func (*AliasedExpr) Kind() NodeKind { return KindAliasedExpr }
func (*FromClause) Kind() NodeKind  { return KindFromClause }
func (*OrderByItem) Kind() NodeKind { return KindOrderByItem }

func (s *SelectStmt) Children() []Node {
	var children []Node
	for _, item := range s.With {
		children = append(children, item)
	}
	children = append(children, s.Projection...)
	if s.From != nil {
		children = append(children, s.From)
	}
	if s.Where != nil {
		children = append(children, s.Where)
	}
	children = append(children, exprNodes(s.GroupBy)...)
	for _, item := range s.OrderBy {
		children = append(children, item)
	}
	if s.Limit != nil {
		children = append(children, s.Limit)
	}
	return children
}

func (c *Cte) Children() []Node         { return []Node{c.Name, c.Query} }
func (c *Cse) Children() []Node         { return []Node{c.Expr, c.Name} }
func (a *AliasedExpr) Children() []Node { return []Node{a.Expr, a.Alias} }
func (o *OrderByItem) Children() []Node { return []Node{o.Expr} }

func (f *FromClause) Children() []Node {
	if f.Subquery != nil {
		return []Node{f.Subquery}
	}
	return []Node{f.Table}
}

func (s *SelectStmt) String() string {
	var parts []string
	if len(s.With) > 0 {
		parts = append(parts, "WITH "+joinNodes(s.With, ", "))
	}
	parts = append(parts, "SELECT "+joinNodes(s.Projection, ", "))
	if s.From != nil {
		parts = append(parts, s.From.String())
	}
	if s.Where != nil {
		parts = append(parts, "WHERE "+s.Where.String())
	}
	if len(s.GroupBy) > 0 {
		parts = append(parts, "GROUP BY "+joinNodes(s.GroupBy, ", "))
	}
	if len(s.OrderBy) > 0 {
		parts = append(parts, "ORDER BY "+joinNodes(s.OrderBy, ", "))
	}
	if s.Limit != nil {
		parts = append(parts, "LIMIT "+s.Limit.String())
	}
	return strings.Join(parts, " ")
}

func (c *Cte) String() string         { return c.Name.String() + " AS (" + c.Query.String() + ")" }
func (c *Cse) String() string         { return c.Expr.String() + " AS " + c.Name.String() }
func (a *AliasedExpr) String() string { return a.Expr.String() + " AS " + a.Alias.String() }

func (f *FromClause) String() string {
	if f.Subquery != nil {
		return "FROM (" + f.Subquery.String() + ")"
	}
	return "FROM " + f.Table.String()
}

func (o *OrderByItem) String() string {
	if o.Direction == "" {
		return o.Expr.String()
	}
	return o.Expr.String() + " " + o.Direction
}

func (s *SelectStmt) Equal(other Node) bool {
	o, ok := other.(*SelectStmt)
	if !ok || o == nil {
		return false
	}
	return equalNodeSlices(s.With, o.With) &&
		equalNodeSlices(s.Projection, o.Projection) &&
		equalNodes(s.From, o.From) &&
		equalNodes(s.Where, o.Where) &&
		equalNodeSlices(s.GroupBy, o.GroupBy) &&
		equalNodeSlices(s.OrderBy, o.OrderBy) &&
		equalNodes(s.Limit, o.Limit)
}

func (c *Cte) Equal(other Node) bool {
	o, ok := other.(*Cte)
	if !ok || o == nil {
		return false
	}
	return equalNodes(c.Name, o.Name) && equalNodes(c.Query, o.Query)
}

func (c *Cse) Equal(other Node) bool {
	o, ok := other.(*Cse)
	if !ok || o == nil {
		return false
	}
	return equalNodes(c.Expr, o.Expr) && equalNodes(c.Name, o.Name)
}

func (a *AliasedExpr) Equal(other Node) bool {
	o, ok := other.(*AliasedExpr)
	if !ok || o == nil {
		return false
	}
	return equalNodes(a.Expr, o.Expr) && equalNodes(a.Alias, o.Alias)
}

func (f *FromClause) Equal(other Node) bool {
	o, ok := other.(*FromClause)
	if !ok || o == nil {
		return false
	}
	return equalNodes(f.Table, o.Table) && equalNodes(f.Subquery, o.Subquery)
}

func (o *OrderByItem) Equal(other Node) bool {
	x, ok := other.(*OrderByItem)
	if !ok || x == nil {
		return false
	}
	return o.Direction == x.Direction && equalNodes(o.Expr, x.Expr)
}

func (p *parser) parseSelect() (*SelectStmt, error) {
	start := p.peek().Span.Start
	stmt := &SelectStmt{}

	if p.acceptKeyword(KeywordWith) {
		for {
			item, err := p.parseWithItem()
			if err != nil {
				return nil, err
			}
			stmt.With = append(stmt.With, item)
			if !p.acceptOp(",") {
				break
			}
		}
	}

	if err := p.expectKeyword(KeywordSelect); err != nil {
		return nil, err
	}
	for {
		item, err := p.parseProjectionItem()
		if err != nil {
			return nil, err
		}
		stmt.Projection = append(stmt.Projection, item)
		if !p.acceptOp(",") {
			break
		}
	}

	var err error
	if p.isKeyword(KeywordFrom) {
		if stmt.From, err = p.parseFrom(); err != nil {
			return nil, err
		}
	}

	if p.acceptKeyword(KeywordWhere) {
		if stmt.Where, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}

	if p.acceptKeyword(KeywordGroup) {
		if err := p.expectKeyword(KeywordBy); err != nil {
			return nil, err
		}
		if stmt.GroupBy, err = p.parseExpressionList(); err != nil {
			return nil, err
		}
	}

	if p.acceptKeyword(KeywordOrder) {
		if err := p.expectKeyword(KeywordBy); err != nil {
			return nil, err
		}
		if stmt.OrderBy, err = p.parseOrderByItems(); err != nil {
			return nil, err
		}
	}

	if p.acceptKeyword(KeywordLimit) {
		if stmt.Limit, err = p.parseNumber("LIMIT count"); err != nil {
			return nil, err
		}
	}

	stmt.Span = p.span(start)
	return stmt, nil
}

// parseWithItem resolves CTE against CSE: `name AS (` commits to a CTE,
// anything else is read as `expr AS name`.
func (p *parser) parseWithItem() (WithItem, error) {
	start := p.peek().Span.Start
	named := p.peek().Kind == TokenIdent && p.isKeywordAt(1, KeywordAs)

	if named && p.peekAt(2).Is("(") {
		name, err := p.parseName("CTE name")
		if err != nil {
			return nil, err
		}
		p.advance()
		p.advance()
		p.note(NoteCTE, start, "name AS ( read as common table expression")

		query, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return &Cte{Span: p.span(start), Name: name, Query: query}, nil
	}

	if named {
		p.note(NoteCSE, start, "name AS name read as common scalar expression")
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(KeywordAs); err != nil {
		return nil, err
	}
	name, err := p.parseName("CSE name")
	if err != nil {
		return nil, err
	}
	return &Cse{Span: p.span(start), Expr: expr, Name: name}, nil
}

func (p *parser) parseProjectionItem() (Node, error) {
	if tok := p.peek(); tok.Is("*") {
		p.advance()
		return &Wildcard{Span: tok.Span}, nil
	}

	start := p.peek().Span.Start
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.acceptKeyword(KeywordAs) {
		return expr, nil
	}
	alias, err := p.parseName("alias")
	if err != nil {
		return nil, err
	}
	return &AliasedExpr{Span: p.span(start), Expr: expr, Alias: alias}, nil
}

func (p *parser) parseFrom() (*FromClause, error) {
	start := p.advance().Span.Start

	if !p.acceptOp("(") {
		table, err := p.parseQualifiedName("table name")
		if err != nil {
			return nil, err
		}
		return &FromClause{Span: p.span(start), Table: table}, nil
	}

	query, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return &FromClause{Span: p.span(start), Subquery: query}, nil
}

func (p *parser) parseOrderByItems() ([]*OrderByItem, error) {
	var items []*OrderByItem
	for {
		start := p.peek().Span.Start
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		item := &OrderByItem{Expr: expr}
		switch {
		case p.acceptKeyword(KeywordAsc):
			item.Direction = string(KeywordAsc)
		case p.acceptKeyword(KeywordDesc):
			item.Direction = string(KeywordDesc)
		}
		item.Span = p.span(start)
		items = append(items, item)

		if !p.acceptOp(",") {
			return items, nil
		}
	}
}
