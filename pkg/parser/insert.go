package parser

import "strings"

// InsertStmt represents an INSERT statement.
// ClickHouse syntax:
//
//	INSERT INTO [db.]table [(column, ...)]
//	  VALUES (expr, ...), ... | SELECT ... | FORMAT format_name
//
// Exactly one of Values, Query and Format is set.
type InsertStmt struct {
	Span
	LeadingCommentField
	Table   *QualifiedName
	Columns []*Identifier
	Values  []*Parenthesized
	Query   *SelectStmt
	Format  *Identifier
}

func (*InsertStmt) statementNode() {}

func (*InsertStmt) Kind() NodeKind { return KindInsert }

func (i *InsertStmt) Children() []Node {
	children := []Node{i.Table}
	for _, col := range i.Columns {
		children = append(children, col)
	}
	for _, row := range i.Values {
		children = append(children, row)
	}
	switch {
	case i.Query != nil:
		children = append(children, i.Query)
	case i.Format != nil:
		children = append(children, i.Format)
	}
	return children
}

func (i *InsertStmt) String() string {
	var b strings.Builder
	b.WriteString("INSERT INTO " + i.Table.String())
	if len(i.Columns) > 0 {
		b.WriteString(" (" + joinNodes(i.Columns, ", ") + ")")
	}
	switch {
	case i.Query != nil:
		b.WriteString(" " + i.Query.String())
	case i.Format != nil:
		b.WriteString(" FORMAT " + i.Format.String())
	default:
		b.WriteString(" VALUES " + joinNodes(i.Values, ", "))
	}
	return b.String()
}

func (i *InsertStmt) Equal(other Node) bool {
	o, ok := other.(*InsertStmt)
	if !ok || o == nil {
		return false
	}
	return equalNodes(i.Table, o.Table) &&
		equalNodeSlices(i.Columns, o.Columns) &&
		equalNodeSlices(i.Values, o.Values) &&
		equalNodes(i.Query, o.Query) &&
		equalNodes(i.Format, o.Format)
}

func (p *parser) parseInsert() (*InsertStmt, error) {
	start := p.advance().Span.Start
	if err := p.expectKeyword(KeywordInto); err != nil {
		return nil, err
	}

	table, err := p.parseQualifiedName("table name")
	if err != nil {
		return nil, err
	}
	stmt := &InsertStmt{Table: table}

	if p.acceptOp("(") {
		for {
			col, err := p.parseName("column name")
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
			if !p.acceptOp(",") {
				break
			}
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
	}

	switch {
	case p.acceptKeyword(KeywordValues):
		if stmt.Values, err = p.parseValueRows(); err != nil {
			return nil, err
		}
	case p.isKeyword(KeywordSelect), p.isKeyword(KeywordWith):
		if stmt.Query, err = p.parseSelect(); err != nil {
			return nil, err
		}
	case p.acceptKeyword(KeywordFormat):
		if stmt.Format, err = p.parseName("format name"); err != nil {
			return nil, err
		}
	default:
		return nil, p.unexpected("VALUES, SELECT, WITH or FORMAT")
	}

	stmt.Span = p.span(start)
	return stmt, nil
}

// parseValueRows parses one or more parenthesized value lists.
func (p *parser) parseValueRows() ([]*Parenthesized, error) {
	var rows []*Parenthesized
	for {
		start := p.peek().Span.Start
		if err := p.expectOp("("); err != nil {
			return nil, err
		}
		exprs, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		rows = append(rows, &Parenthesized{Span: p.span(start), Exprs: exprs})

		if !p.acceptOp(",") {
			return rows, nil
		}
	}
}
