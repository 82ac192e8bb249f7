package parser

import (
	"fmt"
	"strings"
)

// ClauseKind identifies a CREATE TABLE clause that follows ENGINE.
type ClauseKind int

const (
	ClausePartitionBy ClauseKind = iota + 1
	ClauseOrderBy
	ClausePrimaryKey
	ClauseSampleBy
	ClauseTTL
	ClauseSettings
	ClauseComment
)

var clauseKindNames = map[ClauseKind]string{
	ClausePartitionBy: "PARTITION BY",
	ClauseOrderBy:     "ORDER BY",
	ClausePrimaryKey:  "PRIMARY KEY",
	ClauseSampleBy:    "SAMPLE BY",
	ClauseTTL:         "TTL",
	ClauseSettings:    "SETTINGS",
	ClauseComment:     "COMMENT",
}

func (k ClauseKind) String() string {
	return clauseKindNames[k]
}

type (
	// CreateTableStmt represents a CREATE TABLE statement.
	// ClickHouse syntax:
	//
	//	CREATE TABLE [IF NOT EXISTS] [db.]table_name [ON CLUSTER cluster]
	//	(
	//	  column1 Type1 [NULL|NOT NULL] [DEFAULT|MATERIALIZED|EPHEMERAL|ALIAS expr] [CODEC(...)] [TTL expr] [COMMENT 'comment'],
	//	  ...
	//	)
	//	ENGINE = engine_name[([parameters])]
	//	[PARTITION BY expr] [ORDER BY expr] [PRIMARY KEY expr] [SAMPLE BY expr]
	//	[TTL expr] [SETTINGS name = value, ...] [COMMENT 'comment']
	//
	// The trailing clauses are optional and may appear in any order, any
	// number of times; Clauses keeps them in source order.
	CreateTableStmt struct {
		Span
		LeadingCommentField
		IfNotExists bool
		Name        *QualifiedName
		OnCluster   *Identifier
		Columns     []*ColumnDefinition
		Engine      *EngineRef
		Clauses     []*TableClause
	}

	// EngineRef is ENGINE = name[(args)]. Name is one of the known engines.
	EngineRef struct {
		Span
		Name    string
		Args    []Expr
		HasArgs bool
	}

	// TableClause is one clause after ENGINE. Clause selects which field is
	// set: Settings for SETTINGS, Comment for COMMENT and Expr otherwise.
	TableClause struct {
		Span
		Clause   ClauseKind
		Expr     Expr
		Settings []*SettingPair
		Comment  *StringLiteral
	}

	// SettingPair is name = value inside SETTINGS.
	SettingPair struct {
		Span
		Name  *Identifier
		Value Expr
	}
)

func (*CreateTableStmt) statementNode() {}

func (*CreateTableStmt) Kind() NodeKind { return KindCreateTable }
func (*EngineRef) Kind() NodeKind       { return KindEngineRef }
func (*TableClause) Kind() NodeKind     { return KindTableClause }
func (*SettingPair) Kind() NodeKind     { return KindSettingPair }

func (c *CreateTableStmt) Children() []Node {
	children := []Node{c.Name}
	if c.OnCluster != nil {
		children = append(children, c.OnCluster)
	}
	for _, col := range c.Columns {
		children = append(children, col)
	}
	children = append(children, c.Engine)
	for _, clause := range c.Clauses {
		children = append(children, clause)
	}
	return children
}

func (e *EngineRef) Children() []Node { return exprNodes(e.Args) }

func (t *TableClause) Children() []Node {
	switch t.Clause {
	case ClauseSettings:
		children := make([]Node, 0, len(t.Settings))
		for _, s := range t.Settings {
			children = append(children, s)
		}
		return children
	case ClauseComment:
		return []Node{t.Comment}
	default:
		return []Node{t.Expr}
	}
}

func (s *SettingPair) Children() []Node { return []Node{s.Name, s.Value} }

// GetClause returns the first clause of the given kind.
func (c *CreateTableStmt) GetClause(kind ClauseKind) *TableClause {
	for _, clause := range c.Clauses {
		if clause.Clause == kind {
			return clause
		}
	}
	return nil
}

func (c *CreateTableStmt) String() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if c.IfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(c.Name.String())
	if c.OnCluster != nil {
		b.WriteString(" ON CLUSTER " + c.OnCluster.String())
	}
	b.WriteString(" (" + joinNodes(c.Columns, ", ") + ") ")
	b.WriteString(c.Engine.String())
	for _, clause := range c.Clauses {
		b.WriteString(" " + clause.String())
	}
	return b.String()
}

func (e *EngineRef) String() string {
	if !e.HasArgs {
		return "ENGINE = " + e.Name
	}
	return "ENGINE = " + e.Name + "(" + joinNodes(e.Args, ", ") + ")"
}

func (t *TableClause) String() string {
	switch t.Clause {
	case ClauseSettings:
		return "SETTINGS " + joinNodes(t.Settings, ", ")
	case ClauseComment:
		return "COMMENT " + t.Comment.String()
	default:
		return t.Clause.String() + " " + t.Expr.String()
	}
}

func (s *SettingPair) String() string {
	return s.Name.String() + " = " + s.Value.String()
}

func (c *CreateTableStmt) Equal(other Node) bool {
	o, ok := other.(*CreateTableStmt)
	if !ok || o == nil {
		return false
	}
	return c.IfNotExists == o.IfNotExists &&
		equalNodes(c.Name, o.Name) &&
		equalNodes(c.OnCluster, o.OnCluster) &&
		equalNodeSlices(c.Columns, o.Columns) &&
		equalNodes(c.Engine, o.Engine) &&
		equalNodeSlices(c.Clauses, o.Clauses)
}

func (e *EngineRef) Equal(other Node) bool {
	o, ok := other.(*EngineRef)
	if !ok || o == nil {
		return false
	}
	return e.Name == o.Name && e.HasArgs == o.HasArgs && equalNodeSlices(e.Args, o.Args)
}

func (t *TableClause) Equal(other Node) bool {
	o, ok := other.(*TableClause)
	if !ok || o == nil {
		return false
	}
	return t.Clause == o.Clause &&
		equalNodes(t.Expr, o.Expr) &&
		equalNodeSlices(t.Settings, o.Settings) &&
		equalNodes(t.Comment, o.Comment)
}

func (s *SettingPair) Equal(other Node) bool {
	o, ok := other.(*SettingPair)
	if !ok || o == nil {
		return false
	}
	return equalNodes(s.Name, o.Name) && equalNodes(s.Value, o.Value)
}

func (p *parser) parseCreateTable() (*CreateTableStmt, error) {
	start := p.advance().Span.Start
	if err := p.expectKeyword(KeywordTable); err != nil {
		return nil, err
	}

	stmt := &CreateTableStmt{}
	if p.isKeyword(KeywordIf) && p.isKeywordAt(1, KeywordNot) {
		p.advance()
		p.advance()
		if err := p.expectKeyword(KeywordExists); err != nil {
			return nil, err
		}
		stmt.IfNotExists = true
	}

	name, err := p.parseQualifiedName("table name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	if p.acceptKeyword(KeywordOn) {
		if err := p.expectKeyword(KeywordCluster); err != nil {
			return nil, err
		}
		if stmt.OnCluster, err = p.parseName("cluster name"); err != nil {
			return nil, err
		}
	}

	if err := p.expectOp("("); err != nil {
		return nil, err
	}
	for {
		col, err := p.parseColumnDefinition()
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

	if stmt.Engine, err = p.parseEngine(); err != nil {
		return nil, err
	}

	for {
		clause, err := p.parseTableClause()
		if err != nil {
			return nil, err
		}
		if clause == nil {
			break
		}
		stmt.Clauses = append(stmt.Clauses, clause)
	}

	stmt.Span = p.span(start)
	return stmt, nil
}

func (p *parser) parseEngine() (*EngineRef, error) {
	start := p.peek().Span.Start
	if err := p.expectKeyword(KeywordEngine); err != nil {
		return nil, err
	}
	if err := p.expectOp("="); err != nil {
		return nil, err
	}

	tok := p.peek()
	if tok.Kind != TokenIdent {
		msg := "expected engine name" + p.after() + ", found " + tok.describe()
		return nil, newError(ErrUnknownEngine, p.input, tok.Span.Start, msg)
	}
	if !MatchEngine(tok.Text) {
		return nil, newError(ErrUnknownEngine, p.input, tok.Span.Start, fmt.Sprintf("unknown engine %s", tok.Text))
	}
	p.advance()

	engine := &EngineRef{Name: tok.Text}
	if p.acceptOp("(") {
		engine.HasArgs = true
		if !p.isOp(")") {
			args, err := p.parseExpressionList()
			if err != nil {
				return nil, err
			}
			engine.Args = args
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
	}
	engine.Span = p.span(start)
	return engine, nil
}

// parseTableClause returns nil when no clause starts at the cursor.
func (p *parser) parseTableClause() (*TableClause, error) {
	start := p.peek().Span.Start

	var kind ClauseKind
	switch {
	case p.isKeyword(KeywordPartition):
		kind = ClausePartitionBy
	case p.isKeyword(KeywordOrder):
		kind = ClauseOrderBy
	case p.isKeyword(KeywordPrimary):
		kind = ClausePrimaryKey
	case p.isKeyword(KeywordSample):
		kind = ClauseSampleBy
	case p.isKeyword(KeywordTTL):
		kind = ClauseTTL
	case p.isKeyword(KeywordSettings):
		kind = ClauseSettings
	case p.isKeyword(KeywordComment):
		kind = ClauseComment
	default:
		return nil, nil
	}
	p.advance()

	clause := &TableClause{Clause: kind}
	var err error
	switch kind {
	case ClausePartitionBy, ClauseOrderBy, ClauseSampleBy:
		err = p.expectKeyword(KeywordBy)
	case ClausePrimaryKey:
		err = p.expectKeyword(KeywordKey)
	}
	if err != nil {
		return nil, err
	}

	switch kind {
	case ClauseSettings:
		clause.Settings, err = p.parseSettings()
	case ClauseComment:
		clause.Comment, err = p.parseStringLiteral("comment string")
	default:
		clause.Expr, err = p.parseExpression()
	}
	if err != nil {
		return nil, err
	}

	clause.Span = p.span(start)
	return clause, nil
}

func (p *parser) parseSettings() ([]*SettingPair, error) {
	var settings []*SettingPair
	for {
		start := p.peek().Span.Start
		name, err := p.parseName("setting name")
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("="); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		settings = append(settings, &SettingPair{Span: p.span(start), Name: name, Value: value})

		if !p.acceptOp(",") {
			return settings, nil
		}
	}
}
