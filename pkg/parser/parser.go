package parser

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type (
	// Option configures a parse.
	Option func(*options)

	options struct {
		logger *slog.Logger
	}

	// item is a significant token plus the comments lexed before it.
	item struct {
		Token
		comments []string
	}

	// parser is a recursive-descent parser over a lazily filled token buffer.
	// The buffer makes bounded lookahead and rewinding cheap; tokens are only
	// pulled from the lexer when the grammar needs them.
	parser struct {
		input     string
		lex       *Lexer
		items     []item
		exhausted bool
		pos       int
		prevEnd   int
		lexErr    error
		notes     []Note
		logger    *slog.Logger
	}
)

// WithLogger makes the parser log every ambiguity resolution at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Parse parses ClickHouse statements read from r.
//
// Example usage:
//
//	file, err := os.Open("schema.sql")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	tree, err := parser.Parse(file)
//	if err != nil {
//		log.Fatalf("Parse error: %v", err)
//	}
//
// Returns an error if the reader fails or the text is not valid.
func Parse(r io.Reader, opts ...Option) (*SourceFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read SQL")
	}
	return ParseString(string(data), opts...)
}

// ParseFile parses the ClickHouse statements stored in the file at path.
func ParseFile(path string, opts ...Option) (*SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", path)
	}
	return ParseString(string(data), opts...)
}

// ParseString parses ClickHouse statements from a string and returns the
// syntax tree rooted at a SourceFile. The input is one source unit holding
// zero or more CREATE TABLE, SELECT and INSERT statements, each optionally
// terminated by ';'.
//
// Example usage:
//
//	tree, err := parser.ParseString(`
//		CREATE TABLE analytics.events (
//			id UInt64,
//			ts DateTime DEFAULT now()
//		) ENGINE = MergeTree ORDER BY id;
//		SELECT count(*) AS total FROM analytics.events WHERE id > 10 LIMIT 5;
//	`)
//	if err != nil {
//		var perr *parser.Error
//		if errors.As(err, &perr) {
//			fmt.Println(perr.Kind, perr.Offset)
//		}
//		return err
//	}
//
//	for _, stmt := range tree.Statements {
//		if create, ok := stmt.(*parser.CreateTableStmt); ok {
//			fmt.Printf("CREATE TABLE %s with %d columns\n", create.Name, len(create.Columns))
//		}
//	}
//
// The whole input is rejected on the first error: callers get either a
// complete tree or an error wrapping a *Error, never both. A lex error
// anywhere in the input is reported ahead of any syntax error.
func ParseString(sql string, opts ...Option) (*SourceFile, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{
		input:  sql,
		lex:    NewLexer(sql),
		logger: o.logger,
	}

	file, err := p.parseSourceFile()
	if err != nil {
		p.drain()
	}
	if p.lexErr != nil {
		err = p.lexErr
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse SQL")
	}
	return file, nil
}

func (p *parser) parseSourceFile() (*SourceFile, error) {
	file := &SourceFile{Span: Span{Start: 0, End: len(p.input)}}

	for p.peek().Kind != TokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		file.Statements = append(file.Statements, stmt)
		p.acceptOp(";")
	}

	file.Notes = p.notes
	return file, nil
}

func (p *parser) parseStatement() (Statement, error) {
	comments := p.items[p.pos].comments

	var (
		stmt Statement
		err  error
	)
	switch {
	case p.isKeyword(KeywordCreate):
		stmt, err = p.parseCreateTable()
	case p.isKeyword(KeywordSelect), p.isKeyword(KeywordWith):
		stmt, err = p.parseSelect()
	case p.isKeyword(KeywordInsert):
		stmt, err = p.parseInsert()
	default:
		return nil, p.unexpected("CREATE, SELECT, WITH or INSERT")
	}
	if err != nil {
		return nil, err
	}

	if c, ok := stmt.(interface{ setLeadingComments([]string) }); ok {
		c.setLeadingComments(comments)
	}
	return stmt, nil
}

// pull reads from the lexer until one significant token is buffered.
func (p *parser) pull() {
	var comments []string
	for {
		tok, err := p.lex.Next()
		if err != nil {
			p.lexErr = err
			p.exhausted = true
			return
		}
		if tok.Kind == TokenComment {
			comments = append(comments, tok.Text)
		}
		if tok.IsTrivia() {
			continue
		}

		p.items = append(p.items, item{Token: tok, comments: comments})
		if tok.Kind == TokenEOF {
			p.exhausted = true
		}
		return
	}
}

// drain lexes the rest of the input, so a lex error anywhere in it is
// reported even when parsing stopped earlier.
func (p *parser) drain() {
	for !p.exhausted {
		p.pull()
	}
}

// peekAt returns the significant token i positions past the cursor.
func (p *parser) peekAt(i int) Token {
	idx := p.pos + i
	for len(p.items) <= idx && !p.exhausted {
		p.pull()
	}
	if idx < len(p.items) {
		return p.items[idx].Token
	}
	return Token{Kind: TokenEOF, Span: Span{Start: len(p.input), End: len(p.input)}}
}

func (p *parser) peek() Token {
	return p.peekAt(0)
}

// advance consumes the current token. EOF is never consumed.
func (p *parser) advance() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.pos++
		p.prevEnd = tok.Span.End
	}
	return tok
}

func (p *parser) isKeywordAt(i int, kw Keyword) bool {
	tok := p.peekAt(i)
	return tok.Kind == TokenIdent && strings.EqualFold(tok.Text, string(kw))
}

func (p *parser) isKeyword(kw Keyword) bool {
	return p.isKeywordAt(0, kw)
}

func (p *parser) isOp(op string) bool {
	return p.peek().Is(op)
}

func (p *parser) acceptKeyword(kw Keyword) bool {
	if p.isKeyword(kw) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) acceptOp(op string) bool {
	if p.isOp(op) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expectKeyword(kw Keyword) error {
	if p.acceptKeyword(kw) {
		return nil
	}
	return p.missing(string(kw))
}

func (p *parser) expectKeywords(kws ...Keyword) error {
	for _, kw := range kws {
		if err := p.expectKeyword(kw); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) expectOp(op string) error {
	if p.acceptOp(op) {
		return nil
	}
	return p.missing("'" + op + "'")
}

// span returns the range from start to the end of the last consumed token.
func (p *parser) span(start int) Span {
	return Span{Start: start, End: p.prevEnd}
}

// after describes the last consumed token for error messages.
func (p *parser) after() string {
	if p.pos == 0 {
		return ""
	}
	return " after " + p.items[p.pos-1].describe()
}

// missing reports an absent keyword or punctuation at the end of the last
// consumed token.
func (p *parser) missing(what string) *Error {
	msg := fmt.Sprintf("expected %s%s, found %s", what, p.after(), p.peek().describe())
	return newError(ErrMissingToken, p.input, p.prevEnd, msg)
}

// unexpected reports the current token as an invalid continuation.
func (p *parser) unexpected(what string) *Error {
	tok := p.peek()
	msg := fmt.Sprintf("unexpected %s%s, expected %s", tok.describe(), p.after(), what)
	return newError(ErrUnexpectedToken, p.input, tok.Span.Start, msg)
}

func (p *parser) note(kind NoteKind, offset int, message string) {
	n := Note{Kind: kind, Offset: offset, Message: message}
	p.notes = append(p.notes, n)
	p.logger.Debug("resolved grammar ambiguity", "kind", kind.String(), "offset", offset, "message", message)
}

// parseName consumes any identifier-shaped token, keywords included.
func (p *parser) parseName(what string) (*Identifier, error) {
	tok := p.peek()
	if tok.Kind != TokenIdent {
		return nil, p.unexpected(what)
	}
	p.advance()
	return &Identifier{Span: tok.Span, Name: tok.Text}, nil
}

// parseQualifiedName parses name or database.name.
func (p *parser) parseQualifiedName(what string) (*QualifiedName, error) {
	start := p.peek().Span.Start
	first, err := p.parseName(what)
	if err != nil {
		return nil, err
	}
	if !p.acceptOp(".") {
		return &QualifiedName{Span: p.span(start), Name: first}, nil
	}
	name, err := p.parseName(what)
	if err != nil {
		return nil, err
	}
	return &QualifiedName{Span: p.span(start), Database: first, Name: name}, nil
}

func (p *parser) parseStringLiteral(what string) (*StringLiteral, error) {
	tok := p.peek()
	if tok.Kind != TokenString {
		return nil, p.unexpected(what)
	}
	p.advance()
	return &StringLiteral{Span: tok.Span, Text: tok.Text}, nil
}

func (p *parser) parseNumber(what string) (*Number, error) {
	tok := p.peek()
	if tok.Kind != TokenNumber {
		return nil, p.unexpected(what)
	}
	p.advance()
	return &Number{Span: tok.Span, Text: tok.Text}, nil
}
