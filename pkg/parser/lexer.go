package parser

import (
	"iter"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenWhitespace
	TokenComment
	TokenIdent
	TokenNumber
	TokenString
	TokenOperator
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenWhitespace: "Whitespace",
	TokenComment:    "Comment",
	TokenIdent:      "Ident",
	TokenNumber:     "Number",
	TokenString:     "String",
	TokenOperator:   "Operator",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Span is a half-open byte range [Start, End) of the input.
// Every syntax node embeds one.
type Span struct {
	Start int
	End   int
}

// Bounds returns the span itself; embedding Span gives each node its Bounds method.
func (s Span) Bounds() Span {
	return s
}

// Token is a single lexical unit. Trivia (whitespace and comments) are
// tokens too so the input can be rebuilt from the token spans.
type Token struct {
	Kind TokenKind
	Text string
	Span Span
}

// IsTrivia reports whether the token carries no syntax.
func (t Token) IsTrivia() bool {
	return t.Kind == TokenWhitespace || t.Kind == TokenComment
}

// Is reports whether the token is the operator or punctuation symbol op.
func (t Token) Is(op string) bool {
	return t.Kind == TokenOperator && t.Text == op
}

// describe renders the token for error messages.
func (t Token) describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenString, TokenOperator:
		return "'" + t.Text + "'"
	default:
		return t.Text
	}
}

var (
	// clickhouseLexer defines the raw token classes. Rules are tried in order,
	// so the Unterminated* rules only fire when the well-formed rule before
	// them cannot match, and Invalid catches any remaining byte.
	clickhouseLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Comment", Pattern: `--[^\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "UnterminatedComment", Pattern: `/\*[\s\S]*`},
		{Name: "String", Pattern: `'([^'\\]|\\[\s\S])*'|"([^"\\]|\\[\s\S])*"`},
		{Name: "UnterminatedString", Pattern: `'([^'\\]|\\[\s\S])*\\?|"([^"\\]|\\[\s\S])*\\?`},
		{Name: "Number", Pattern: `\d+(\.\d+)?([eE][+-]?\d+)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Operator", Pattern: `->|::|!=|<=|>=|[-+*/%=<>()\[\],.;:]`},
		{Name: "Invalid", Pattern: `[\s\S]`},
	})

	symbolNames = invertSymbols(clickhouseLexer.Symbols())
)

func invertSymbols(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string, len(symbols))
	for name, typ := range symbols {
		names[typ] = name
	}
	return names
}

// Lexer turns input text into tokens on demand. A Lexer is single-use;
// restart from a saved offset with NewLexerAt.
type Lexer struct {
	input string
	base  int
	raw   lexer.Lexer
	err   error
	done  bool
}

// NewLexer creates a lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	return NewLexerAt(input, 0)
}

// NewLexerAt creates a lexer that starts scanning input at the byte offset.
// Spans of the produced tokens are relative to the whole input.
func NewLexerAt(input string, offset int) *Lexer {
	offset = min(max(offset, 0), len(input))
	l := &Lexer{input: input, base: offset}

	raw, err := clickhouseLexer.LexString("", input[offset:])
	if err != nil {
		l.err = newError(ErrLex, input, offset, err.Error())
	}
	l.raw = raw
	return l
}

// Next returns the next token, trivia included. After the input is
// exhausted it keeps returning an EOF token.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	eof := Token{Kind: TokenEOF, Span: Span{Start: len(l.input), End: len(l.input)}}
	if l.done {
		return eof, nil
	}

	raw, err := l.raw.Next()
	if err != nil {
		l.err = newError(ErrLex, l.input, l.base, err.Error())
		return Token{}, l.err
	}
	if raw.EOF() {
		l.done = true
		return eof, nil
	}

	start := l.base + raw.Pos.Offset
	span := Span{Start: start, End: start + len(raw.Value)}

	switch symbolNames[raw.Type] {
	case "Whitespace":
		return Token{Kind: TokenWhitespace, Text: raw.Value, Span: span}, nil
	case "Comment", "MultilineComment":
		return Token{Kind: TokenComment, Text: raw.Value, Span: span}, nil
	case "String":
		return Token{Kind: TokenString, Text: raw.Value, Span: span}, nil
	case "Number":
		return Token{Kind: TokenNumber, Text: raw.Value, Span: span}, nil
	case "Ident":
		return Token{Kind: TokenIdent, Text: raw.Value, Span: span}, nil
	case "Operator":
		return Token{Kind: TokenOperator, Text: raw.Value, Span: span}, nil
	case "UnterminatedComment":
		l.err = newError(ErrLex, l.input, start, "unterminated block comment")
	case "UnterminatedString":
		l.err = newError(ErrLex, l.input, start, "unterminated string literal")
	default:
		l.err = newError(ErrLex, l.input, start, "invalid character "+quoteText(raw.Value))
	}
	return Token{}, l.err
}

// Tokens returns a lazy sequence of tokens ending with EOF. Iteration stops
// after the first error.
func (l *Lexer) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) || tok.Kind == TokenEOF {
				return
			}
		}
	}
}

// Tokenize lexes the whole input, trivia included, up to but excluding EOF.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	for tok, err := range NewLexer(input).Tokens() {
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
