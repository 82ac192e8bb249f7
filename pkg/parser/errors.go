package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// ErrLex reports an unterminated string literal, an unterminated block
	// comment or a byte no token class accepts.
	ErrLex ErrorKind = iota + 1
	// ErrUnexpectedToken reports a token that is no valid continuation.
	ErrUnexpectedToken
	// ErrMissingToken reports an expected keyword or punctuation that is absent.
	ErrMissingToken
	// ErrUnknownType reports a type position holding no known type name.
	ErrUnknownType
	// ErrUnknownEngine reports an engine name outside the engine table.
	ErrUnknownEngine
	// ErrExpression reports a position where no expression atom can start.
	ErrExpression
)

var errorKindNames = map[ErrorKind]string{
	ErrLex:             "LexError",
	ErrUnexpectedToken: "UnexpectedTokenError",
	ErrMissingToken:    "MissingTokenError",
	ErrUnknownType:     "UnknownTypeError",
	ErrUnknownEngine:   "UnknownEngineError",
	ErrExpression:      "ExpressionParseError",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Error is the structured failure returned for invalid input. Parsing stops
// at the first Error; no partial tree is returned with it.
type Error struct {
	Kind    ErrorKind
	Offset  int
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d, column %d (offset %d): %s", e.Kind, e.Line, e.Column, e.Offset, e.Message)
}

func newError(kind ErrorKind, input string, offset int, message string) *Error {
	line, column := position(input, offset)
	return &Error{
		Kind:    kind,
		Offset:  offset,
		Line:    line,
		Column:  column,
		Message: message,
	}
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind.
func IsKind(err error, kind ErrorKind) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == kind
	}
	return false
}

// position converts a byte offset into a 1-based line and column.
func position(input string, offset int) (int, int) {
	offset = min(max(offset, 0), len(input))
	before := input[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - strings.LastIndexByte(before, '\n')
	return line, column
}

func quoteText(s string) string {
	return strconv.Quote(s)
}

// NoteKind identifies which grammar ambiguity a Note records.
type NoteKind int

const (
	// NoteLambda records that a token sequence was read as a lambda rather
	// than an identifier or a parenthesized expression.
	NoteLambda NoteKind = iota + 1
	// NoteCTE records that a WITH item was read as a named subquery.
	NoteCTE
	// NoteCSE records that a WITH item was read as a named scalar expression.
	NoteCSE
)

var noteKindNames = map[NoteKind]string{
	NoteLambda: "Lambda",
	NoteCTE:    "CTE",
	NoteCSE:    "CSE",
}

func (k NoteKind) String() string {
	if name, ok := noteKindNames[k]; ok {
		return name
	}
	return "NoteKind(" + strconv.Itoa(int(k)) + ")"
}

// Note is an informational record of how an ambiguous construct was
// resolved. Notes never make a parse fail.
type Note struct {
	Kind    NoteKind
	Offset  int
	Message string
}

func (n Note) String() string {
	return fmt.Sprintf("%s at offset %d: %s", n.Kind, n.Offset, n.Message)
}
