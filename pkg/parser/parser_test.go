package parser_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	. "github.com/r-k-jonynas/chparse/pkg/parser"
)

const mixedSQL = `-- schema
CREATE TABLE IF NOT EXISTS analytics.events ON CLUSTER main (
    id UInt64 CODEC(Delta, ZSTD(3)),
    ts DateTime DEFAULT now() COMMENT 'event time',
    tags Array(LowCardinality(String)),
    point Tuple(lat Float64, lon Float64),
    attrs Nested(key String, value Float64)
) ENGINE = ReplacingMergeTree(ts)
PARTITION BY toYYYYMM(ts)
ORDER BY (id, ts)
SETTINGS index_granularity = 8192;

/* recent ids */
WITH recent AS (SELECT id, ts FROM analytics.events WHERE ts > now() - INTERVAL 1 DAY), 10 AS threshold
SELECT count(*) AS total, arrayMap(x -> x * 2, [1, 2]) AS doubled, CAST(id AS String), -id::Int64
FROM recent
WHERE id IN (SELECT id FROM blocked) AND NOT (id = 0)
GROUP BY id
ORDER BY total DESC
LIMIT 10;

INSERT INTO analytics.events (id, ts) VALUES (1, now()), (2, now() - 1)
`

func TestParse_Reader(t *testing.T) {
	t.Parallel()

	tree, err := Parse(strings.NewReader(mixedSQL))
	require.NoError(t, err)
	require.Len(t, tree.Statements, 3)
	require.IsType(t, &CreateTableStmt{}, tree.Statements[0])
	require.IsType(t, &SelectStmt{}, tree.Statements[1])
	require.IsType(t, &InsertStmt{}, tree.Statements[2])

	_, err = Parse(iotest.ErrReader(errors.New("boom")))
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to read SQL")
	require.ErrorContains(t, err, "boom")
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte(mixedSQL), 0o644))

	fromFile, err := ParseFile(path)
	require.NoError(t, err)

	fromString, err := ParseString(mixedSQL)
	require.NoError(t, err)
	require.True(t, fromFile.Equal(fromString))

	_, err = ParseFile(filepath.Join(dir, "missing.sql"))
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to read file")
}

func TestParseString_Empty(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   \n\t", "-- only a comment\n", "/* block */"} {
		tree, err := ParseString(input)
		require.NoError(t, err, input)
		require.Empty(t, tree.Statements)
		require.Equal(t, Span{Start: 0, End: len(input)}, tree.Span)
	}
}

func TestParseString_Statements(t *testing.T) {
	t.Parallel()

	t.Run("terminators are optional", func(t *testing.T) {
		t.Parallel()

		tree, err := ParseString("SELECT 1; SELECT 2 SELECT 3;")
		require.NoError(t, err)
		require.Len(t, tree.Statements, 3)
		require.Equal(t, "SELECT 1;\nSELECT 2;\nSELECT 3;", tree.String())
	})

	t.Run("spans exclude the terminator", func(t *testing.T) {
		t.Parallel()

		tree, err := ParseString("SELECT 1;  INSERT INTO t VALUES (1)")
		require.NoError(t, err)
		require.Equal(t, Span{Start: 0, End: 8}, tree.Statements[0].Bounds())
		require.Equal(t, Span{Start: 11, End: 35}, tree.Statements[1].Bounds())
	})

	t.Run("unknown statement", func(t *testing.T) {
		t.Parallel()

		perr := requireErrorKind(t, "DROP TABLE t", ErrUnexpectedToken, 0)
		require.Contains(t, perr.Message, "expected CREATE, SELECT, WITH or INSERT")
	})

	t.Run("garbage after a statement", func(t *testing.T) {
		t.Parallel()

		perr := requireErrorKind(t, "SELECT 1 garbage", ErrUnexpectedToken, 9)
		require.Contains(t, perr.Message, "unexpected garbage after 1")
	})

	t.Run("stray closing paren", func(t *testing.T) {
		t.Parallel()
		requireErrorKind(t, "SELECT 1)", ErrUnexpectedToken, 8)
	})

	t.Run("double terminator", func(t *testing.T) {
		t.Parallel()
		requireErrorKind(t, "SELECT 1;;", ErrUnexpectedToken, 9)
	})
}

func TestParseString_Errors(t *testing.T) {
	t.Parallel()

	t.Run("position", func(t *testing.T) {
		t.Parallel()

		_, err := ParseString("SELECT 1;\nSELECT FROM")
		require.Error(t, err)
		require.True(t, IsKind(err, ErrExpression))
		require.False(t, IsKind(err, ErrLex))

		var perr *Error
		require.ErrorAs(t, err, &perr)
		require.Equal(t, 17, perr.Offset)
		require.Equal(t, 2, perr.Line)
		require.Equal(t, 8, perr.Column)
		require.Equal(t, "ExpressionParseError at line 2, column 8 (offset 17): "+perr.Message, perr.Error())
		require.True(t, strings.HasPrefix(err.Error(), "failed to parse SQL: "))
	})

	t.Run("lex errors take priority", func(t *testing.T) {
		t.Parallel()

		perr := requireErrorKind(t, "SELECT 'abc", ErrLex, 7)
		require.Contains(t, perr.Message, "unterminated string literal")
	})

	t.Run("lex error after a complete statement", func(t *testing.T) {
		t.Parallel()
		requireErrorKind(t, "SELECT 1 FROM t @", ErrLex, 16)
	})

	t.Run("lex error past a syntax error", func(t *testing.T) {
		t.Parallel()

		perr := requireErrorKind(t, "SELECT ) FROM t; SELECT 'unterminated", ErrLex, 24)
		require.False(t, IsKind(perr, ErrExpression))
		requireErrorKind(t, "SELECT ) FROM t; SELECT 'closed'", ErrExpression, 7)
	})

	t.Run("kind names", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "LexError", ErrLex.String())
		require.Equal(t, "MissingTokenError", ErrMissingToken.String())
		require.Equal(t, "UnknownEngineError", ErrUnknownEngine.String())
		require.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
		require.False(t, IsKind(errors.New("plain"), ErrLex))
	})
}

func TestParseString_LeadingComments(t *testing.T) {
	t.Parallel()

	tree, err := ParseString("-- first\n/* block */\nSELECT 1;\n-- second\nINSERT INTO t FORMAT CSV; -- trailing\n")
	require.NoError(t, err)
	require.Len(t, tree.Statements, 2)

	require.Equal(t, []string{"-- first", "/* block */"}, tree.Statements[0].GetLeadingComments())
	require.Equal(t, []string{"-- second"}, tree.Statements[1].GetLeadingComments())

	// Comments inside a statement are not attached to it.
	stmt := parseOne[*SelectStmt](t, "SELECT /* inline */ 1")
	require.Empty(t, stmt.GetLeadingComments())
}

func TestParseString_Notes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tree, err := ParseString(mixedSQL, WithLogger(logger))
	require.NoError(t, err)

	kinds := make([]NoteKind, 0, len(tree.Notes))
	for _, note := range tree.Notes {
		kinds = append(kinds, note.Kind)
	}
	require.Equal(t, []NoteKind{NoteCTE, NoteLambda}, kinds)
	require.Equal(t, "CTE", tree.Notes[0].Kind.String())
	require.True(t, strings.HasPrefix(tree.Notes[1].String(), "Lambda at offset "))

	logged := buf.String()
	require.Equal(t, 2, strings.Count(logged, "resolved grammar ambiguity"))
	require.Contains(t, logged, "kind=CTE")
	require.Contains(t, logged, "kind=Lambda")

	// A nil logger keeps the silent default.
	_, err = ParseString("SELECT x -> x", WithLogger(nil))
	require.NoError(t, err)
}

func TestWalk_Spans(t *testing.T) {
	t.Parallel()

	tree, err := ParseString(mixedSQL)
	require.NoError(t, err)

	var visited int
	Walk(tree, func(n Node) bool {
		visited++
		parent := n.Bounds()
		require.LessOrEqual(t, parent.Start, parent.End, n.Kind().String())

		prevEnd := parent.Start
		for _, child := range n.Children() {
			span := child.Bounds()
			require.GreaterOrEqual(t, span.Start, prevEnd, "%s inside %s", child.Kind(), n.Kind())
			require.LessOrEqual(t, span.End, parent.End, "%s inside %s", child.Kind(), n.Kind())
			prevEnd = span.End
		}
		return true
	})
	require.Greater(t, visited, 50)
}

func TestWalk_SkipChildren(t *testing.T) {
	t.Parallel()

	tree, err := ParseString("SELECT a + 1")
	require.NoError(t, err)

	var kinds []NodeKind
	Walk(tree, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	require.Equal(t, []NodeKind{KindSourceFile, KindSelect, KindBinaryExpr, KindIdentifier, KindNumber}, kinds)

	kinds = nil
	Walk(tree, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != KindBinaryExpr
	})
	require.Equal(t, []NodeKind{KindSourceFile, KindSelect, KindBinaryExpr}, kinds)
}
