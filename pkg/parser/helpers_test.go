package parser_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/r-k-jonynas/chparse/pkg/format"
	. "github.com/r-k-jonynas/chparse/pkg/parser"
)

// statementTest defines a single test case for statement parsing
type statementTest struct {
	name string // Test name, also used as golden file name
	sql  string // Input SQL to parse
}

// runStatementTests runs golden file tests for a category of statements.
// Each test case parses the SQL, formats it, and compares against a golden file
// at testdata/<category>/<name>.sql
func runStatementTests(t *testing.T, category string, tests []statementTest) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := ParseString(tt.sql)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, format.Format(&buf, format.Defaults, parsed.Statements...))

			golden.Assert(t, buf.String()+"\n", category+"/"+tt.name+".sql")
		})
	}
}

// parseOne parses sql and returns its single statement as T.
func parseOne[T Statement](t *testing.T, sql string) T {
	t.Helper()

	tree, err := ParseString(sql)
	require.NoError(t, err)
	require.Len(t, tree.Statements, 1)

	stmt, ok := tree.Statements[0].(T)
	require.True(t, ok, "unexpected statement type %T", tree.Statements[0])
	return stmt
}

// parseExpr parses sql as the only projection of a SELECT.
func parseExpr(t *testing.T, sql string) Expr {
	t.Helper()

	stmt := parseOne[*SelectStmt](t, "SELECT "+sql)
	require.Len(t, stmt.Projection, 1)

	expr, ok := stmt.Projection[0].(Expr)
	require.True(t, ok, "projection is %T", stmt.Projection[0])
	return expr
}

// requireErrorKind asserts that parsing sql fails with kind at offset.
func requireErrorKind(t *testing.T, sql string, kind ErrorKind, offset int) *Error {
	t.Helper()

	_, err := ParseString(sql)
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, kind, perr.Kind, perr.Error())
	require.Equal(t, offset, perr.Offset, perr.Error())
	return perr
}
