package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/r-k-jonynas/chparse/pkg/parser"
)

func TestInsert_Golden(t *testing.T) {
	t.Parallel()

	runStatementTests(t, "insert", []statementTest{
		{
			name: "values",
			sql:  "insert into db.t (id, name) values (1, 'a'), (2, 'b')",
		},
		{
			name: "select",
			sql:  "INSERT INTO t SELECT id FROM s",
		},
		{
			name: "format",
			sql:  "INSERT INTO t FORMAT JSONEachRow",
		},
	})
}

func TestInsert_Values(t *testing.T) {
	t.Parallel()

	sql := "INSERT INTO t (id) VALUES (1), (2)"
	stmt := parseOne[*InsertStmt](t, sql)

	require.Equal(t, Span{Start: 0, End: len(sql)}, stmt.Span)
	require.Equal(t, "t", stmt.Table.String())
	require.Len(t, stmt.Columns, 1)
	require.Equal(t, "id", stmt.Columns[0].Name)

	require.Len(t, stmt.Values, 2)
	require.Len(t, stmt.Values[0].Exprs, 1)
	require.Equal(t, "1", stmt.Values[0].Exprs[0].String())
	require.Equal(t, "2", stmt.Values[1].Exprs[0].String())
	require.Nil(t, stmt.Query)
	require.Nil(t, stmt.Format)

	require.Equal(t, sql, stmt.String())
}

func TestInsert_Sources(t *testing.T) {
	t.Parallel()

	t.Run("select", func(t *testing.T) {
		t.Parallel()

		stmt := parseOne[*InsertStmt](t, "INSERT INTO db.t SELECT * FROM s")
		require.Equal(t, "db", stmt.Table.Database.Name)
		require.Empty(t, stmt.Columns)
		require.Empty(t, stmt.Values)
		require.NotNil(t, stmt.Query)
		require.Equal(t, "SELECT * FROM s", stmt.Query.String())
	})

	t.Run("with select", func(t *testing.T) {
		t.Parallel()

		stmt := parseOne[*InsertStmt](t, "INSERT INTO t (a) WITH 1 AS one SELECT one")
		require.NotNil(t, stmt.Query)
		require.Len(t, stmt.Query.With, 1)
	})

	t.Run("format", func(t *testing.T) {
		t.Parallel()

		stmt := parseOne[*InsertStmt](t, "INSERT INTO t FORMAT CSV")
		require.Equal(t, "CSV", stmt.Format.Name)
		require.Equal(t, "INSERT INTO t FORMAT CSV", stmt.String())
	})

	t.Run("row values are expressions", func(t *testing.T) {
		t.Parallel()

		stmt := parseOne[*InsertStmt](t, "INSERT INTO t VALUES (now(), -1, [1, 2], concat('x', 'y'))")
		require.Len(t, stmt.Values, 1)
		require.Len(t, stmt.Values[0].Exprs, 4)
	})
}

func TestInsert_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		kind   ErrorKind
		offset int
	}{
		{"missing into", "INSERT t VALUES (1)", ErrMissingToken, 6},
		{"missing source", "INSERT INTO t", ErrUnexpectedToken, 13},
		{"unknown source", "INSERT INTO t TABLE", ErrUnexpectedToken, 14},
		{"empty row", "INSERT INTO t VALUES ()", ErrExpression, 22},
		{"unclosed columns", "INSERT INTO t (a VALUES (1)", ErrMissingToken, 16},
		{"values without rows", "INSERT INTO t VALUES", ErrMissingToken, 20},
		{"format without name", "INSERT INTO t FORMAT", ErrUnexpectedToken, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requireErrorKind(t, tt.input, tt.kind, tt.offset)
		})
	}
}
