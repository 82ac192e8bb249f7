package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/r-k-jonynas/chparse/pkg/parser"
)

func TestNode_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		a     string
		b     string
		equal bool
	}{
		{"whitespace and comments", "-- c\nSELECT  a+1", "SELECT a + 1", true},
		{"keyword case", "select a from t where a is not null", "SELECT a FROM t WHERE a IS NOT null", true},
		{"quote style", "SELECT 'a'", `SELECT "a"`, true},
		{"escaped string", `SELECT 'it\'s'`, `SELECT "it's"`, true},
		{"number spelling", "SELECT 1.0", "SELECT 1", false},
		{"identifier case", "SELECT a", "SELECT A", false},
		{"cast forms", "SELECT CAST(x AS String)", "SELECT x::String", false},
		{"lambda forms", "SELECT (x) -> x", "SELECT x -> x", false},
		{"grouping", "SELECT (a)", "SELECT a", false},
		{"order direction", "SELECT a ORDER BY a ASC", "SELECT a ORDER BY a", false},
		{"qualified table", "SELECT a FROM db.t", "SELECT a FROM t", false},
		{"statement count", "SELECT 1; SELECT 2", "SELECT 1", false},
		{"statement kind", "SELECT 1", "INSERT INTO t VALUES (1)", false},
		{"column nullability", "CREATE TABLE t (a UInt8 NULL) ENGINE = Memory", "CREATE TABLE t (a UInt8) ENGINE = Memory", false},
		{"engine args", "CREATE TABLE t (a UInt8) ENGINE = Log()", "CREATE TABLE t (a UInt8) ENGINE = Log", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := ParseString(tt.a)
			require.NoError(t, err)
			b, err := ParseString(tt.b)
			require.NoError(t, err)

			require.Equal(t, tt.equal, a.Equal(b))
			require.Equal(t, tt.equal, b.Equal(a))
		})
	}
}

func TestNode_EqualNil(t *testing.T) {
	t.Parallel()

	id := &Identifier{Name: "a"}
	require.False(t, id.Equal(nil))
	require.False(t, id.Equal((*Identifier)(nil)))
	require.False(t, id.Equal(&Number{Text: "a"}))
	require.True(t, id.Equal(&Identifier{Span: Span{Start: 4, End: 5}, Name: "a"}))
}

func TestNode_StringRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"create table if not exists db.t on cluster c (a UInt8 default 1 codec(ZSTD(1)), b datetime) engine = MergeTree order by a ttl b + interval 1 day settings x = 1 comment 'c'",
		"WITH top AS (SELECT id FROM t LIMIT 3), 1 AS one SELECT *, count(*) AS n FROM top WHERE NOT id IN (1, 2) GROUP BY id ORDER BY n DESC LIMIT 1",
		"SELECT arrayFilter((x, y) -> x > y, a, b), [1, [2]], CAST(- -1 AS Int8), x::Nullable(String), (SELECT 1)",
		"INSERT INTO db.t (a, b) VALUES (1, 'x'), (2, 'y')",
		"INSERT INTO t WITH 1 AS x SELECT x",
		"INSERT INTO t FORMAT Native",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			tree, err := ParseString(input)
			require.NoError(t, err)

			reparsed, err := ParseString(tree.String())
			require.NoError(t, err, tree.String())
			require.True(t, tree.Equal(reparsed), tree.String())
			require.Equal(t, tree.String(), reparsed.String())
		})
	}
}

func TestStringLiteral_Value(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text     string
		expected string
	}{
		{`'plain'`, "plain"},
		{`"double"`, "double"},
		{`''`, ""},
		{`'it\'s'`, "it's"},
		{`'tab\there'`, "tab\there"},
		{`'line\nbreak'`, "line\nbreak"},
		{`'back\\slash'`, `back\slash`},
		{`'nul\0'`, "nul\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			lit := &StringLiteral{Text: tt.text}
			require.Equal(t, tt.expected, lit.Value())
			require.Equal(t, tt.text, lit.String())
		})
	}
}

func TestNode_Kinds(t *testing.T) {
	t.Parallel()

	tree, err := ParseString("CREATE TABLE t (a UInt8) ENGINE = Memory; SELECT * FROM t; INSERT INTO t FORMAT CSV")
	require.NoError(t, err)

	require.Equal(t, KindSourceFile, tree.Kind())
	require.Equal(t, KindCreateTable, tree.Statements[0].Kind())
	require.Equal(t, KindSelect, tree.Statements[1].Kind())
	require.Equal(t, KindInsert, tree.Statements[2].Kind())

	require.Equal(t, "CreateTable", KindCreateTable.String())
	require.Equal(t, "OrderByItem", KindOrderByItem.String())
	require.Equal(t, "Unknown", NodeKind(0).String())
	require.Equal(t, "Ident", TokenIdent.String())
	require.Equal(t, "NOT NULL", NullabilityNotNull.String())
	require.Empty(t, NullabilityUnspecified.String())
}

func TestSpan(t *testing.T) {
	t.Parallel()

	s := Span{Start: 3, End: 10}
	require.Equal(t, s, s.Bounds())

	id := parseExpr(t, "abc")
	require.Equal(t, Span{Start: 7, End: 10}, id.Bounds())
}
