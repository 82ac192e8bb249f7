package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/r-k-jonynas/chparse/pkg/parser"
)

func TestMatchKeyword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text     string
		expected Keyword
		ok       bool
	}{
		{"CREATE", KeywordCreate, true},
		{"create", KeywordCreate, true},
		{"CrEaTe", KeywordCreate, true},
		{"datetime", KeywordDateTime, true},
		{"Materialized", KeywordMaterialized, true},
		{"ttl", KeywordTTL, true},
		{"creat", "", false},
		{"users", "", false},
		{"MergeTree", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			kw, ok := MatchKeyword(tt.text)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, kw)
		})
	}
}

func TestIsReserved(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"select", "FROM", "and", "Where", "limit", "AS", "in", "is"} {
		require.True(t, IsReserved(text), text)
	}
	for _, text := range []string{
		"by", "KEY", "null", "if", "exists", "cluster", "cast", "interval", "DateTime", "user_id",
		"engine", "comment", "Format", "alias", "ttl", "default", "values", "table", "order", "desc",
	} {
		require.False(t, IsReserved(text), text)
	}
}

func TestMatchType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text      string
		canonical string
		ok        bool
	}{
		{"UInt64", "UInt64", true},
		{"String", "String", true},
		{"Decimal", "Decimal", true},
		{"DateTime64", "DateTime64", true},
		{"DateTime", "DateTime", true},
		{"datetime", "DateTime", true},
		{"DATETIME", "DateTime", true},
		{"dAtEtImE", "DateTime", true},
		{"STRING", "", false},
		{"uint64", "", false},
		{"datetime64", "", false},
		{"Array", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			name, ok := MatchType(tt.text)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.canonical, name)
		})
	}
}

func TestMatchContainer(t *testing.T) {
	t.Parallel()

	for _, c := range []Container{ContainerArray, ContainerTuple, ContainerMap, ContainerNested, ContainerNullable, ContainerLowCardinality} {
		got, ok := MatchContainer(string(c))
		require.True(t, ok, c)
		require.Equal(t, c, got)
	}

	_, ok := MatchContainer("array")
	require.False(t, ok)
	_, ok = MatchContainer("NULLABLE")
	require.False(t, ok)
}

func TestMatchEngine(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"MergeTree", "ReplacingMergeTree", "Kafka", "S3", "Null", "SQLite", "HDFS"} {
		require.True(t, MatchEngine(name), name)
	}
	for _, name := range []string{"mergetree", "MERGETREE", "Merge", "ReplicatedMergeTree", "null"} {
		require.False(t, MatchEngine(name), name)
	}
}
