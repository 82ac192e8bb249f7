package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/r-k-jonynas/chparse/pkg/parser"
)

// RequireValidSQL asserts that the file at path parses without errors.
func RequireValidSQL(t *testing.T, path string) {
	t.Helper()

	_, err := parser.ParseFile(path)
	require.NoError(t, err, "File should contain valid SQL: %s", path)
}

// RequireSQLEqual asserts that two SQL inputs hold structurally equal
// statements, ignoring layout and comments.
func RequireSQLEqual(t *testing.T, expected, actual string) {
	t.Helper()

	expectedSQL, err := parser.ParseString(expected)
	require.NoError(t, err, "Expected SQL should be valid")

	actualSQL, err := parser.ParseString(actual)
	require.NoError(t, err, "Actual SQL should be valid")

	require.Len(t, actualSQL.Statements, len(expectedSQL.Statements),
		"SQL should have same number of statements")
	for i, stmt := range expectedSQL.Statements {
		require.True(t, stmt.Equal(actualSQL.Statements[i]),
			"Statement %d differs:\nexpected: %s\nactual:   %s", i, stmt, actualSQL.Statements[i])
	}
}

// RequireError asserts that an error occurred and optionally checks the message
func RequireError(t *testing.T, err error, msgContains ...string) {
	t.Helper()

	require.Error(t, err, "Expected an error")

	for _, msg := range msgContains {
		require.Contains(t, err.Error(), msg, "Error message should contain: %s", msg)
	}
}

// RequireFilePermissions asserts that a file has specific permissions
func RequireFilePermissions(t *testing.T, path string, expectedMode os.FileMode) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err, "Failed to stat file: %s", path)

	actualMode := info.Mode().Perm()
	require.Equal(t, expectedMode, actualMode,
		"File %s should have permissions %o, got %o", path, expectedMode, actualMode)
}
