package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/r-k-jonynas/chparse/pkg/cmd/testutil"
	"github.com/r-k-jonynas/chparse/pkg/config"
	"github.com/r-k-jonynas/chparse/pkg/consts"
)

func TestRootCommand_Commands(t *testing.T) {
	root := NewCommand(Version{})

	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"fmt", "parse", "tokens"}, names)
}

func TestRootCommand_Version(t *testing.T) {
	res := run(t, newFixture(t), "--version")
	require.NoError(t, res.Err)
	require.Contains(t, res.Stdout, "v1.2.3")
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	f := testutil.TestFiles(t).
		WithFile("custom.yaml", "format:\n  indent_size: 2\n  align_columns: false\n").
		WithFile("users.sql", unformattedTable)

	root := NewCommand(Version{})
	res := testutil.RunCommand(t, root, "--config", f.Path("custom.yaml"), "fmt", f.Path("users.sql"))
	require.NoError(t, res.Err)
	require.Equal(t, "CREATE TABLE users (\n  id UInt64,\n  name String\n)\nENGINE = MergeTree\nORDER BY id;\n", res.Stdout)
}

func TestRootCommand_ConfigEnvVar(t *testing.T) {
	f := testutil.TestFiles(t).
		WithFile("env.yaml", "format:\n  uppercase_keywords: false\n").
		WithFile("users.sql", unformattedTable)
	t.Setenv(consts.ConfigEnvVar, f.Path("env.yaml"))

	res := testutil.RunCommand(t, NewCommand(Version{}), "fmt", f.Path("users.sql"))
	require.NoError(t, res.Err)
	require.Equal(t, "create table users (\n    id   UInt64,\n    name String\n)\nengine = MergeTree\norder by id;\n", res.Stdout)
}

func TestRootCommand_ConfigErrors(t *testing.T) {
	f := testutil.TestFiles(t).
		WithFile("bad.yaml", "format:\n  indent: 2\n").
		WithFile("users.sql", unformattedTable)

	t.Run("explicit file must exist", func(t *testing.T) {
		res := testutil.RunCommand(t, NewCommand(Version{}), "-c", f.Path("missing.yaml"), "fmt", f.Path("users.sql"))
		testutil.RequireError(t, res.Err, "failed to load config", "failed to open file")
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		res := testutil.RunCommand(t, NewCommand(Version{}), "-c", f.Path("bad.yaml"), "fmt", f.Path("users.sql"))
		testutil.RequireError(t, res.Err, "failed to load config", "failed to unmarshal config")
	})
}

func TestRootCommand_Verbose(t *testing.T) {
	cfg := config.Default()
	cfg.Parser.LogNotes = true
	f := testutil.TestFiles(t).
		WithConfig(cfg).
		WithFile("query.sql", "WITH recent AS (SELECT 1) SELECT * FROM recent")

	t.Run("quiet by default", func(t *testing.T) {
		res := run(t, f, "fmt", f.Path("query.sql"))
		require.NoError(t, res.Err)
		require.Empty(t, res.Stderr)
	})

	t.Run("debug logging", func(t *testing.T) {
		res := run(t, f, "--verbose", "fmt", f.Path("query.sql"))
		require.NoError(t, res.Err)
		require.Contains(t, res.Stderr, "loaded config")
		require.Contains(t, res.Stderr, "resolved grammar ambiguity")
		require.Contains(t, res.Stderr, "kind=CTE")
		require.Contains(t, res.Stderr, "formatted file")
	})

	t.Run("notes need log_notes", func(t *testing.T) {
		g := newFixture(t).WithFile("query.sql", "WITH recent AS (SELECT 1) SELECT * FROM recent")

		res := run(t, g, "--verbose", "fmt", g.Path("query.sql"))
		require.NoError(t, res.Err)
		require.Contains(t, res.Stderr, "formatted file")
		require.NotContains(t, res.Stderr, "resolved grammar ambiguity")
	})
}
