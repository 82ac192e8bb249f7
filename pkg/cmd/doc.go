// Package cmd provides the CLI commands of the chparse tool.
//
// # Available Commands
//
//   - fmt: Format SQL files or directory trees, to stdout or in place
//   - parse: Print the syntax tree of a SQL file as YAML or JSON
//   - tokens: Print the token stream of a SQL file
//
// # Command Structure
//
// Each command is built by a method on the shared app value and returns a
// *cli.Command, following the urfave/cli/v3 pattern. The root command's
// Before hook loads chparse.yaml and installs the logger every command uses.
//
// # Global Options
//
//   - --config, -c: Config file (defaults to chparse.yaml, or $CHPARSE_CONFIG)
//   - --verbose: Log at debug level
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	chparse fmt -w db/                 # Format every .sql file under db/
//	chparse fmt -l db/                 # List files that are not formatted
//	chparse parse -o json query.sql    # Dump the syntax tree as JSON
//	chparse tokens --trivia query.sql  # Show every token, whitespace included
//
// Syntax errors are reported as path:line:column followed by the error kind
// and message.
package cmd
