// Package parser parses ClickHouse CREATE TABLE, SELECT and INSERT statements
// into an immutable syntax tree.
//
// The package is layered the way the grammar is:
//
//   - Lexer turns text into tokens with byte spans, whitespace and comments
//     included, using a github.com/alecthomas/participle/v2 lexer definition.
//   - The keyword matcher classifies identifiers. SQL keywords match in any
//     letter case; type, container and engine names match exactly, except
//     DateTime which ClickHouse accepts in any case.
//   - A recursive-descent parser builds statements, with a precedence climber
//     for expressions. All binary operators share one precedence level and
//     associate to the left; unary -, + and NOT bind tighter.
//
// Key features:
//   - Structured errors (*Error) with kind, byte offset, line and column
//   - Notes recording how ambiguous input was read (lambda, CTE, CSE)
//   - Leading comments attached to statements
//   - Span-insensitive structural equality and depth-first walking
//   - Canonical SQL rendering of every node via String
//
// Basic usage:
//
//	// Parse SQL string
//	tree, err := parser.ParseString(`
//	    CREATE TABLE analytics.events (id UInt64, ts DateTime) ENGINE = MergeTree ORDER BY id;
//	    WITH recent AS (SELECT id FROM analytics.events) SELECT count(*) FROM recent;
//	    INSERT INTO analytics.events (id) VALUES (1), (2);
//	`)
//
//	// Parse from file
//	tree, err := parser.ParseFile("schema.sql")
//
//	// Log ambiguity resolutions
//	tree, err := parser.ParseString(sql, parser.WithLogger(slog.Default()))
//
// A parse either returns a complete tree or an error; there is no error
// recovery and no partial tree.
package parser
