// Package format renders parsed ClickHouse statements as canonical SQL.
//
// This package takes the statements of a parser.SourceFile and generates
// clean, readable SQL with consistent indentation, keyword casing and column
// alignment. Formatting a tree and parsing the output again yields a tree
// that is Equal to the original.
//
// Key features:
//   - Consistent indentation and spacing
//   - One clause per line for CREATE TABLE, SELECT and INSERT
//   - Standardized keyword casing
//   - Column alignment in table definitions
//   - Leading comments kept above their statement
//
// Usage:
//
//	// Object-oriented API with default options
//	formatter := format.New(format.Defaults)
//
//	// Object-oriented API with custom options
//	formatter := format.New(format.FormatterOptions{
//		IndentSize:        2,
//		UppercaseKeywords: false,
//		AlignColumns:      true,
//	})
//
//	var buf bytes.Buffer
//	err := formatter.Format(&buf, statements...)
//
//	// Functional API
//	var buf bytes.Buffer
//	err := format.Format(&buf, format.Defaults, statements...)
//
//	// Whole source files
//	tree, _ := parser.ParseString("SELECT 1; SELECT 2")
//	var buf bytes.Buffer
//	err := format.FormatSQL(&buf, format.Defaults, tree)
package format
