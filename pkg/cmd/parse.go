package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/r-k-jonynas/chparse/pkg/parser"
)

type (
	// treeDump is the document written by the parse command.
	treeDump struct {
		Tree  *treeNode  `json:"tree" yaml:"tree"`
		Notes []noteDump `json:"notes,omitempty" yaml:"notes,omitempty"`
	}

	// treeNode is the serializable form of one syntax node. SQL is set on
	// leaves only; Detail names the operator, keyword or constructor of
	// inner nodes that carry one.
	treeNode struct {
		Kind     string      `json:"kind" yaml:"kind"`
		Start    int         `json:"start" yaml:"start"`
		End      int         `json:"end" yaml:"end"`
		Detail   string      `json:"detail,omitempty" yaml:"detail,omitempty"`
		SQL      string      `json:"sql,omitempty" yaml:"sql,omitempty"`
		Comments []string    `json:"comments,omitempty" yaml:"comments,omitempty"`
		Children []*treeNode `json:"children,omitempty" yaml:"children,omitempty"`
	}

	noteDump struct {
		Kind    string `json:"kind" yaml:"kind"`
		Offset  int    `json:"offset" yaml:"offset"`
		Message string `json:"message" yaml:"message"`
	}
)

// parseCmd creates a CLI command that parses a SQL file and dumps its syntax
// tree, with spans and ambiguity notes, as YAML or JSON.
//
// Flags:
//   - --output, -o: Output encoding, yaml (default) or json
//
// Examples:
//
//	# Dump the tree of a schema file
//	chparse parse schema.sql
//
//	# Dump as JSON for further processing
//	chparse parse -o json queries.sql | jq '.notes'
//
// A file that does not parse makes the command fail with the error position.
func (a *app) parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a SQL file and print its syntax tree",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output encoding (yaml or json)",
				Value:   "yaml",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := requireOneArg(cmd, "file")
			if err != nil {
				return err
			}

			encoding := cmd.String("output")
			if encoding != "yaml" && encoding != "json" {
				return errors.Errorf("unsupported output encoding: %s", encoding)
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "failed to read file: %s", path)
			}

			tree, err := a.parseSource(path, string(content))
			if err != nil {
				return err
			}

			return writeTree(cmd.Root().Writer, encoding, tree)
		},
	}
}

// writeTree encodes the tree of file to w.
func writeTree(w io.Writer, encoding string, file *parser.SourceFile) error {
	doc := treeDump{Tree: dumpNode(file)}
	for _, note := range file.Notes {
		doc.Notes = append(doc.Notes, noteDump{
			Kind:    note.Kind.String(),
			Offset:  note.Offset,
			Message: note.Message,
		})
	}

	if encoding == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(doc), "failed to encode tree as JSON")
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "failed to encode tree as YAML")
	}
	return errors.Wrap(enc.Close(), "failed to encode tree as YAML")
}

// dumpNode converts n and its descendants into treeNodes.
func dumpNode(n parser.Node) *treeNode {
	span := n.Bounds()
	node := &treeNode{
		Kind:   n.Kind().String(),
		Start:  span.Start,
		End:    span.End,
		Detail: nodeDetail(n),
	}

	if c, ok := n.(parser.CommentAccessor); ok {
		node.Comments = c.GetLeadingComments()
	}

	children := n.Children()
	if len(children) == 0 {
		node.SQL = n.String()
	}
	for _, child := range children {
		node.Children = append(node.Children, dumpNode(child))
	}
	return node
}

func nodeDetail(n parser.Node) string {
	switch n := n.(type) {
	case *parser.BinaryExpr:
		return n.Op
	case *parser.UnaryExpr:
		return n.Op
	case *parser.PrimitiveType:
		return n.Name
	case *parser.ComplexType:
		return string(n.Constructor)
	case *parser.EngineRef:
		return n.Name
	case *parser.TableClause:
		return n.Clause.String()
	case *parser.ColumnModifier:
		return string(n.Keyword)
	case *parser.ColumnDefinition:
		return n.Nullability.String()
	case *parser.OrderByItem:
		return n.Direction
	case *parser.Cast:
		if n.Postfix {
			return "::"
		}
		return "CAST"
	case *parser.CreateTableStmt:
		if n.IfNotExists {
			return "IF NOT EXISTS"
		}
	}
	return ""
}
