package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/r-k-jonynas/chparse/pkg/consts"
	"github.com/r-k-jonynas/chparse/pkg/format"
	"github.com/r-k-jonynas/chparse/pkg/parser"
)

type (
	// Format holds the settings used by the fmt command.
	Format struct {
		// IndentSize is the number of spaces per indent level
		IndentSize int `yaml:"indent_size"`

		// UppercaseKeywords renders SQL keywords in upper case, lower case otherwise
		UppercaseKeywords bool `yaml:"uppercase_keywords"`

		// AlignColumns pads column names in CREATE TABLE so the types line up
		AlignColumns bool `yaml:"align_columns"`

		// OnCluster adds ON CLUSTER to every CREATE TABLE that has none
		OnCluster string `yaml:"on_cluster,omitempty"`
	}

	// Parser holds parser settings.
	Parser struct {
		// LogNotes logs every grammar ambiguity resolution at debug level
		LogNotes bool `yaml:"log_notes"`
	}

	// Config represents the chparse.yaml configuration file.
	Config struct {
		Format Format `yaml:"format"`
		Parser Parser `yaml:"parser"`
	}
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Format: Format{
			IndentSize:        consts.DefaultIndentSize,
			UppercaseKeywords: format.Defaults.UppercaseKeywords,
			AlignColumns:      format.Defaults.AlignColumns,
		},
	}
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// Keys missing from the document keep their default values and an empty
// document yields the defaults. Unknown keys are rejected so that typos do
// not go unnoticed.
//
// Example:
//
//	yamlData := `
//	format:
//	  indent_size: 2
//	  uppercase_keywords: false
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Indent: %d\n", cfg.Format.IndentSize)
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if cfg.Format.IndentSize <= 0 {
		return nil, errors.Errorf("format.indent_size must be positive, got %d", cfg.Format.IndentSize)
	}

	return cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Resolve loads the configuration at path, falling back to Default when the
// file does not exist. Commands that work without a config file use it.
func Resolve(path string) (*Config, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat config file: %s", path)
	}

	return LoadConfigFile(path)
}

// FormatterOptions converts the format section into formatter options.
func (c *Config) FormatterOptions() format.FormatterOptions {
	return format.FormatterOptions{
		IndentSize:        c.Format.IndentSize,
		UppercaseKeywords: c.Format.UppercaseKeywords,
		AlignColumns:      c.Format.AlignColumns,
		OnCluster:         c.Format.OnCluster,
	}
}

// GetFormatter returns a formatter configured from the format section.
func (c *Config) GetFormatter() *format.Formatter {
	return format.New(c.FormatterOptions())
}

// ParserOptions returns the parse options implied by the parser section.
// Ambiguity notes go to logger only when log_notes is enabled.
func (c *Config) ParserOptions(logger *slog.Logger) []parser.Option {
	if !c.Parser.LogNotes || logger == nil {
		return nil
	}
	return []parser.Option{parser.WithLogger(logger)}
}
