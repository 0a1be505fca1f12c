package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/eriklarko/propositions/src/syntax"
)

const DefaultPath = "propositions.yaml"

var validate = validator.New()

type Config struct {
	// which operator table to use, "standard" or "extended"
	Grammar string `yaml:"grammar" validate:"required,oneof=standard extended"`
	// notation formulas are read in, "infix" or "polish"
	Notation string `yaml:"notation" validate:"required,oneof=infix polish"`
	// how many formulas `check` parses concurrently
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`
	// where substitution map files are looked up when given as relative paths
	SubstitutionsDir string `yaml:"substitutions-dir,omitempty"`

	// where the config was loaded from, and where it will be written to
	Path string `yaml:"-"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Grammar:  syntax.Standard.Name(),
		Notation: string(syntax.Infix),
		Workers:  4,
		Path:     DefaultPath,
	}
}

// LoadConfig reads the config file at path. Keys missing from the file keep
// their default values. If the file does not exist the returned error
// satisfies os.IsNotExist.
func LoadConfig(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		// not wrapped so that os.IsNotExist keeps working for callers
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	config.Path = path

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// Validate checks that all values are within their allowed ranges.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Write persists the config to c.Path.
func (c *Config) Write() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid config: %w", err)
	}

	contents, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(c.Path, contents, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", c.Path, err)
	}
	// WriteFile keeps the permissions of files that already exist
	if err := os.Chmod(c.Path, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on config file %s: %w", c.Path, err)
	}
	return nil
}

// GrammarTable returns the operator table named by c.Grammar.
func (c *Config) GrammarTable() (*syntax.Grammar, error) {
	switch c.Grammar {
	case syntax.Standard.Name():
		return syntax.Standard, nil
	case syntax.Extended.Name():
		return syntax.Extended, nil
	default:
		return nil, fmt.Errorf("unknown grammar '%s'", c.Grammar)
	}
}

// InputNotation returns the notation named by c.Notation.
func (c *Config) InputNotation() (syntax.Notation, error) {
	return syntax.ParseNotation(c.Notation)
}

// SubstitutionPath resolves the path of a substitution map file. Relative
// paths are taken relative to SubstitutionsDir when it is set.
func (c *Config) SubstitutionPath(name string) string {
	if c.SubstitutionsDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.SubstitutionsDir, name)
}
