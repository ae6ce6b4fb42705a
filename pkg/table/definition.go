package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTable is returned for table files that cannot be built.
var ErrInvalidTable = errors.New("invalid transition table")

// Tokenizer modes.
const (
	TokenizeChars = "chars"
	TokenizeWords = "words"
)

// Format of a table file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Definition is the decoded form of a table file.
type Definition struct {
	Name        string           `json:"name" yaml:"name,omitempty" mapstructure:"name"`
	Description string           `json:"description" yaml:"description,omitempty" mapstructure:"description"`
	Initial     string           `json:"initial" yaml:"initial,omitempty" mapstructure:"initial"`
	Tokenize    string           `json:"tokenize" yaml:"tokenize,omitempty" mapstructure:"tokenize"`
	Default     *RuleSpec        `json:"default" yaml:"default,omitempty" mapstructure:"default"`
	Any         []AnySpec        `json:"any" yaml:"any,omitempty" mapstructure:"any"`
	Transitions []TransitionSpec `json:"transitions" yaml:"transitions,omitempty" mapstructure:"transitions"`
}

// RuleSpec names an action and a target state.
type RuleSpec struct {
	Action string `json:"action" yaml:"action,omitempty" mapstructure:"action"`
	Next   string `json:"next" yaml:"next,omitempty" mapstructure:"next"`
}

// AnySpec is a wildcard rule for State.
type AnySpec struct {
	State  string `json:"state" yaml:"state,omitempty" mapstructure:"state"`
	Action string `json:"action" yaml:"action,omitempty" mapstructure:"action"`
	Next   string `json:"next" yaml:"next,omitempty" mapstructure:"next"`
}

// TransitionSpec registers the same rule for every listed symbol.
// Chars is shorthand for one single-character symbol per rune.
type TransitionSpec struct {
	Symbols []string `json:"symbols" yaml:"symbols,omitempty" mapstructure:"symbols"`
	Chars   string   `json:"chars" yaml:"chars,omitempty" mapstructure:"chars"`
	State   string   `json:"state" yaml:"state,omitempty" mapstructure:"state"`
	Action  string   `json:"action" yaml:"action,omitempty" mapstructure:"action"`
	Next    string   `json:"next" yaml:"next,omitempty" mapstructure:"next"`
}

// AllSymbols merges Symbols and Chars.
func (t TransitionSpec) AllSymbols() []string {
	out := make([]string, 0, len(t.Symbols)+len(t.Chars))
	out = append(out, t.Symbols...)
	for _, r := range t.Chars {
		out = append(out, string(r))
	}
	return out
}

// LoadFile reads a table file; the format follows the file extension.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}

	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}

	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// Parse decodes and validates a table definition.
func Parse(data []byte, format Format) (*Definition, error) {
	raw := make(map[string]any)
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidTable, format)
	}

	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &def,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the structural rules of a definition and fills in the
// default tokenizer ("words").
func (d *Definition) Validate() error {
	var errs []error
	if d.Initial == "" {
		errs = append(errs, errors.New("initial state is required"))
	}
	switch d.Tokenize {
	case "":
		d.Tokenize = TokenizeWords
	case TokenizeChars, TokenizeWords:
	default:
		errs = append(errs, fmt.Errorf("tokenize must be %q or %q, got %q", TokenizeChars, TokenizeWords, d.Tokenize))
	}
	if d.Default != nil && d.Default.Next == "" {
		errs = append(errs, errors.New("default transition needs a next state"))
	}
	for i, a := range d.Any {
		if a.State == "" {
			errs = append(errs, fmt.Errorf("any[%d]: state is required", i))
		}
	}
	for i, t := range d.Transitions {
		if t.State == "" {
			errs = append(errs, fmt.Errorf("transitions[%d]: state is required", i))
		}
		if len(t.Symbols) == 0 && t.Chars == "" {
			errs = append(errs, fmt.Errorf("transitions[%d]: symbols or chars is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTable, errors.Join(errs...))
	}
	return nil
}

// TokenizeLine splits a line of input into symbols according to the table mode.
// In chars mode a trailing "\n" symbol marks the end of the line.
func (d *Definition) TokenizeLine(line string) []string {
	if d.Tokenize == TokenizeChars {
		out := make([]string, 0, len(line)+1)
		for _, r := range line {
			out = append(out, string(r))
		}
		return append(out, "\n")
	}
	return strings.Fields(line)
}

// Encode writes the definition in the given format, ready for LoadFile.
func (d *Definition) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	case FormatYAML:
		return yaml.Marshal(d)
	}
	return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidTable, format)
}
