package dsl

import (
	"fmt"

	"github.com/aretw0/tablefsm/pkg/table"
)

// Builder manages the table construction.
type Builder struct {
	def table.Definition
}

// New creates a new table builder. Symbols are words unless Chars is called.
func New(name, initial string) *Builder {
	return &Builder{
		def: table.Definition{
			Name:     name,
			Initial:  initial,
			Tokenize: table.TokenizeWords,
		},
	}
}

// Describe sets the table description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// Chars switches the table to one symbol per character.
func (b *Builder) Chars() *Builder {
	b.def.Tokenize = table.TokenizeChars
	return b
}

// Default sets the rule used when nothing else matches.
func (b *Builder) Default(action, next string) *Builder {
	b.def.Default = &table.RuleSpec{Action: action, Next: next}
	return b
}

// State returns a builder for the rules leaving state.
func (b *Builder) State(state string) *StateBuilder {
	return &StateBuilder{builder: b, state: state}
}

// Build validates and returns a copy of the definition.
func (b *Builder) Build() (*table.Definition, error) {
	def := b.def
	def.Any = append([]table.AnySpec(nil), b.def.Any...)
	def.Transitions = append([]table.TransitionSpec(nil), b.def.Transitions...)
	if b.def.Default != nil {
		d := *b.def.Default
		def.Default = &d
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build table %q: %w", def.Name, err)
	}
	return &def, nil
}
