/*
Package dsl provides a fluent Go API for writing transition tables.

It produces the same table.Definition a YAML or JSON file would, so tables can
be generated, unit tested and type-checked in Go, then built into a machine or
encoded back to a file.

Example usage:

	b := dsl.New("turnstile", "LOCKED")

	b.State("LOCKED").On("coin").Do("emit_symbol").Go("UNLOCKED")
	b.State("UNLOCKED").On("push").Do("emit_symbol").Go("LOCKED")
	b.State("UNLOCKED").On("coin")
	b.Default("error", "LOCKED")

	def, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	m, err := def.Build(nil)
*/
package dsl
