// Package generator defines the back-end interface the compiler hands a
// validated schema to. The core never depends on any concrete generator;
// back ends register themselves by name and the driver looks them up.
package generator

import (
	"fmt"
	"sort"

	"bebopc/internal/schema"
)

// Generator turns a validated schema into target-language source. Emit
// must honor the wire-format contract exactly; the core does not emit
// encoding code itself. Implementations must not mutate the schema.
type Generator interface {
	// Name is the identifier used to select the generator, e.g. "go".
	Name() string
	// Emit produces the generated source for the whole schema.
	Emit(s *schema.Schema) (string, error)
	// WriteAuxiliaryFiles copies fixed-content runtime helpers the
	// generated code relies on into outDir.
	WriteAuxiliaryFiles(outDir string) error
}

var registry = make(map[string]Generator)

// Register makes a generator available by name. Later registrations
// replace earlier ones.
func Register(g Generator) {
	registry[g.Name()] = g
}

// Lookup finds a registered generator.
func Lookup(name string) (Generator, error) {
	g, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q (have %v)", name, Names())
	}
	return g, nil
}

// Names lists registered generators, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
