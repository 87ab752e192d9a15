package registry

import "io"

// Entity is a record managed by a Registry.
type Entity interface {
	Name() string
	SetName(name string)
}

// Factory builds a new, unregistered entity carrying name.
type Factory[T Entity] func(name string) T

// Saver is the save half of a registry. Entities that save themselves
// depend on this rather than on the full Registry.
type Saver[T Entity] interface {
	Add(e T) error
}

// Provider defines read-only access to a registry.
// It lets presentation and application code take a registry without being
// able to mutate it.
type Provider[T Entity] interface {
	// Kind returns the entity type name, e.g. "person".
	Kind() string

	// All returns every entity in insertion order.
	All() []T

	// Len returns the number of registered entities.
	Len() int

	// FindByName returns the first entity named name, or false.
	FindByName(name string) (T, bool)

	// Alphabetical returns entities sorted by name.
	Alphabetical() []T

	// PrintAll writes each name on its own line.
	PrintAll(w io.Writer) error
}

// Compile-time checks that Registry implements Provider and Saver.
var (
	_ Provider[*named] = (*Registry[*named])(nil)
	_ Saver[*named]    = (*Registry[*named])(nil)
)

// named is the smallest Entity, used for the compile-time checks above.
type named struct{ name string }

func (n *named) Name() string        { return n.name }
func (n *named) SetName(name string) { n.name = name }
