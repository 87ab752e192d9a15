package registry

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/zjrosen/rollcall/internal/log"
	"github.com/zjrosen/rollcall/internal/pubsub"
)

// Registry errors
var (
	ErrNilEntity  = errors.New("entity cannot be nil")
	ErrNilFactory = errors.New("registry factory cannot be nil")
)

// Change describes one registry mutation on the change feed.
type Change struct {
	Kind string // entity type, e.g. "song"
	Name string // affected entity name; empty for bulk operations
	Size int    // registry length after the change
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	broker *pubsub.Broker[Change]
}

// WithBroker publishes every mutation to b.
func WithBroker(b *pubsub.Broker[Change]) Option {
	return func(o *options) { o.broker = b }
}

// Registry holds all registered entities of one type.
type Registry[T Entity] struct {
	mu       sync.Mutex
	kind     string
	factory  Factory[T]
	entities []T
	broker   *pubsub.Broker[Change]
}

// New creates an empty registry for kind. factory is used by Create and
// FindOrCreateByName to build entities from a name.
func New[T Entity](kind string, factory Factory[T], opts ...Option) (*Registry[T], error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return &Registry[T]{
		kind:     kind,
		factory:  factory,
		entities: make([]T, 0),
		broker:   o.broker,
	}, nil
}

// MustNew is New for factories known to be non-nil.
func MustNew[T Entity](kind string, factory Factory[T], opts ...Option) *Registry[T] {
	r, err := New(kind, factory, opts...)
	if err != nil {
		panic(fmt.Sprintf("registry %s: %v", kind, err))
	}
	return r
}

// Kind returns the entity type name.
func (r *Registry[T]) Kind() string {
	return r.kind
}

// All returns the registered entities in insertion order. The slice is a
// fresh copy; the entities are shared with the registry.
func (r *Registry[T]) All() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.entities)
}

// Len returns the number of registered entities.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entities)
}

// Each calls fn for every entity in insertion order. fn runs on a snapshot
// without the lock held, so it may call back into the registry.
func (r *Registry[T]) Each(fn func(T)) {
	for _, e := range r.All() {
		fn(e)
	}
}

// Add saves e into the registry.
func (r *Registry[T]) Add(e T) error {
	if isNil(e) {
		return ErrNilEntity
	}

	r.mu.Lock()
	r.entities = append(r.entities, e)
	size := len(r.entities)
	r.mu.Unlock()

	log.Debug(log.CatRegistry, "saved", "kind", r.kind, "name", e.Name(), "size", size)
	r.publish(pubsub.CreatedEvent, Change{Kind: r.kind, Name: e.Name(), Size: size})
	return nil
}

// MustAdd is Add for entities known to be non-nil.
func (r *Registry[T]) MustAdd(e T) {
	if err := r.Add(e); err != nil {
		panic(fmt.Sprintf("registry %s: %v", r.kind, err))
	}
}

// ReplaceAll swaps the registry contents for entities in one step. Readers
// see either the old contents or the new ones. On error nothing changes.
func (r *Registry[T]) ReplaceAll(entities []T) error {
	if slices.ContainsFunc(entities, isNil[T]) {
		return ErrNilEntity
	}

	r.mu.Lock()
	removed := len(r.entities)
	r.entities = slices.Clone(entities)
	size := len(r.entities)
	r.mu.Unlock()

	log.Debug(log.CatRegistry, "replaced all", "kind", r.kind, "removed", removed, "size", size)
	r.publish(pubsub.UpdatedEvent, Change{Kind: r.kind, Size: size})
	return nil
}

// Create builds an entity named name and saves it. Every call grows the
// registry by exactly one, duplicates included.
func (r *Registry[T]) Create(name string) T {
	r.mu.Lock()
	e, size := r.createLocked(name)
	r.mu.Unlock()

	log.Debug(log.CatRegistry, "created", "kind", r.kind, "name", name, "size", size)
	r.publish(pubsub.CreatedEvent, Change{Kind: r.kind, Name: name, Size: size})
	return e
}

func (r *Registry[T]) createLocked(name string) (T, int) {
	e := r.factory(name)
	r.entities = append(r.entities, e)
	return e, len(r.entities)
}

// FindByName returns the first entity in insertion order whose name equals
// name exactly. The second result is false when nothing matches.
func (r *Registry[T]) FindByName(name string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(name)
}

func (r *Registry[T]) findLocked(name string) (T, bool) {
	for _, e := range r.entities {
		if e.Name() == name {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// FindOrCreateByName returns the entity named name, creating and saving it
// if none exists. created reports which path was taken.
func (r *Registry[T]) FindOrCreateByName(name string) (e T, created bool) {
	r.mu.Lock()
	if found, ok := r.findLocked(name); ok {
		r.mu.Unlock()
		return found, false
	}
	e, size := r.createLocked(name)
	r.mu.Unlock()

	log.Debug(log.CatRegistry, "created", "kind", r.kind, "name", name, "size", size)
	r.publish(pubsub.CreatedEvent, Change{Kind: r.kind, Name: name, Size: size})
	return e, true
}

// Alphabetical returns the entities sorted ascending by name. Equal names
// keep their insertion order. The registry itself is not reordered.
func (r *Registry[T]) Alphabetical() []T {
	sorted := r.All()
	slices.SortStableFunc(sorted, func(a, b T) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return sorted
}

// NormalizeNames rewrites every name with NormalizeName. Running it again
// changes nothing.
func (r *Registry[T]) NormalizeNames() {
	r.mu.Lock()
	changed := 0
	for _, e := range r.entities {
		normalized := NormalizeName(e.Name())
		if normalized != e.Name() {
			e.SetName(normalized)
			changed++
		}
	}
	size := len(r.entities)
	r.mu.Unlock()

	log.Debug(log.CatRegistry, "normalized names", "kind", r.kind, "changed", changed)
	r.publish(pubsub.UpdatedEvent, Change{Kind: r.kind, Size: size})
}

// DestroyAll empties the registry.
func (r *Registry[T]) DestroyAll() {
	r.mu.Lock()
	removed := len(r.entities)
	r.entities = make([]T, 0)
	r.mu.Unlock()

	log.Debug(log.CatRegistry, "destroyed all", "kind", r.kind, "removed", removed)
	r.publish(pubsub.DeletedEvent, Change{Kind: r.kind})
}

// PrintAll writes each entity name on its own line, in insertion order.
func (r *Registry[T]) PrintAll(w io.Writer) error {
	for _, e := range r.All() {
		if _, err := fmt.Fprintln(w, e.Name()); err != nil {
			return fmt.Errorf("print %s: %w", r.kind, err)
		}
	}
	return nil
}

func (r *Registry[T]) publish(eventType pubsub.EventType, c Change) {
	if r.broker != nil {
		r.broker.Publish(eventType, c)
	}
}

// isNil reports whether e is nil or a typed nil pointer.
func isNil[T Entity](e T) bool {
	v := reflect.ValueOf(e)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
