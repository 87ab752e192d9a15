// Package registry implements an in-memory, ordered collection of entities
// of one type together with the finder, constructor and bulk operations that
// work over it.
//
// # Core Types
//
// Entity is the minimal contract a registered record satisfies: a mutable
// name. Person and Song in the sibling packages implement it.
//
// Registry[T] holds entities in insertion order. It provides:
//   - Add (the explicit save step) and Create (construct and save)
//   - All/Len/Each for reading the collection
//   - FindByName and FindOrCreateByName for lookup by exact name
//   - Alphabetical for a sorted view that leaves stored order alone
//   - NormalizeNames, DestroyAll and PrintAll as bulk operations
//
// Constructors of the entity types never register anything. An entity is
// discoverable only after Add or Create.
//
// A Registry is safe for concurrent use; every operation holds one mutex.
// Entities are stored as pointers, so a name changed through an All() handle
// is seen by later finders.
//
// # Change Feed
//
// A registry built WithBroker publishes a Change on every mutation:
// pubsub.CreatedEvent for Add/Create, pubsub.UpdatedEvent for NormalizeNames
// and pubsub.DeletedEvent for DestroyAll.
package registry
