// Package roster is the application service over the person and song
// registries.
//
// A Service owns one registry per entity type and exposes the class-level
// operations callers expect: create, find, find-or-create, CSV and filename
// imports, and YAML seed loading. Services are plain values; create one with
// New and pass it to whatever needs it.
//
// # Save policy
//
// Constructors in the domain packages never register. Every Service method
// named Create*, Import*, LoadSeed, or PeopleFromCSV with save=true does.
//
// # Imports
//
// ImportPeopleFile reads through a file cache keyed by path, so re-importing
// an unchanged file within the cache TTL does not touch the disk. Each import
// gets a batch id that appears in its log lines and trace span.
package roster
