// Package flags provides feature flags read from the "flags" config map.
// Unknown flags are off.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/rollcall/internal/log"
)

const (
	// FlagNormalizeOnImport runs NormalizeNames on the people registry after
	// every CSV import.
	FlagNormalizeOnImport = "normalize-on-import"

	// FlagSkipImportCache reads import files from disk every time.
	FlagSkipImportCache = "skip-import-cache"
)

// Known lists every flag rollcall reads.
var Known = []string{FlagNormalizeOnImport, FlagSkipImportCache}

// Registry holds feature flag state. Read-only after New.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. A nil map disables every flag.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: make(map[string]bool, len(flags))}
	maps.Copy(r.flags, flags)
	for name := range r.flags {
		if !slices.Contains(Known, name) {
			log.Warn(log.CatConfig, "Unknown feature flag in config", "flag", name)
		}
	}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(r.flags))
	return r
}

// Enabled reports whether name is on. Nil registries and unknown flags are off.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy of the flag map.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}
