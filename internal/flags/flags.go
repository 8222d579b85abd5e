// Package flags holds feature flags read from configuration. Flags are fixed
// once the registry is built.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/menubar/internal/log"
)

const (
	// FlagAcceleratorCache memoizes rendered accelerator text per platform.
	FlagAcceleratorCache = "accelerator-cache"

	// FlagStrictRadio makes show-time reconciliation fail on radio groups
	// with several checked items instead of repairing them.
	FlagStrictRadio = "strict-radio"
)

// Defaults returns the flag values used when configuration sets none.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagAcceleratorCache: true,
		FlagStrictRadio:      false,
	}
}

// Registry answers flag lookups.
type Registry struct {
	flags map[string]bool
}

// New builds a registry from configured values layered over Defaults.
func New(configured map[string]bool) *Registry {
	flags := Defaults()
	maps.Copy(flags, configured)
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "feature flags", "enabled", r.EnabledNames())
	return r
}

// Enabled reports whether name is on. Unknown flags and a nil registry
// report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	on, ok := r.flags[name]
	if !ok {
		log.Debug(log.CatConfig, "unknown flag", "flag", name)
	}
	return on
}

// EnabledNames lists the flags that are on, sorted.
func (r *Registry) EnabledNames() []string {
	if r == nil {
		return nil
	}
	var out []string
	for name, on := range r.flags {
		if on {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// All returns a copy of every flag value.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}
