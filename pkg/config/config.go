// Package config implements the durable identifier-to-name configuration
// store.
//
// The store owns four namespace-partitioned mapping tables (pin types,
// commodities, schematics, planet types) persisted as a single TOML document.
// Lookups never fail: an absent identifier is reported as "not found" and
// display helpers fall back to a generic label. Mutations accumulate
// in memory and become durable only on [Store.Save], which replaces the
// file atomically so a crash mid-session never corrupts previously stored
// mappings.
package config

import (
	"slices"
	"strings"

	"github.com/piview/piview/pkg/pi"
)

// Entry is the stored resolution for one identifier: a display name and,
// for pin types, an optional category and the planet the mapping was
// recorded for. Planet is a display hint only, never a foreign key.
type Entry struct {
	Name     string `toml:"name"`
	Category string `toml:"category,omitempty"`
	Planet   string `toml:"planet,omitempty"`
}

// Configuration holds the in-memory mapping tables. The four namespaces are
// kept in one map keyed by the tagged [pi.Identifier], which makes them
// disjoint by construction: a pin-type id can never shadow a commodity id.
type Configuration struct {
	entries map[pi.Identifier]Entry
}

// NewConfiguration returns an empty configuration.
func NewConfiguration() *Configuration {
	return &Configuration{entries: make(map[pi.Identifier]Entry)}
}

// Lookup returns the entry for id, or false if the identifier is unknown.
func (c *Configuration) Lookup(id pi.Identifier) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Upsert inserts or overwrites the entry for id. Last write wins; the
// invariant that an identifier maps to at most one entry within its
// namespace is enforced by the map itself.
func (c *Configuration) Upsert(id pi.Identifier, e Entry) {
	c.entries[id] = e
}

// Count returns the number of entries stored for the given namespace.
func (c *Configuration) Count(ns pi.Namespace) int {
	n := 0
	for id := range c.entries {
		if id.Namespace == ns {
			n++
		}
	}
	return n
}

// KnownValues returns the set of identifier values stored for ns.
func (c *Configuration) KnownValues(ns pi.Namespace) map[int64]bool {
	known := make(map[int64]bool)
	for id := range c.entries {
		if id.Namespace == ns {
			known[id.Value] = true
		}
	}
	return known
}

// Names returns the distinct non-empty entry names stored for ns, sorted.
// Used as the suggestion list when resolving unknown commodities.
func (c *Configuration) Names(ns pi.Namespace) []string {
	return c.distinct(ns, func(e Entry) string { return e.Name })
}

// Categories returns the distinct non-empty pin-type categories, sorted.
// Used as the suggestion list when resolving unknown pin types.
func (c *Configuration) Categories() []string {
	return c.distinct(pi.NamespacePinType, func(e Entry) string { return e.Category })
}

func (c *Configuration) distinct(ns pi.Namespace, field func(Entry) string) []string {
	seen := make(map[string]bool)
	for id, e := range c.entries {
		if id.Namespace != ns {
			continue
		}
		if v := strings.TrimSpace(field(e)); v != "" {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
