// Package pi defines the identifier model shared by the template parser,
// the configuration store, and the resolver.
//
// The game client references every catalog entity by a bare integer whose
// meaning depends on context: a pin type, a commodity, a schematic, or a
// planet type. These namespaces are disjoint — the same integer in two
// namespaces denotes unrelated entities — so identifiers are carried as a
// tagged value rather than a raw int. Keying maps by [Identifier] makes
// cross-namespace confusion a compile-time impossibility instead of a
// runtime bug.
package pi

import "fmt"

// Namespace tags which catalog an identifier belongs to.
type Namespace uint8

// The four identifier namespaces used by colony templates.
const (
	NamespacePinType Namespace = iota + 1
	NamespaceCommodity
	NamespaceSchematic
	NamespacePlanetType
)

// namespaceNames maps namespaces to their display names.
var namespaceNames = map[Namespace]string{
	NamespacePinType:    "pin type",
	NamespaceCommodity:  "commodity",
	NamespaceSchematic:  "schematic",
	NamespacePlanetType: "planet type",
}

// String returns the human-readable namespace name (e.g. "pin type").
func (ns Namespace) String() string {
	if name, ok := namespaceNames[ns]; ok {
		return name
	}
	return fmt.Sprintf("namespace(%d)", uint8(ns))
}

// Valid reports whether ns is one of the four defined namespaces.
func (ns Namespace) Valid() bool {
	_, ok := namespaceNames[ns]
	return ok
}

// Identifier is a namespaced integer key from the game's type catalog.
// The zero Identifier is invalid.
type Identifier struct {
	Namespace Namespace
	Value     int64
}

// PinType returns the pin-type identifier for v.
func PinType(v int64) Identifier { return Identifier{NamespacePinType, v} }

// Commodity returns the commodity identifier for v.
func Commodity(v int64) Identifier { return Identifier{NamespaceCommodity, v} }

// Schematic returns the schematic identifier for v.
func Schematic(v int64) Identifier { return Identifier{NamespaceSchematic, v} }

// PlanetType returns the planet-type identifier for v.
func PlanetType(v int64) Identifier { return Identifier{NamespacePlanetType, v} }

// String formats the identifier as "<namespace> <value>".
func (id Identifier) String() string {
	return fmt.Sprintf("%s %d", id.Namespace, id.Value)
}
