// Package render turns a parsed colony template into Graphviz output.
//
// Pins keep their exported surface coordinates (scaled and pinned, laid out
// with neato), links are drawn as dashed undirected edges, and routes as
// directed edges labeled with the commodity and quantity. Identifier names
// come from the configuration store; anything unresolved is labeled
// "Unknown" with the raw id so the diagram stays usable mid-resolution.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/piview/piview/pkg/config"
	"github.com/piview/piview/pkg/layout"
	"github.com/piview/piview/pkg/pi"
)

// Edge and label colors, matching the palette the original viewer used.
const (
	routeColor   = "#3498db"
	linkColor    = "#95a5a6"
	unknownColor = "#34495e"
)

// categoryStyle maps a pin category to its node fill color and shape.
type categoryStyle struct {
	color string
	shape string
}

var categoryStyles = map[string]categoryStyle{
	"Extractor":                     {"#cc2e70", "diamond"},
	"Launchpad":                     {"#00ff4c", "triangle"},
	"Basic Industrial Facility":     {"#f1c40f", "box"},
	"Advanced Industrial Facility":  {"#e67e22", "pentagon"},
	"High-Tech Industrial Facility": {"#e74c3c", "hexagon"},
	"Storage Facility":              {"#25a6af", "ellipse"},
	"Command Center":                {"#9b59b6", "star"},
}

var defaultStyle = categoryStyle{unknownColor, "ellipse"}

// pinStyle picks the style for a category. Matching is by prefix so stored
// categories like "Basic Industrial Facility (Barren)" still resolve.
func pinStyle(category string) categoryStyle {
	for key, style := range categoryStyles {
		if strings.HasPrefix(category, key) {
			return style
		}
	}
	return defaultStyle
}

// Options configures DOT generation.
type Options struct {
	ShowLinks  bool    // draw link edges (default true via DefaultOptions)
	ShowRoutes bool    // draw route edges
	Scale      float64 // surface-coordinate to point multiplier
}

// DefaultOptions returns the options used when the caller has no opinion.
func DefaultOptions() Options {
	return Options{ShowLinks: true, ShowRoutes: true, Scale: 2400}
}

// ToDOT converts a template to Graphviz DOT. Node positions are pinned
// ("pos=x,y!"), so the DOT must be laid out with the neato engine.
func ToDOT(t *layout.Template, store *config.Store, opts Options) string {
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}

	var buf bytes.Buffer
	buf.WriteString("digraph colony {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [style=filled, fontsize=11, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontsize=9, fontname=\"Helvetica\"];\n")
	fmt.Fprintf(&buf, "  label=%q;\n", title(t, store))
	buf.WriteString("  labelloc=\"t\";\n")
	buf.WriteString("\n")

	for _, p := range t.Pins {
		style := pinStyle(pinCategory(store, p))
		// Latitude grows downward in the export, so flip the y axis.
		fmt.Fprintf(&buf, "  p%d [label=%q, pos=\"%.1f,%.1f!\", fillcolor=%q, shape=%s];\n",
			p.ID, PinLabel(store, p), p.Lon*opts.Scale, -p.Lat*opts.Scale, style.color, style.shape)
	}

	if opts.ShowLinks {
		buf.WriteString("\n")
		for _, l := range t.Links {
			fmt.Fprintf(&buf, "  p%d -> p%d [dir=none, style=dashed, color=%q, penwidth=%.1f];\n",
				l.Source, l.Dest, linkColor, linkWidth(l.Level))
		}
	}

	if opts.ShowRoutes {
		buf.WriteString("\n")
		for _, r := range t.Routes {
			fmt.Fprintf(&buf, "  p%d -> p%d [color=%q, fontcolor=%q, label=%q];\n",
				r.Source, r.Dest, routeColor, routeColor, routeLabel(store, r))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// title builds the diagram heading: planet, command-center level, comment.
func title(t *layout.Template, store *config.Store) string {
	parts := []string{fmt.Sprintf("Planet: %s", store.PlanetName(t.PlanetTypeID))}
	if t.CommandCenterLevel > 0 {
		parts = append(parts, fmt.Sprintf("CC Lvl: %d", t.CommandCenterLevel))
	}
	s := strings.Join(parts, "  |  ")
	if t.Comment != "" {
		s += "\n" + t.Comment
	}
	return s
}

// pinCategory returns the stored category for a pin's type, or "" if the
// pin type is unresolved.
func pinCategory(store *config.Store, p layout.Pin) string {
	if e, ok := store.Lookup(pi.PinType(p.TypeID)); ok {
		return e.Category
	}
	return ""
}

// PinLabel formats a pin's display name the way the original viewer did:
// "Category (Planet) (#id)" when resolved, "Unknown Type (<type id>) (#id)"
// otherwise, with the installed schematic on a second line.
func PinLabel(store *config.Store, p layout.Pin) string {
	var name string
	if e, ok := store.Lookup(pi.PinType(p.TypeID)); ok {
		name = e.Name
		if e.Planet != "" {
			name = fmt.Sprintf("%s (%s)", e.Name, e.Planet)
		}
		name = fmt.Sprintf("%s (#%d)", name, p.ID)
	} else {
		name = fmt.Sprintf("Unknown Type (%d) (#%d)", p.TypeID, p.ID)
	}

	if p.HasSchematic {
		if e, ok := store.Lookup(pi.Schematic(p.SchematicID)); ok {
			name += fmt.Sprintf("\n(%s)", e.Name)
		} else {
			name += fmt.Sprintf("\n(Unknown Sch: %d)", p.SchematicID)
		}
	}
	return name
}

// CommodityName resolves a commodity id for display.
func CommodityName(store *config.Store, id int64) string {
	if e, ok := store.Lookup(pi.Commodity(id)); ok {
		return e.Name
	}
	return fmt.Sprintf("Unknown (%d)", id)
}

func routeLabel(store *config.Store, r layout.Route) string {
	return fmt.Sprintf("%s\n%.0f", CommodityName(store, r.CommodityID), r.Quantity)
}

func linkWidth(level int) float64 {
	w := float64(level) * 0.5
	if w < 0.5 {
		w = 0.5
	}
	return w
}
