// Package layout implements the colony-template model.
//
// A template is the JSON document exported by the game client describing one
// planetary colony: placed structures (pins), the physical connections
// between them (links), and the directed material flows across those
// connections (routes). Parsing is pure — the package performs no I/O beyond
// reading the raw document and no identifier resolution; unknown fields in
// the document are ignored for forward compatibility.
package layout

import (
	"encoding/json"
	"io"
	"os"

	"github.com/piview/piview/pkg/errors"
)

// Pin is a placed structure instance. ID is the pin's 1-based position in
// the document's pin list; links and routes reference pins by this id.
type Pin struct {
	ID           int
	TypeID       int64
	SchematicID  int64 // valid only when HasSchematic
	HasSchematic bool
	Lat          float64
	Lon          float64
}

// Link is a physical connection between two pins. Level is informational.
type Link struct {
	Source int
	Dest   int
	Level  int
}

// Route is a directed flow of one commodity between two pins. The document
// records a full path across links; only the endpoints matter for display.
type Route struct {
	Source      int
	Dest        int
	CommodityID int64
	Quantity    float64
}

// Template is a parsed colony layout. It is read-only after construction:
// identifier resolution writes to the configuration store, never back into
// the template.
type Template struct {
	CommandCenterLevel int
	Comment            string
	Diameter           float64
	PlanetTypeID       int64
	Pins               []Pin
	Links              []Link
	Routes             []Route

	// DroppedLinks and DroppedRoutes count entries discarded because they
	// referenced a pin id not present in the document. Game exports have
	// been seen with stale references; dropping matches what the client
	// itself tolerates, while structurally malformed entries are an error.
	DroppedLinks  int
	DroppedRoutes int
}

// PinByID returns the pin with the given 1-based id.
func (t *Template) PinByID(id int) (Pin, bool) {
	if id < 1 || id > len(t.Pins) {
		return Pin{}, false
	}
	return t.Pins[id-1], true
}

// DistinctPinTypeIDs returns the pin-type ids referenced by the template,
// deduplicated, in first-occurrence order over the pin list.
func (t *Template) DistinctPinTypeIDs() []int64 {
	return distinct(t.Pins, func(p Pin) (int64, bool) { return p.TypeID, true })
}

// DistinctSchematicIDs returns the schematic ids installed on pins,
// deduplicated, in first-occurrence order over the pin list.
func (t *Template) DistinctSchematicIDs() []int64 {
	return distinct(t.Pins, func(p Pin) (int64, bool) { return p.SchematicID, p.HasSchematic })
}

// DistinctCommodityIDs returns the commodity ids referenced by routes,
// deduplicated, in first-occurrence order over the route list.
func (t *Template) DistinctCommodityIDs() []int64 {
	return distinct(t.Routes, func(r Route) (int64, bool) { return r.CommodityID, true })
}

func distinct[T any](items []T, value func(T) (int64, bool)) []int64 {
	var out []int64
	seen := make(map[int64]bool)
	for _, item := range items {
		v, ok := value(item)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Wire shapes. Pointer fields distinguish "absent" from zero values so
// required-field checks can be precise. Unknown keys are ignored by
// encoding/json, which gives the forward-compatibility behavior for free.
type wireDoc struct {
	CmdCtrLv *int        `json:"CmdCtrLv"`
	Cmt      *string     `json:"Cmt"`
	Diam     *float64    `json:"Diam"`
	Pln      *int64      `json:"Pln"`
	P        *[]wirePin  `json:"P"`
	L        []wireLink  `json:"L"`
	R        []wireRoute `json:"R"`
}

type wirePin struct {
	T  *int64   `json:"T"`
	S  *int64   `json:"S"`
	La *float64 `json:"La"`
	Lo *float64 `json:"Lo"`
}

type wireLink struct {
	S  *int `json:"S"`
	D  *int `json:"D"`
	Lv *int `json:"Lv"`
}

type wireRoute struct {
	P []int    `json:"P"`
	T *int64   `json:"T"`
	Q *float64 `json:"Q"`
	// Some exporters write the quantity as "Qty" instead of "Q".
	Qty *float64 `json:"Qty"`
}

// Parse parses a raw template document. Malformed documents — bad JSON,
// wrong field types, or a pin/link/route missing a required field — yield a
// PARSE_ERROR and no partial template.
func Parse(data []byte) (*Template, error) {
	var doc wireDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed template document")
	}
	if doc.P == nil {
		return nil, errors.New(errors.ErrCodeParse, "template missing pin list 'P'")
	}

	t := &Template{}
	if doc.CmdCtrLv != nil {
		t.CommandCenterLevel = *doc.CmdCtrLv
	}
	if doc.Cmt != nil {
		t.Comment = *doc.Cmt
	}
	if doc.Diam != nil {
		t.Diameter = *doc.Diam
	}
	if doc.Pln != nil {
		t.PlanetTypeID = *doc.Pln
	}

	for i, wp := range *doc.P {
		if wp.T == nil {
			return nil, errors.New(errors.ErrCodeParse, "pin %d missing type id 'T'", i+1)
		}
		p := Pin{ID: i + 1, TypeID: *wp.T}
		if wp.S != nil {
			p.SchematicID = *wp.S
			p.HasSchematic = true
		}
		if wp.La != nil {
			p.Lat = *wp.La
		}
		if wp.Lo != nil {
			p.Lon = *wp.Lo
		}
		t.Pins = append(t.Pins, p)
	}

	for i, wl := range doc.L {
		if wl.S == nil || wl.D == nil {
			return nil, errors.New(errors.ErrCodeParse, "link %d missing endpoint", i+1)
		}
		if !t.hasPin(*wl.S) || !t.hasPin(*wl.D) {
			t.DroppedLinks++
			continue
		}
		l := Link{Source: *wl.S, Dest: *wl.D}
		if wl.Lv != nil {
			l.Level = *wl.Lv
		}
		t.Links = append(t.Links, l)
	}

	for i, wr := range doc.R {
		if len(wr.P) < 2 {
			return nil, errors.New(errors.ErrCodeParse, "route %d path needs at least two pins", i+1)
		}
		if wr.T == nil {
			return nil, errors.New(errors.ErrCodeParse, "route %d missing commodity id 'T'", i+1)
		}
		r := Route{Source: wr.P[0], Dest: wr.P[len(wr.P)-1], CommodityID: *wr.T}
		switch {
		case wr.Q != nil:
			r.Quantity = *wr.Q
		case wr.Qty != nil:
			r.Quantity = *wr.Qty
		}
		if r.Quantity < 0 {
			return nil, errors.New(errors.ErrCodeParse, "route %d has negative quantity", i+1)
		}
		if !t.hasPin(r.Source) || !t.hasPin(r.Dest) {
			t.DroppedRoutes++
			continue
		}
		t.Routes = append(t.Routes, r)
	}

	return t, nil
}

func (t *Template) hasPin(id int) bool {
	return id >= 1 && id <= len(t.Pins)
}

// ParseReader parses a template document from r.
func ParseReader(r io.Reader) (*Template, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read template document")
	}
	return Parse(data)
}

// ParseFile reads and parses the template file at path.
func ParseFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "template file %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read template file %s", path)
	}
	return Parse(data)
}
