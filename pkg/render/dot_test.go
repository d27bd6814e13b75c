package render

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piview/piview/pkg/config"
	"github.com/piview/piview/pkg/layout"
	"github.com/piview/piview/pkg/pi"
)

func testStore(t *testing.T) *config.Store {
	t.Helper()
	s, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	return s
}

func testTemplate(t *testing.T) *layout.Template {
	t.Helper()
	doc := `{
		"CmdCtrLv": 3,
		"Cmt": "test colony",
		"Pln": 2016,
		"P": [
			{"T": 100, "La": 0.5, "Lo": 1.0},
			{"T": 200, "S": 300, "La": 0.6, "Lo": 1.1}
		],
		"L": [{"S": 1, "D": 2, "Lv": 2}],
		"R": [{"P": [1, 2], "T": 400, "Q": 3000}]
	}`
	tmpl, err := layout.Parse([]byte(doc))
	require.NoError(t, err)
	return tmpl
}

func TestToDOTUnresolved(t *testing.T) {
	dot := ToDOT(testTemplate(t), testStore(t), DefaultOptions())

	assert.True(t, strings.HasPrefix(dot, "digraph colony {"))
	assert.Contains(t, dot, "Unknown Type (100) (#1)")
	assert.Contains(t, dot, "Unknown Sch: 300")
	assert.Contains(t, dot, "Unknown Planet (2016)")
	assert.Contains(t, dot, "Unknown (400)")
	assert.Contains(t, dot, "CC Lvl: 3")
	assert.Contains(t, dot, "test colony")
}

func TestToDOTResolved(t *testing.T) {
	store := testStore(t)
	store.Upsert(pi.PinType(100), config.Entry{Name: "Extractor", Category: "Extractor", Planet: "Barren"})
	store.Upsert(pi.PinType(200), config.Entry{Name: "Basic Industrial Facility", Category: "Basic Industrial Facility"})
	store.Upsert(pi.Schematic(300), config.Entry{Name: "Oxygen"})
	store.Upsert(pi.Commodity(400), config.Entry{Name: "Water"})
	store.Upsert(pi.PlanetType(2016), config.Entry{Name: "Barren"})

	dot := ToDOT(testTemplate(t), store, DefaultOptions())

	assert.Contains(t, dot, "Extractor (Barren) (#1)")
	assert.Contains(t, dot, "(Oxygen)")
	assert.Contains(t, dot, "Planet: Barren")
	assert.Contains(t, dot, "Water")
	// Category styling picks the extractor shape and color.
	assert.Contains(t, dot, "shape=diamond")
	assert.Contains(t, dot, "#cc2e70")
}

func TestToDOTPinnedPositions(t *testing.T) {
	dot := ToDOT(testTemplate(t), testStore(t), Options{ShowLinks: true, ShowRoutes: true, Scale: 100})

	// Longitude maps to x, latitude to negated y.
	assert.Contains(t, dot, `pos="100.0,-50.0!"`)
	assert.Contains(t, dot, `pos="110.0,-60.0!"`)
}

func TestToDOTEdgeToggles(t *testing.T) {
	tmpl := testTemplate(t)
	store := testStore(t)

	full := ToDOT(tmpl, store, DefaultOptions())
	assert.Contains(t, full, "style=dashed")
	assert.Contains(t, full, "Unknown (400)")

	noLinks := ToDOT(tmpl, store, Options{ShowRoutes: true, Scale: 100})
	assert.NotContains(t, noLinks, "style=dashed")

	noRoutes := ToDOT(tmpl, store, Options{ShowLinks: true, Scale: 100})
	assert.NotContains(t, noRoutes, "Unknown (400)")
}

func TestToDOTZeroScaleFallsBack(t *testing.T) {
	dot := ToDOT(testTemplate(t), testStore(t), Options{ShowLinks: true, ShowRoutes: true})
	assert.Contains(t, dot, `pos="2400.0,-1200.0!"`)
}

func TestPinStylePrefixMatch(t *testing.T) {
	assert.Equal(t, "diamond", pinStyle("Extractor").shape)
	assert.Equal(t, "box", pinStyle("Basic Industrial Facility (Barren)").shape)
	assert.Equal(t, defaultStyle, pinStyle("Something Else"))
	assert.Equal(t, defaultStyle, pinStyle(""))
}

func TestPinLabel(t *testing.T) {
	store := testStore(t)
	store.Upsert(pi.PinType(100), config.Entry{Name: "Launchpad", Planet: "Lava"})

	p := layout.Pin{ID: 4, TypeID: 100}
	assert.Equal(t, "Launchpad (Lava) (#4)", PinLabel(store, p))

	p.HasSchematic = true
	p.SchematicID = 77
	assert.Equal(t, "Launchpad (Lava) (#4)\n(Unknown Sch: 77)", PinLabel(store, p))

	unknown := layout.Pin{ID: 9, TypeID: 555}
	assert.Equal(t, "Unknown Type (555) (#9)", PinLabel(store, unknown))
}

func TestCommodityName(t *testing.T) {
	store := testStore(t)
	assert.Equal(t, "Unknown (42)", CommodityName(store, 42))

	store.Upsert(pi.Commodity(42), config.Entry{Name: "Oxygen"})
	assert.Equal(t, "Oxygen", CommodityName(store, 42))
}

func TestLinkWidth(t *testing.T) {
	assert.Equal(t, 0.5, linkWidth(0))
	assert.Equal(t, 0.5, linkWidth(1))
	assert.Equal(t, 1.5, linkWidth(3))
}
