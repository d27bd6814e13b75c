package pi

import "testing"

func TestNamespaceString(t *testing.T) {
	tests := []struct {
		ns   Namespace
		want string
	}{
		{NamespacePinType, "pin type"},
		{NamespaceCommodity, "commodity"},
		{NamespaceSchematic, "schematic"},
		{NamespacePlanetType, "planet type"},
		{Namespace(0), "namespace(0)"},
		{Namespace(99), "namespace(99)"},
	}
	for _, tt := range tests {
		if got := tt.ns.String(); got != tt.want {
			t.Errorf("Namespace(%d).String() = %q, want %q", tt.ns, got, tt.want)
		}
	}
}

func TestNamespaceValid(t *testing.T) {
	for _, ns := range []Namespace{NamespacePinType, NamespaceCommodity, NamespaceSchematic, NamespacePlanetType} {
		if !ns.Valid() {
			t.Errorf("Namespace %q should be valid", ns)
		}
	}
	if Namespace(0).Valid() {
		t.Error("zero namespace should be invalid")
	}
}

func TestIdentifierConstructors(t *testing.T) {
	tests := []struct {
		id   Identifier
		ns   Namespace
		want string
	}{
		{PinType(2473), NamespacePinType, "pin type 2473"},
		{Commodity(2389), NamespaceCommodity, "commodity 2389"},
		{Schematic(121), NamespaceSchematic, "schematic 121"},
		{PlanetType(2016), NamespacePlanetType, "planet type 2016"},
	}
	for _, tt := range tests {
		if tt.id.Namespace != tt.ns {
			t.Errorf("identifier %v has namespace %v, want %v", tt.id, tt.id.Namespace, tt.ns)
		}
		if got := tt.id.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIdentifierDisjointness(t *testing.T) {
	// The same raw value in two namespaces must produce distinct map keys.
	m := map[Identifier]string{
		PinType(42):   "extractor",
		Commodity(42): "water",
	}
	if len(m) != 2 {
		t.Fatalf("expected 2 distinct keys, got %d", len(m))
	}
	if m[PinType(42)] == m[Commodity(42)] {
		t.Error("namespaced keys collided")
	}
}
