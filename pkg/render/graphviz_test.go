package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeViewBox(t *testing.T) {
	in := `<?xml version="1.0"?>
<svg width="100pt" height="50pt" viewBox="-10.00 -5.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`

	out := string(normalizeViewBox([]byte(in)))

	assert.Contains(t, out, `viewBox="0 0 100.00 50.00"`)
	assert.Contains(t, out, `width="100"`)
	assert.Contains(t, out, `height="50"`)
	assert.NotContains(t, out, "pt")
	assert.True(t, strings.Contains(out, "<g></g>"), "body must be preserved")
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte(`<svg><rect/></svg>`)
	assert.Equal(t, in, normalizeViewBox(in))
}

func TestNormalizeViewBoxZeroSize(t *testing.T) {
	in := []byte(`<svg viewBox="0 0 0 0"></svg>`)
	assert.Equal(t, in, normalizeViewBox(in))
}
