package sink

import "github.com/labelsmith/labelsmith/pkg/sheet"

// ptPerMM converts millimeters to PostScript points.
const ptPerMM = 72.0 / 25.4

// fontSpec is the shared typography for one field style. Sizes are in
// millimeters so every sink draws the same glyph height.
type fontSpec struct {
	SizeMM float64
	Bold   bool
}

var fontSpecs = map[sheet.FieldStyle]fontSpec{
	sheet.StyleTitle: {SizeMM: 3.2, Bold: true},
	sheet.StylePlain: {SizeMM: 2.6},
	sheet.StyleSmall: {SizeMM: 2.0},
}

// fontFor returns the typography for a field style, falling back to plain
// for anything a template validated before this sink existed.
func fontFor(style sheet.FieldStyle) fontSpec {
	if f, ok := fontSpecs[style]; ok {
		return f
	}
	return fontSpecs[sheet.StylePlain]
}

// baseline places the text baseline so the glyphs sit vertically centered
// in the field's allocated band.
func baseline(y, height, sizeMM float64) float64 {
	return y + (height+sizeMM)/2
}
