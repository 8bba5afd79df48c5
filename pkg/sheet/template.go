// Package sheet describes label-sheet templates: page geometry, the label
// grid, and the per-label field layout. All distances are in millimeters
// with the origin at the page's top-left corner.
//
// A [Template] is validated once, before any layout work starts; the
// [Grid] derived from it is a pure function of the template and is never
// cached across template changes.
package sheet

import (
	"github.com/labelsmith/labelsmith/pkg/errors"
)

// geomEps absorbs float rounding when checking that the grid fits the page.
const geomEps = 1e-6

// FieldStyle is a rendering emphasis hint for a label field.
type FieldStyle string

const (
	StyleTitle FieldStyle = "title" // prominent, the label's headline
	StylePlain FieldStyle = "plain"
	StyleSmall FieldStyle = "small" // fine print
)

var validStyles = map[FieldStyle]bool{
	StyleTitle: true,
	StylePlain: true,
	StyleSmall: true,
}

// Field places one asset attribute on the label. Fields stack top to bottom
// in template order; Height is the vertical space the field occupies.
type Field struct {
	Key    string     `toml:"key"`
	Style  FieldStyle `toml:"style"`
	Height float64    `toml:"height"` // mm
}

// Corner names a label corner for code placement.
type Corner string

const (
	TopLeft     Corner = "top-left"
	TopRight    Corner = "top-right"
	BottomLeft  Corner = "bottom-left"
	BottomRight Corner = "bottom-right"
)

var validCorners = map[Corner]bool{
	TopLeft: true, TopRight: true, BottomLeft: true, BottomRight: true,
}

// Code recovery levels, in increasing redundancy order. These mirror the
// standard QR error-correction levels.
const (
	LevelLow     = "low"
	LevelMedium  = "medium"
	LevelHigh    = "high"
	LevelHighest = "highest"
)

var validLevels = map[string]bool{
	LevelLow: true, LevelMedium: true, LevelHigh: true, LevelHighest: true,
}

// CodeSpec configures the scannable code on each label.
type CodeSpec struct {
	Include bool    `toml:"include"`
	Level   string  `toml:"level"`  // error-correction level, default medium
	Corner  Corner  `toml:"corner"` // placement corner, default top-right
	Size    float64 `toml:"size"`   // fraction of the label's smaller dimension, (0, 1]
}

// Template is the full geometric and content configuration for one sheet
// kind. The zero value is not usable; start from [Default] or a TOML file.
type Template struct {
	Name string

	// Page geometry, mm.
	PageWidth  float64
	PageHeight float64

	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// Grid geometry. LabelWidth/LabelHeight may be zero, in which case
	// they are derived from the page size, margins, and gaps.
	Columns     int
	Rows        int
	GapX        float64 // between columns
	GapY        float64 // between rows
	LabelWidth  float64
	LabelHeight float64

	Fields []Field
	Code   CodeSpec
}

// Default returns the built-in template: an A4 sheet of 13×5 small asset
// labels with a name line, the asset ID in fine print, and a QR code in
// the top-right corner.
func Default() Template {
	return Template{
		Name:       "default",
		PageWidth:  210,
		PageHeight: 297,

		MarginTop:    10,
		MarginRight:  5,
		MarginBottom: 10,
		MarginLeft:   5,

		Columns: 5,
		Rows:    13,
		GapX:    2.5,
		GapY:    0,

		Fields: []Field{
			{Key: "name", Style: StyleTitle, Height: 5},
			{Key: "id", Style: StyleSmall, Height: 3.5},
			{Key: "location", Style: StyleSmall, Height: 3.5},
		},
		Code: CodeSpec{
			Include: true,
			Level:   LevelMedium,
			Corner:  TopRight,
			Size:    0.9,
		},
	}
}

// Capacity returns the number of label slots per page.
func (t Template) Capacity() int { return t.Columns * t.Rows }

// CellWidth returns the label width, deriving it from the page geometry
// when the template does not set it explicitly.
func (t Template) CellWidth() float64 {
	if t.LabelWidth > 0 {
		return t.LabelWidth
	}
	usable := t.PageWidth - t.MarginLeft - t.MarginRight - float64(t.Columns-1)*t.GapX
	return usable / float64(t.Columns)
}

// CellHeight returns the label height, deriving it from the page geometry
// when the template does not set it explicitly.
func (t Template) CellHeight() float64 {
	if t.LabelHeight > 0 {
		return t.LabelHeight
	}
	usable := t.PageHeight - t.MarginTop - t.MarginBottom - float64(t.Rows-1)*t.GapY
	return usable / float64(t.Rows)
}

// Validate checks every template invariant. It returns an INVALID_TEMPLATE
// coded error describing the first violation found. Validate is pure and
// must pass before any records are resolved or laid out.
func (t Template) Validate() error {
	if t.PageWidth <= 0 || t.PageHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidTemplate,
			"page dimensions must be positive, got %gx%g mm", t.PageWidth, t.PageHeight)
	}
	if t.MarginTop < 0 || t.MarginRight < 0 || t.MarginBottom < 0 || t.MarginLeft < 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "margins cannot be negative")
	}
	if t.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidTemplate, "columns must be >= 1, got %d", t.Columns)
	}
	if t.Rows < 1 {
		return errors.New(errors.ErrCodeInvalidTemplate, "rows must be >= 1, got %d", t.Rows)
	}
	if t.GapX < 0 || t.GapY < 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "grid gaps cannot be negative")
	}

	cw, ch := t.CellWidth(), t.CellHeight()
	if cw <= 0 || ch <= 0 {
		return errors.New(errors.ErrCodeInvalidTemplate,
			"label dimensions must be positive, got %.2fx%.2f mm", cw, ch)
	}

	gridW := t.MarginLeft + t.MarginRight + float64(t.Columns)*cw + float64(t.Columns-1)*t.GapX
	if gridW > t.PageWidth+geomEps {
		return errors.New(errors.ErrCodeInvalidTemplate,
			"label grid exceeds page width: %.2f mm needed, %.2f mm available", gridW, t.PageWidth)
	}
	gridH := t.MarginTop + t.MarginBottom + float64(t.Rows)*ch + float64(t.Rows-1)*t.GapY
	if gridH > t.PageHeight+geomEps {
		return errors.New(errors.ErrCodeInvalidTemplate,
			"label grid exceeds page height: %.2f mm needed, %.2f mm available", gridH, t.PageHeight)
	}

	if len(t.Fields) == 0 && !t.Code.Include {
		return errors.New(errors.ErrCodeInvalidTemplate,
			"template renders nothing: no fields configured and code disabled")
	}

	var fieldsH float64
	for _, f := range t.Fields {
		if err := errors.ValidateAttributeKey(f.Key); err != nil {
			return err
		}
		if f.Style != "" && !validStyles[f.Style] {
			return errors.New(errors.ErrCodeInvalidTemplate,
				"field %q: invalid style %q (must be title, plain, or small)", f.Key, f.Style)
		}
		if f.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidTemplate,
				"field %q: height must be positive, got %g mm", f.Key, f.Height)
		}
		fieldsH += f.Height
	}
	if fieldsH > ch+geomEps {
		return errors.New(errors.ErrCodeInvalidTemplate,
			"fields need %.2f mm but the label is only %.2f mm tall", fieldsH, ch)
	}

	if t.Code.Include {
		if !validLevels[t.Code.Level] {
			return errors.New(errors.ErrCodeInvalidTemplate,
				"invalid code level %q (must be low, medium, high, or highest)", t.Code.Level)
		}
		if !validCorners[t.Code.Corner] {
			return errors.New(errors.ErrCodeInvalidTemplate,
				"invalid code corner %q", t.Code.Corner)
		}
		if t.Code.Size <= 0 || t.Code.Size > 1 {
			return errors.New(errors.ErrCodeInvalidTemplate,
				"code size must be in (0, 1], got %g", t.Code.Size)
		}
	}

	return nil
}
