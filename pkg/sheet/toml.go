package sheet

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/labelsmith/labelsmith/pkg/errors"
)

// templateFile is the on-disk TOML shape of a template. It mirrors
// [Template] but groups the geometry into sections so files read well:
//
//	name = "avery-l4731"
//
//	[page]
//	width = 210.0
//	height = 297.0
//	margin-top = 10.0
//	margin-right = 5.0
//	margin-bottom = 10.0
//	margin-left = 5.0
//
//	[grid]
//	columns = 5
//	rows = 13
//	column-gap = 2.5
//	row-gap = 0.0
//
//	[[field]]
//	key = "name"
//	style = "title"
//	height = 5.0
//
//	[code]
//	include = true
//	level = "medium"
//	corner = "top-right"
//	size = 0.9
type templateFile struct {
	Name string   `toml:"name"`
	Page pageSpec `toml:"page"`
	Grid gridSpec `toml:"grid"`

	Fields []Field  `toml:"field"`
	Code   CodeSpec `toml:"code"`
}

type pageSpec struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	MarginTop    float64 `toml:"margin-top"`
	MarginRight  float64 `toml:"margin-right"`
	MarginBottom float64 `toml:"margin-bottom"`
	MarginLeft   float64 `toml:"margin-left"`
}

type gridSpec struct {
	Columns     int     `toml:"columns"`
	Rows        int     `toml:"rows"`
	ColumnGap   float64 `toml:"column-gap"`
	RowGap      float64 `toml:"row-gap"`
	LabelWidth  float64 `toml:"label-width"`
	LabelHeight float64 `toml:"label-height"`
}

// Load reads and validates a template from a TOML file.
func Load(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Template{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "template file %s not found", path)
		}
		return Template{}, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "failed to read template file %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML template document.
func Parse(data []byte) (Template, error) {
	var f templateFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return Template{}, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "malformed template file")
	}

	t := f.toTemplate()
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	return t, nil
}

func (f templateFile) toTemplate() Template {
	t := Template{
		Name:       f.Name,
		PageWidth:  f.Page.Width,
		PageHeight: f.Page.Height,

		MarginTop:    f.Page.MarginTop,
		MarginRight:  f.Page.MarginRight,
		MarginBottom: f.Page.MarginBottom,
		MarginLeft:   f.Page.MarginLeft,

		Columns:     f.Grid.Columns,
		Rows:        f.Grid.Rows,
		GapX:        f.Grid.ColumnGap,
		GapY:        f.Grid.RowGap,
		LabelWidth:  f.Grid.LabelWidth,
		LabelHeight: f.Grid.LabelHeight,

		Fields: f.Fields,
		Code:   f.Code,
	}

	// Bare [code] sections with include=true inherit the defaults.
	if t.Code.Include {
		if t.Code.Level == "" {
			t.Code.Level = LevelMedium
		}
		if t.Code.Corner == "" {
			t.Code.Corner = TopRight
		}
		if t.Code.Size == 0 {
			t.Code.Size = 0.9
		}
	}
	for i := range t.Fields {
		if t.Fields[i].Style == "" {
			t.Fields[i].Style = StylePlain
		}
	}
	return t
}
