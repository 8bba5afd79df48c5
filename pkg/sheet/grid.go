package sheet

// Point is a page-relative coordinate in millimeters, top-left origin.
type Point struct {
	X float64
	Y float64
}

// Slot is one grid cell assignment: which page a label lands on, its
// column/row within the page grid, and the absolute top-left coordinate.
// Slots are always derived from a Grid; they are never stored independently
// of the template they came from.
type Slot struct {
	Page   int
	Column int
	Row    int
	Point
}

// Grid precomputes the per-page slot coordinates for a template. Slots fill
// row-major: left to right, then top to bottom, matching how sheets come
// out of a printer tray.
type Grid struct {
	columns  int
	rows     int
	cellW    float64
	cellH    float64
	offsets  []Point
	capacity int
}

// NewGrid derives the coordinate grid from a validated template. It is a
// pure function of the template; rebuild the grid whenever the template
// changes.
func NewGrid(t Template) Grid {
	g := Grid{
		columns:  t.Columns,
		rows:     t.Rows,
		cellW:    t.CellWidth(),
		cellH:    t.CellHeight(),
		capacity: t.Capacity(),
	}

	g.offsets = make([]Point, 0, g.capacity)
	for row := 0; row < t.Rows; row++ {
		for col := 0; col < t.Columns; col++ {
			g.offsets = append(g.offsets, Point{
				X: t.MarginLeft + float64(col)*(g.cellW+t.GapX),
				Y: t.MarginTop + float64(row)*(g.cellH+t.GapY),
			})
		}
	}
	return g
}

// Capacity returns the number of slots per page.
func (g Grid) Capacity() int { return g.capacity }

// CellWidth returns the label width in mm.
func (g Grid) CellWidth() float64 { return g.cellW }

// CellHeight returns the label height in mm.
func (g Grid) CellHeight() float64 { return g.cellH }

// Offsets returns the within-page slot coordinates in fill order.
// The slice has Capacity() entries and must not be mutated.
func (g Grid) Offsets() []Point { return g.offsets }

// Slot maps the i-th record (plus any skipped leading slots) to its page
// and cell. Records pack densely in input order; there is no other
// pagination policy.
func (g Grid) Slot(i, skip int) Slot {
	n := i + skip
	idx := n % g.capacity
	return Slot{
		Page:   n / g.capacity,
		Column: idx % g.columns,
		Row:    idx / g.columns,
		Point:  g.offsets[idx],
	}
}
