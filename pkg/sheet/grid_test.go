package sheet

import (
	"math"
	"testing"
)

func TestGridOffsetsDistinctAndInBounds(t *testing.T) {
	tpl := Default()
	g := NewGrid(tpl)

	if got := g.Capacity(); got != 65 {
		t.Fatalf("Capacity() = %d, want 65", got)
	}

	seen := make(map[Point]bool, g.Capacity())
	for i, p := range g.Offsets() {
		if seen[p] {
			t.Errorf("offset %d duplicates %+v", i, p)
		}
		seen[p] = true

		if p.X < tpl.MarginLeft-geomEps || p.X+g.CellWidth() > tpl.PageWidth-tpl.MarginRight+geomEps {
			t.Errorf("offset %d x=%g out of horizontal bounds", i, p.X)
		}
		if p.Y < tpl.MarginTop-geomEps || p.Y+g.CellHeight() > tpl.PageHeight-tpl.MarginBottom+geomEps {
			t.Errorf("offset %d y=%g out of vertical bounds", i, p.Y)
		}
	}
	if len(seen) != g.Capacity() {
		t.Errorf("got %d distinct offsets, want %d", len(seen), g.Capacity())
	}
}

func TestGridSlotAssignment(t *testing.T) {
	tpl := Default()
	tpl.Columns = 2
	tpl.Rows = 2
	g := NewGrid(tpl)

	tests := []struct {
		i, skip            int
		page, column, row  int
	}{
		{0, 0, 0, 0, 0},
		{1, 0, 0, 1, 0},
		{2, 0, 0, 0, 1},
		{3, 0, 0, 1, 1},
		{4, 0, 1, 0, 0}, // overflow to next page
		{9, 0, 2, 1, 0},
		{0, 3, 0, 1, 1}, // skip pushes into last slot
		{1, 3, 1, 0, 0}, // and then onto a fresh page
	}

	for _, tt := range tests {
		s := g.Slot(tt.i, tt.skip)
		if s.Page != tt.page || s.Column != tt.column || s.Row != tt.row {
			t.Errorf("Slot(%d, %d) = page %d col %d row %d; want page %d col %d row %d",
				tt.i, tt.skip, s.Page, s.Column, s.Row, tt.page, tt.column, tt.row)
		}
	}
}

func TestGridSlotCoordinates(t *testing.T) {
	tpl := Template{
		PageWidth: 100, PageHeight: 100,
		MarginTop: 10, MarginLeft: 5,
		Columns: 2, Rows: 2,
		GapX: 2, GapY: 3,
		LabelWidth: 40, LabelHeight: 20,
		Fields: []Field{{Key: "name", Style: StylePlain, Height: 5}},
	}
	if err := tpl.Validate(); err != nil {
		t.Fatalf("fixture template invalid: %v", err)
	}
	g := NewGrid(tpl)

	tests := []struct {
		idx  int
		x, y float64
	}{
		{0, 5, 10},
		{1, 5 + 40 + 2, 10},
		{2, 5, 10 + 20 + 3},
		{3, 47, 33},
	}

	for _, tt := range tests {
		p := g.Offsets()[tt.idx]
		if math.Abs(p.X-tt.x) > geomEps || math.Abs(p.Y-tt.y) > geomEps {
			t.Errorf("offset %d = (%g, %g), want (%g, %g)", tt.idx, p.X, p.Y, tt.x, tt.y)
		}
	}

	// Slot coordinates on later pages repeat the within-page offsets.
	s := g.Slot(4, 0)
	if s.Page != 1 || s.X != 5 || s.Y != 10 {
		t.Errorf("Slot(4, 0) = %+v, want page 1 at (5, 10)", s)
	}
}
