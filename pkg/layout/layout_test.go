package layout

import (
	"context"
	"strings"
	"testing"

	"github.com/labelsmith/labelsmith/pkg/assets"
	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/qr"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// testTemplate is a small 2x2 grid so pagination cases stay readable.
func testTemplate() sheet.Template {
	return sheet.Template{
		Name:       "test",
		PageWidth:  100,
		PageHeight: 100,

		MarginTop:    10,
		MarginRight:  10,
		MarginBottom: 10,
		MarginLeft:   10,

		Columns: 2,
		Rows:    2,

		Fields: nil, // tests set the fields they assert on
		Code: sheet.CodeSpec{
			Include: true,
			Level:   sheet.LevelMedium,
			Corner:  sheet.TopRight,
			Size:    0.5,
		},
	}
}

func testRecords(n int) []assets.Record {
	recs := make([]assets.Record, 0, n)
	for i := 0; i < n; i++ {
		id := assets.ID{Major: 0, Minor: uint16(i + 1)}
		recs = append(recs, assets.Record{
			ID:       id,
			Name:     "Item " + id.String(),
			Location: "Garage",
		})
	}
	return recs
}

// stubEncoder returns a fixed 2x2 matrix without touching the real codec.
func stubEncoder() qr.Encoder {
	return qr.Func(func(payload string, level qr.Level) (qr.Matrix, error) {
		return qr.Matrix{{true, false}, {false, true}}, nil
	})
}

func codeBlocks(cmds []Command) []CodeBlock {
	var blocks []CodeBlock
	for _, c := range cmds {
		if b, ok := c.(CodeBlock); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func textRuns(cmds []Command) []TextRun {
	var runs []TextRun
	for _, c := range cmds {
		if r, ok := c.(TextRun); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

func TestBuildPagination(t *testing.T) {
	tpl := testTemplate()
	tpl.Fields = []sheet.Field{{Key: "name", Style: sheet.StyleTitle, Height: 5}}

	res, err := Build(context.Background(), testRecords(5), tpl, stubEncoder())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if res.Pages != 2 {
		t.Errorf("Pages = %d, want 2 (5 records on a 4-slot page)", res.Pages)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}

	blocks := codeBlocks(res.Commands)
	if len(blocks) != 5 {
		t.Fatalf("code blocks = %d, want 5", len(blocks))
	}
	wantPages := []int{0, 0, 0, 0, 1}
	for i, b := range blocks {
		if b.PageIndex != wantPages[i] {
			t.Errorf("record %d on page %d, want %d", i, b.PageIndex, wantPages[i])
		}
	}
}

func TestBuildPreservesRecordOrder(t *testing.T) {
	tpl := testTemplate()
	tpl.Fields = []sheet.Field{{Key: "id", Style: sheet.StyleSmall, Height: 4}}
	recs := testRecords(7)

	res, err := Build(context.Background(), recs, tpl, stubEncoder())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	runs := textRuns(res.Commands)
	if len(runs) != len(recs) {
		t.Fatalf("text runs = %d, want %d", len(runs), len(recs))
	}
	for i, r := range runs {
		if r.Text != recs[i].ID.String() {
			t.Errorf("run %d text = %q, want %q", i, r.Text, recs[i].ID.String())
		}
	}
}

func TestBuildEmptyRecords(t *testing.T) {
	res, err := Build(context.Background(), nil, testTemplate(), stubEncoder())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if res.Pages != 0 {
		t.Errorf("Pages = %d, want 0", res.Pages)
	}
	if len(res.Commands) != 0 {
		t.Errorf("Commands = %d, want none", len(res.Commands))
	}
}

func TestBuildSkip(t *testing.T) {
	tpl := testTemplate()
	grid := sheet.NewGrid(tpl)

	res, err := Build(context.Background(), testRecords(2), tpl, stubEncoder(), WithSkip(3))
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if res.Pages != 2 {
		t.Errorf("Pages = %d, want 2 (skip 3 pushes the second record to page 1)", res.Pages)
	}

	blocks := codeBlocks(res.Commands)
	if len(blocks) != 2 {
		t.Fatalf("code blocks = %d, want 2", len(blocks))
	}
	if blocks[0].PageIndex != 0 {
		t.Errorf("first record on page %d, want 0", blocks[0].PageIndex)
	}
	if blocks[1].PageIndex != 1 {
		t.Errorf("second record on page %d, want 1", blocks[1].PageIndex)
	}

	// The first record lands in the last slot of page 0, the second wraps
	// to the first slot of page 1.
	last := grid.Offsets()[grid.Capacity()-1]
	first := grid.Offsets()[0]
	wantX0 := last.X + grid.CellWidth() - blocks[0].Size
	if blocks[0].X != wantX0 || blocks[0].Y != last.Y {
		t.Errorf("first code at (%v, %v), want (%v, %v)", blocks[0].X, blocks[0].Y, wantX0, last.Y)
	}
	wantX1 := first.X + grid.CellWidth() - blocks[1].Size
	if blocks[1].X != wantX1 || blocks[1].Y != first.Y {
		t.Errorf("second code at (%v, %v), want (%v, %v)", blocks[1].X, blocks[1].Y, wantX1, first.Y)
	}
}

func TestBuildMissingAttribute(t *testing.T) {
	tpl := testTemplate()
	tpl.Fields = []sheet.Field{
		{Key: "name", Style: sheet.StyleTitle, Height: 5},
		{Key: "serial", Style: sheet.StyleSmall, Height: 3},
	}

	res, err := Build(context.Background(), testRecords(1), tpl, stubEncoder())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	runs := textRuns(res.Commands)
	if len(runs) != 2 {
		t.Fatalf("text runs = %d, want 2 (missing attributes still occupy their slot)", len(runs))
	}
	if runs[1].Text != "" {
		t.Errorf("missing attribute text = %q, want empty", runs[1].Text)
	}
	if runs[1].Y <= runs[0].Y {
		t.Errorf("second field at y=%v, want below first field at y=%v", runs[1].Y, runs[0].Y)
	}
}

func TestBuildEncoderFailureDegradesLabel(t *testing.T) {
	tpl := testTemplate()
	tpl.Fields = []sheet.Field{{Key: "name", Style: sheet.StyleTitle, Height: 5}}
	recs := testRecords(3)
	bad := recs[1].ID.String()

	enc := qr.Func(func(payload string, level qr.Level) (qr.Matrix, error) {
		if payload == bad {
			return nil, errors.New(errors.ErrCodePayloadTooLarge, "content too long")
		}
		return qr.Matrix{{true}}, nil
	})

	res, err := Build(context.Background(), recs, tpl, enc)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	blocks := codeBlocks(res.Commands)
	if len(blocks) != 2 {
		t.Errorf("code blocks = %d, want 2 (failing label keeps its text)", len(blocks))
	}
	runs := textRuns(res.Commands)
	if len(runs) != 3 {
		t.Errorf("text runs = %d, want 3", len(runs))
	}

	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", res.Warnings)
	}
	if res.Warnings[0].AssetID != bad {
		t.Errorf("warning asset = %q, want %q", res.Warnings[0].AssetID, bad)
	}
	if !strings.Contains(res.Warnings[0].Message, "code omitted") {
		t.Errorf("warning message = %q, want it to say the code was omitted", res.Warnings[0].Message)
	}
}

func TestBuildPageMonotone(t *testing.T) {
	tpl := testTemplate()
	tpl.Fields = []sheet.Field{{Key: "name", Style: sheet.StyleTitle, Height: 5}}

	res, err := Build(context.Background(), testRecords(11), tpl, stubEncoder())
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	prev := 0
	for i, cmd := range res.Commands {
		if cmd.Page() < prev {
			t.Fatalf("command %d on page %d after page %d", i, cmd.Page(), prev)
		}
		prev = cmd.Page()
	}
}

func TestBuildInvalidTemplate(t *testing.T) {
	tpl := testTemplate()
	tpl.Columns = 0

	_, err := Build(context.Background(), testRecords(1), tpl, stubEncoder())
	if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Fatalf("Build() error = %v, want INVALID_TEMPLATE", err)
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tpl := testTemplate()
	tpl.Fields = []sheet.Field{{Key: "name", Style: sheet.StyleTitle, Height: 5}}

	_, err := Build(ctx, testRecords(4), tpl, stubEncoder())
	if err == nil {
		t.Fatal("Build() = nil error, want cancellation")
	}
}

func TestBuildNoCode(t *testing.T) {
	tpl := testTemplate()
	tpl.Code = sheet.CodeSpec{}
	tpl.Fields = []sheet.Field{{Key: "name", Style: sheet.StyleTitle, Height: 5}}

	res, err := Build(context.Background(), testRecords(2), tpl, nil)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if blocks := codeBlocks(res.Commands); len(blocks) != 0 {
		t.Errorf("code blocks = %d, want none", len(blocks))
	}

	// Without a code the text column spans the whole label.
	grid := sheet.NewGrid(tpl)
	runs := textRuns(res.Commands)
	if runs[0].Width != grid.CellWidth() {
		t.Errorf("text width = %v, want full cell %v", runs[0].Width, grid.CellWidth())
	}
}

func TestBuildCodeCorners(t *testing.T) {
	recs := testRecords(1)

	tests := []struct {
		corner     sheet.Corner
		wantLeft   bool // code x equals the slot origin
		wantTop    bool // code y equals the slot origin
		textShoved bool // text x moves right to clear the code
	}{
		{sheet.TopLeft, true, true, true},
		{sheet.TopRight, false, true, false},
		{sheet.BottomLeft, true, false, true},
		{sheet.BottomRight, false, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.corner), func(t *testing.T) {
			tpl := testTemplate()
			tpl.Code.Corner = tt.corner
			tpl.Fields = []sheet.Field{{Key: "name", Style: sheet.StyleTitle, Height: 5}}
			grid := sheet.NewGrid(tpl)
			origin := grid.Offsets()[0]

			res, err := Build(context.Background(), recs, tpl, stubEncoder())
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			block := codeBlocks(res.Commands)[0]
			run := textRuns(res.Commands)[0]

			if gotLeft := block.X == origin.X; gotLeft != tt.wantLeft {
				t.Errorf("code x = %v (origin %v), wantLeft=%v", block.X, origin.X, tt.wantLeft)
			}
			if gotTop := block.Y == origin.Y; gotTop != tt.wantTop {
				t.Errorf("code y = %v (origin %v), wantTop=%v", block.Y, origin.Y, tt.wantTop)
			}
			if shoved := run.X > origin.X; shoved != tt.textShoved {
				t.Errorf("text x = %v (origin %v), want shoved=%v", run.X, origin.X, tt.textShoved)
			}
		})
	}
}

func TestURLPayload(t *testing.T) {
	fn := URLPayload("https://homebox.example.com")
	rec := assets.Record{ID: assets.ID{Major: 0, Minor: 15}}
	if got, want := fn(rec), "https://homebox.example.com/a/000-015"; got != want {
		t.Errorf("URLPayload() = %q, want %q", got, want)
	}
}
