package layout

import (
	"github.com/labelsmith/labelsmith/pkg/qr"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// Command is one backend-independent drawing instruction at an absolute
// page position. Concrete commands are [TextRun] and [CodeBlock].
//
// Command order is rendering order. The only ordering guarantee consumers
// may rely on is page monotonicity: all commands for page n precede any
// command for page n+1, which permits streaming renderers.
type Command interface {
	// Page returns the 0-based page index the command draws on.
	Page() int
}

// TextRun draws a single line of text inside a label slot. Width and
// Height bound the space the text may occupy; wrapping or truncating into
// that box is the renderer's concern, never the layout engine's.
type TextRun struct {
	PageIndex int
	X, Y      float64 // absolute top-left, mm
	Width     float64
	Height    float64
	Text      string
	Style     sheet.FieldStyle
}

// Page implements [Command].
func (t TextRun) Page() int { return t.PageIndex }

// CodeBlock draws a scannable code as a square module matrix.
type CodeBlock struct {
	PageIndex int
	X, Y      float64 // absolute top-left, mm
	Size      float64 // side length, mm
	Modules   qr.Matrix
	Payload   string // what the code encodes, kept for tooling output
}

// Page implements [Command].
func (c CodeBlock) Page() int { return c.PageIndex }
