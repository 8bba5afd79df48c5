// Package layout assigns asset records to label slots and turns them into
// positioned draw commands.
//
// The engine is a pure, single-threaded computation over an
// already-resolved record sequence: record i lands in slot i mod C on page
// i div C, where C is the template's per-page capacity. That single
// modular rule is the entire pagination policy and keeps output order
// identical to input order. Per-label problems (an oversized code
// payload, a missing attribute) degrade that one label and are collected
// as warnings; they never abort the pass.
package layout

import (
	"context"

	"github.com/labelsmith/labelsmith/pkg/assets"
	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/qr"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// codeGap is the clearance between a code block and the field column, mm.
const codeGap = 1.0

// PayloadFunc builds the scannable payload for a record. The default
// encodes the bare asset ID; [URLPayload] produces a canonical link back
// to the asset in the inventory service.
type PayloadFunc func(assets.Record) string

// IDPayload encodes just the asset identifier.
func IDPayload(r assets.Record) string { return r.ID.String() }

// URLPayload returns a PayloadFunc encoding a canonical asset URL,
// e.g. "https://homebox.example.com/a/000-015".
func URLPayload(server string) PayloadFunc {
	return func(r assets.Record) string {
		return server + "/a/" + r.ID.String()
	}
}

// Option configures a layout pass.
type Option func(*engine)

// WithSkip leaves the first n slots of the first page empty, so partially
// used sheets can be fed through the printer again.
func WithSkip(n int) Option {
	return func(e *engine) {
		if n > 0 {
			e.skip = n
		}
	}
}

// WithPayload sets the code payload policy.
func WithPayload(fn PayloadFunc) Option {
	return func(e *engine) { e.payload = fn }
}

// Result is the outcome of one layout pass: the ordered draw commands,
// the total page count, and any per-label warnings. It is produced once
// per invocation and handed straight to a renderer; nothing is persisted.
type Result struct {
	Commands []Command
	Pages    int
	Warnings []assets.Warning
}

type engine struct {
	tpl     sheet.Template
	grid    sheet.Grid
	enc     qr.Encoder
	level   qr.Level
	skip    int
	payload PayloadFunc
}

// Build lays out records on sheets described by tpl. The template is
// validated before any record is touched. Encoding failures for single
// labels are downgraded to warnings; the only errors Build returns are an
// invalid template or context cancellation.
//
// Cancellation is cooperative at record granularity: each record's work is
// O(fields) and independent, so ctx is checked before starting the next
// record.
func Build(ctx context.Context, records []assets.Record, tpl sheet.Template, enc qr.Encoder, opts ...Option) (Result, error) {
	if err := tpl.Validate(); err != nil {
		return Result{}, err
	}

	e := engine{
		tpl:     tpl,
		grid:    sheet.NewGrid(tpl),
		enc:     enc,
		payload: IDPayload,
	}
	for _, opt := range opts {
		opt(&e)
	}

	if tpl.Code.Include {
		level, err := qr.ParseLevel(tpl.Code.Level)
		if err != nil {
			return Result{}, err
		}
		e.level = level
		if e.enc == nil {
			e.enc = qr.Default()
		}
	}

	var result Result
	if len(records) == 0 {
		return result, nil
	}

	maxPage := 0
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		slot := e.grid.Slot(i, e.skip)
		if slot.Page > maxPage {
			maxPage = slot.Page
		}
		e.emitLabel(&result, slot, rec)
	}

	result.Pages = maxPage + 1
	return result, nil
}

// emitLabel appends the draw commands for one record's label.
func (e *engine) emitLabel(result *Result, slot sheet.Slot, rec assets.Record) {
	cellW, cellH := e.grid.CellWidth(), e.grid.CellHeight()

	codeSize := 0.0
	if e.tpl.Code.Include {
		codeSize = e.tpl.Code.Size * min(cellW, cellH)
	}

	textX, textW := textColumn(slot.X, cellW, codeSize, e.tpl.Code.Corner)

	// Fields stack top to bottom; the offset is the running sum of the
	// heights already allocated.
	y := slot.Y
	for _, f := range e.tpl.Fields {
		result.Commands = append(result.Commands, TextRun{
			PageIndex: slot.Page,
			X:         textX,
			Y:         y,
			Width:     textW,
			Height:    f.Height,
			Text:      rec.Attribute(f.Key),
			Style:     f.Style,
		})
		y += f.Height
	}

	if !e.tpl.Code.Include {
		return
	}

	payload := e.payload(rec)
	matrix, err := e.enc.Encode(payload, e.level)
	if err != nil {
		// One oversized payload must not waste the print run: drop this
		// label's code and keep going.
		result.Warnings = append(result.Warnings, assets.Warning{
			AssetID: rec.ID.String(),
			Message: "code omitted: " + errors.UserMessage(err),
		})
		return
	}

	cx, cy := codeOrigin(slot.Point, cellW, cellH, codeSize, e.tpl.Code.Corner)
	result.Commands = append(result.Commands, CodeBlock{
		PageIndex: slot.Page,
		X:         cx,
		Y:         cy,
		Size:      codeSize,
		Modules:   matrix,
		Payload:   payload,
	})
}

// textColumn returns the x origin and width available to text fields,
// leaving room for the code block when it sits on one side of the label.
func textColumn(slotX, cellW, codeSize float64, corner sheet.Corner) (x, w float64) {
	if codeSize == 0 {
		return slotX, cellW
	}
	switch corner {
	case sheet.TopLeft, sheet.BottomLeft:
		return slotX + codeSize + codeGap, cellW - codeSize - codeGap
	default:
		return slotX, cellW - codeSize - codeGap
	}
}

// codeOrigin computes the code block's absolute top-left coordinate for
// the configured corner.
func codeOrigin(slot sheet.Point, cellW, cellH, size float64, corner sheet.Corner) (x, y float64) {
	x = slot.X
	y = slot.Y
	switch corner {
	case sheet.TopRight:
		x = slot.X + cellW - size
	case sheet.BottomLeft:
		y = slot.Y + cellH - size
	case sheet.BottomRight:
		x = slot.X + cellW - size
		y = slot.Y + cellH - size
	}
	return x, y
}
