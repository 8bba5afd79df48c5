package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/labelsmith/labelsmith/pkg/layout"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// pageGap is the vertical spacing between stacked pages, mm.
const pageGap = 5.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	outlines bool
}

// WithOutlines draws a faint border around every label slot, used to check
// template geometry against a physical sheet before committing to a print
// run.
func WithOutlines() SVGOption { return func(r *svgRenderer) { r.outlines = true } }

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// RenderSVG renders the layout as a single SVG document with the pages
// stacked vertically. Coordinates are millimeters throughout, matching the
// template's coordinate system.
func RenderSVG(res layout.Result, tpl sheet.Template, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	totalHeight := float64(res.Pages) * tpl.PageHeight
	if res.Pages > 1 {
		totalHeight += float64(res.Pages-1) * pageGap
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.2fmm" height="%.2fmm" font-family="Helvetica, Arial, sans-serif">`+"\n",
		tpl.PageWidth, totalHeight, tpl.PageWidth, totalHeight)

	for page := 0; page < res.Pages; page++ {
		renderPageBackground(&buf, &r, tpl, pageOffset(page, tpl))
	}
	for _, cmd := range res.Commands {
		offset := pageOffset(cmd.Page(), tpl)
		switch c := cmd.(type) {
		case layout.TextRun:
			renderTextRun(&buf, c, offset)
		case layout.CodeBlock:
			renderCodeBlock(&buf, c, offset)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// pageOffset returns the vertical offset of a page in the stacked document.
func pageOffset(page int, tpl sheet.Template) float64 {
	return float64(page) * (tpl.PageHeight + pageGap)
}

func renderPageBackground(buf *bytes.Buffer, r *svgRenderer, tpl sheet.Template, offset float64) {
	fmt.Fprintf(buf, `  <rect x="0" y="%.2f" width="%.2f" height="%.2f" fill="white" stroke="#cccccc" stroke-width="0.2"/>`+"\n",
		offset, tpl.PageWidth, tpl.PageHeight)

	if !r.outlines {
		return
	}
	grid := sheet.NewGrid(tpl)
	for _, p := range grid.Offsets() {
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#bbbbbb" stroke-width="0.1" stroke-dasharray="1,1"/>`+"\n",
			p.X, p.Y+offset, grid.CellWidth(), grid.CellHeight())
	}
}

func renderTextRun(buf *bytes.Buffer, c layout.TextRun, offset float64) {
	if c.Text == "" {
		return
	}
	f := fontFor(c.Style)
	weight := "normal"
	if f.Bold {
		weight = "bold"
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.2f" font-weight="%s">%s</text>`+"\n",
		c.X, baseline(c.Y+offset, c.Height, f.SizeMM), f.SizeMM, weight, xmlEscaper.Replace(c.Text))
}

func renderCodeBlock(buf *bytes.Buffer, c layout.CodeBlock, offset float64) {
	n := c.Modules.Size()
	if n == 0 {
		return
	}
	module := c.Size / float64(n)

	fmt.Fprintf(buf, `  <g shape-rendering="crispEdges">`+"\n")
	for row, cells := range c.Modules {
		for col, dark := range cells {
			if !dark {
				continue
			}
			fmt.Fprintf(buf, `    <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="black"/>`+"\n",
				c.X+float64(col)*module, c.Y+offset+float64(row)*module, module, module)
		}
	}
	buf.WriteString("  </g>\n")
}
