package sink

import (
	"github.com/labelsmith/labelsmith/pkg/layout"
	"github.com/labelsmith/labelsmith/pkg/render"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 4.0, roughly 100 dpi at
// label sizes).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the layout as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(res layout.Result, tpl sheet.Template, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 4.0}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(res, tpl, r.svgOpts...)
	return render.ToPNG(svg, r.scale)
}
