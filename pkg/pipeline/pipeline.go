// Package pipeline runs the resolve → layout → render sequence behind
// every label generation entry point. Centralizing the stage order here
// keeps the CLI thin and gives tests one seam to drive the whole flow.
//
// The stage order is fixed: the template is validated before the resolver
// is contacted, so a bad geometry never costs a network round trip.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/labelsmith/labelsmith/pkg/assets"
	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/layout"
	"github.com/labelsmith/labelsmith/pkg/qr"
	"github.com/labelsmith/labelsmith/pkg/render/sink"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Payload policies for the scannable code.
const (
	PayloadID  = "id"
	PayloadURL = "url"
)

// DefaultPNGScale is the raster scale factor for PNG export.
const DefaultPNGScale = 4.0

// Options configures one pipeline run.
type Options struct {
	// Selector picks the assets to print, e.g. "000-001--000-010,000-015".
	Selector string `json:"selector"`

	// Template is the sheet geometry and label content. The zero value is
	// rejected; callers build it from sheet.Default, a TOML file, or both.
	Template sheet.Template `json:"-"`

	// OnMissing controls what a missing asset ID does to the run.
	OnMissing assets.MissingPolicy `json:"-"`

	// Skip leaves the first n label slots empty for partially used sheets.
	Skip int `json:"skip,omitempty"`

	// Payload selects what the code encodes: PayloadID or PayloadURL.
	Payload string `json:"payload,omitempty"`

	// Server is the inventory base URL, required by PayloadURL.
	Server string `json:"server,omitempty"`

	// Formats lists the outputs to render. Defaults to PDF.
	Formats []string `json:"formats,omitempty"`

	// PNGScale is the raster scale factor for PNG output.
	PNGScale float64 `json:"png_scale,omitempty"`

	// Outlines draws label slot borders in SVG and PNG output, used to
	// calibrate a template against a physical sheet.
	Outlines bool `json:"outlines,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger `json:"-"`
	Encoder qr.Encoder  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: html, svg, pdf, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent; repeated calls are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Selector == "" {
		return errors.New(errors.ErrCodeInvalidSelector, "selector is required")
	}
	if err := o.Template.Validate(); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	switch o.Payload {
	case "":
		o.Payload = PayloadID
	case PayloadID:
	case PayloadURL:
		if o.Server == "" {
			return errors.New(errors.ErrCodeInvalidInput, "url payload requires a server")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid payload policy: %q (must be 'id' or 'url')", o.Payload)
	}

	if o.Skip < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "skip must not be negative")
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// svgOptions translates the run options into SVG sink options, shared by
// the svg and png formats.
func (o *Options) svgOptions() []sink.SVGOption {
	if o.Outlines {
		return []sink.SVGOption{sink.WithOutlines()}
	}
	return nil
}

// payloadFunc resolves the payload policy into the layout engine's hook.
func (o *Options) payloadFunc() layout.PayloadFunc {
	if o.Payload == PayloadURL {
		return layout.URLPayload(o.Server)
	}
	return layout.IDPayload
}

// Result contains the outputs of one pipeline run.
type Result struct {
	// RunID identifies this run in logs and artifact metadata.
	RunID uuid.UUID

	// Records is the number of assets that made it onto the sheets.
	Records int

	// Pages is the sheet count of the rendered batch.
	Pages int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings merges resolver and layout warnings, in stage order.
	Warnings []assets.Warning

	// Stats contains timing information per stage.
	Stats Stats
}

// Stats contains pipeline execution timings.
type Stats struct {
	ResolveTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}
