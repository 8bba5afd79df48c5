package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/labelsmith/labelsmith/pkg/assets"
	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/layout"
	"github.com/labelsmith/labelsmith/pkg/render/sink"
)

// Runner executes the label pipeline. It is stateless apart from the
// resolver and logger, so one Runner can serve many runs concurrently.
type Runner struct {
	Resolver assets.Resolver
	Logger   *log.Logger
}

// NewRunner creates a runner around a resolver. If logger is nil, the
// default logger is used.
func NewRunner(resolver assets.Resolver, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Resolver: resolver, Logger: logger}
}

// Execute runs the complete resolve → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	sel, err := assets.ParseSelector(opts.Selector)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.New(),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}

	// Stage 1: Resolve
	resolveStart := time.Now()
	records, warnings, err := r.Resolver.Resolve(ctx, sel, opts.OnMissing)
	if err != nil {
		return nil, err
	}
	result.Records = len(records)
	result.Warnings = append(result.Warnings, warnings...)
	result.Stats.ResolveTime = time.Since(resolveStart)

	logger.Info("resolved assets",
		"requested", sel.Count(),
		"found", len(records),
		"duration", result.Stats.ResolveTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	res, err := layout.Build(ctx, records, opts.Template, opts.Encoder,
		layout.WithSkip(opts.Skip),
		layout.WithPayload(opts.payloadFunc()))
	if err != nil {
		return nil, err
	}
	result.Pages = res.Pages
	result.Warnings = append(result.Warnings, res.Warnings...)
	result.Stats.LayoutTime = time.Since(layoutStart)

	logger.Info("laid out labels",
		"labels", len(records),
		"pages", res.Pages,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	for _, format := range opts.Formats {
		data, err := r.renderArtifact(format, res, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) renderArtifact(format string, res layout.Result, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML:
		return sink.RenderHTML(res, opts.Template, sink.WithTitle(opts.Template.Name)), nil
	case FormatSVG:
		return sink.RenderSVG(res, opts.Template, opts.svgOptions()...), nil
	case FormatPDF:
		return sink.RenderPDF(res, opts.Template)
	case FormatPNG:
		return sink.RenderPNG(res, opts.Template,
			sink.WithScale(opts.PNGScale),
			sink.WithPNGSVGOptions(opts.svgOptions()...))
	case FormatJSON:
		return sink.RenderJSON(res, opts.Template)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}
