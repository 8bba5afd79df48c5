package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/labelsmith/labelsmith/pkg/assets"
	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/homebox"
	"github.com/labelsmith/labelsmith/pkg/httputil"
	"github.com/labelsmith/labelsmith/pkg/pipeline"
	"github.com/labelsmith/labelsmith/pkg/session"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// cacheTTL is how long resolved item data stays fresh on disk. Inventory
// details change rarely between print runs; --refresh forces a round trip.
const cacheTTL = 24 * time.Hour

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	server   string // Homebox base URL
	username string // ad-hoc login when no session is stored
	password string // discouraged on argv, prompted when empty

	templatePath string  // TOML template file, defaults applied when empty
	output       string  // output file or base path
	onMissing    string  // missing-ID policy: skip or abort
	payload      string  // code payload policy: id or url
	skip         int     // leading label slots to leave empty
	refresh      bool    // bypass the response cache
	noCode       bool    // drop the scannable code entirely
	outlines     bool    // draw slot outlines (svg/png calibration aid)
	pngScale     float64 // raster scale for png output

	// Sheet geometry overrides, all in millimeters.
	pageWidth, pageHeight                            float64
	marginTop, marginRight, marginBottom, marginLeft float64
	columns, rows                                    int
	gapX, gapY                                       float64
	labelWidth, labelHeight                          float64
	codeLevel, codeCorner                            string
	codeSize                                         float64
}

// newGenerateCmd creates the generate command, the main path through the
// tool: resolve a selector against Homebox and render label sheets.
func newGenerateCmd() *cobra.Command {
	cmd, _ := newGenerateCommand()
	return cmd
}

// newGenerateCommand additionally exposes the bound options for tests.
func newGenerateCommand() (*cobra.Command, *generateOpts) {
	var opts generateOpts
	var formatsStr string
	def := sheet.Default()

	cmd := &cobra.Command{
		Use:   "generate <selector>",
		Short: "Generate printable label sheets for a range of assets",
		Long: `Generate resolves asset IDs against a Homebox instance and renders them
as printable label sheets.

The selector picks the assets: single IDs, inclusive ranges, or a
comma-separated mix of both.

  labelsmith generate 000-015
  labelsmith generate 000-001--000-010
  labelsmith generate 000-001--000-010,000-015 -f pdf,html -o garage

Geometry flags override the template (or the built-in A4 default) field by
field, so a sheet can be nudged without writing a template file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cmd, args[0], formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.server, "server", "s", "", "Homebox base URL, e.g. https://homebox.example.com")
	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "username for ad-hoc login when no session is stored")
	cmd.Flags().StringVar(&opts.password, "password", "", "password for ad-hoc login (prompted when omitted)")

	cmd.Flags().StringVarP(&opts.templatePath, "template", "t", "", "sheet template file (TOML)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): pdf (default), html, svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "labels", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.onMissing, "on-missing", "skip", "missing asset policy: skip or abort")
	cmd.Flags().StringVar(&opts.payload, "payload", "id", "code payload: id or url (link back to the item)")
	cmd.Flags().IntVar(&opts.skip, "skip", 0, "leave the first n label slots empty (reuse partial sheets)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&opts.noCode, "no-code", false, "print text-only labels without a code")
	cmd.Flags().BoolVar(&opts.outlines, "outlines", false, "draw label slot outlines (svg and png)")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", pipeline.DefaultPNGScale, "raster scale factor for png output")

	cmd.Flags().Float64Var(&opts.pageWidth, "page-width", def.PageWidth, "page width in mm")
	cmd.Flags().Float64Var(&opts.pageHeight, "page-height", def.PageHeight, "page height in mm")
	cmd.Flags().Float64Var(&opts.marginTop, "margin-top", def.MarginTop, "top margin in mm")
	cmd.Flags().Float64Var(&opts.marginRight, "margin-right", def.MarginRight, "right margin in mm")
	cmd.Flags().Float64Var(&opts.marginBottom, "margin-bottom", def.MarginBottom, "bottom margin in mm")
	cmd.Flags().Float64Var(&opts.marginLeft, "margin-left", def.MarginLeft, "left margin in mm")
	cmd.Flags().IntVar(&opts.columns, "columns", def.Columns, "label columns per page")
	cmd.Flags().IntVar(&opts.rows, "rows", def.Rows, "label rows per page")
	cmd.Flags().Float64Var(&opts.gapX, "gap-x", def.GapX, "horizontal gap between labels in mm")
	cmd.Flags().Float64Var(&opts.gapY, "gap-y", def.GapY, "vertical gap between labels in mm")
	cmd.Flags().Float64Var(&opts.labelWidth, "label-width", 0, "label width in mm (derived when omitted)")
	cmd.Flags().Float64Var(&opts.labelHeight, "label-height", 0, "label height in mm (derived when omitted)")
	cmd.Flags().StringVar(&opts.codeLevel, "code-level", def.Code.Level, "code error-correction level: low, medium, high, highest")
	cmd.Flags().StringVar(&opts.codeCorner, "code-corner", string(def.Code.Corner), "code corner: top-left, top-right, bottom-left, bottom-right")
	cmd.Flags().Float64Var(&opts.codeSize, "code-size", def.Code.Size, "code size as a fraction of the label's smaller side")

	return cmd, &opts
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["pdf"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPDF}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		formats = append(formats, strings.TrimSpace(p))
	}
	return formats
}

func runGenerate(ctx context.Context, cmd *cobra.Command, selector string, formats []string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	tpl, err := buildTemplate(cmd, opts)
	if err != nil {
		return err
	}
	policy, err := assets.ParseMissingPolicy(opts.onMissing)
	if err != nil {
		return err
	}
	outputs, err := outputPaths(opts.output, formats)
	if err != nil {
		return err
	}

	client, err := newAuthedClient(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(homebox.NewResolver(client), logger)
	track := newProgress(logger)

	result, err := runner.Execute(ctx, pipeline.Options{
		Selector:  selector,
		Template:  tpl,
		OnMissing: policy,
		Skip:      opts.skip,
		Payload:   opts.payload,
		Server:    opts.server,
		Formats:   formats,
		PNGScale:  opts.pngScale,
		Outlines:  opts.outlines,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	track.done(fmt.Sprintf("Generated %d labels on %d pages", result.Records, result.Pages))

	for _, w := range result.Warnings {
		printWarning("%s", w.String())
	}

	printSuccess("Wrote %d format(s)", len(outputs))
	for _, format := range formats {
		path := outputs[format]
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "writing %s", path)
		}
		printFile(path)
	}
	return nil
}

// buildTemplate assembles the effective sheet template: the TOML file (or
// the built-in default) overlaid with exactly the geometry flags the user
// set on the command line.
func buildTemplate(cmd *cobra.Command, opts *generateOpts) (sheet.Template, error) {
	tpl := sheet.Default()
	if opts.templatePath != "" {
		loaded, err := sheet.Load(opts.templatePath)
		if err != nil {
			return sheet.Template{}, err
		}
		tpl = loaded
	}

	f := cmd.Flags()
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"page-width", func() { tpl.PageWidth = opts.pageWidth }},
		{"page-height", func() { tpl.PageHeight = opts.pageHeight }},
		{"margin-top", func() { tpl.MarginTop = opts.marginTop }},
		{"margin-right", func() { tpl.MarginRight = opts.marginRight }},
		{"margin-bottom", func() { tpl.MarginBottom = opts.marginBottom }},
		{"margin-left", func() { tpl.MarginLeft = opts.marginLeft }},
		{"columns", func() { tpl.Columns = opts.columns }},
		{"rows", func() { tpl.Rows = opts.rows }},
		{"gap-x", func() { tpl.GapX = opts.gapX }},
		{"gap-y", func() { tpl.GapY = opts.gapY }},
		{"label-width", func() { tpl.LabelWidth = opts.labelWidth }},
		{"label-height", func() { tpl.LabelHeight = opts.labelHeight }},
		{"code-level", func() { tpl.Code.Level = opts.codeLevel }},
		{"code-corner", func() { tpl.Code.Corner = sheet.Corner(opts.codeCorner) }},
		{"code-size", func() { tpl.Code.Size = opts.codeSize }},
	}
	for _, o := range overrides {
		if f.Changed(o.flag) {
			o.apply()
		}
	}
	if opts.noCode {
		tpl.Code.Include = false
	}
	return tpl, nil
}

// outputPaths maps each format to its target file and refuses to clobber
// existing files. A single format keeps the output path as given when its
// extension already matches; everything else gets base + "." + format.
func outputPaths(output string, formats []string) (map[string]string, error) {
	base := output
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); pipeline.ValidFormats[ext] {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	paths := make(map[string]string, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && strings.TrimPrefix(filepath.Ext(output), ".") == format {
			path = output
		}
		if _, err := os.Stat(path); err == nil {
			return nil, errors.New(errors.ErrCodeFileExists,
				"output file %s already exists, refusing to overwrite", path)
		}
		paths[format] = path
	}
	return paths, nil
}

// newAuthedClient builds the Homebox client using a stored session, or an
// ad-hoc login when credentials are given on the command line.
func newAuthedClient(ctx context.Context, opts *generateOpts) (*homebox.Client, error) {
	if opts.server == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "a server is required, pass --server")
	}

	cache, err := httputil.NewCache("", cacheTTL)
	if err != nil {
		return nil, err
	}

	clientOpts := []homebox.ClientOption{homebox.WithCache(cache)}
	if opts.refresh {
		clientOpts = append(clientOpts, homebox.WithRefresh())
	}

	token, err := resolveToken(ctx, opts)
	if err != nil {
		return nil, err
	}
	clientOpts = append(clientOpts, homebox.WithToken(token))

	return homebox.NewClient(opts.server, clientOpts...)
}

// resolveToken prefers the stored session and falls back to an ad-hoc
// login when --username is given. The ad-hoc token is not persisted; use
// the login command to keep a session.
func resolveToken(ctx context.Context, opts *generateOpts) (string, error) {
	store, err := session.NewFileStore("")
	if err != nil {
		return "", err
	}
	if sess, err := store.Get(ctx, opts.server); err == nil && sess != nil {
		return sess.Token, nil
	}

	if opts.username == "" {
		return "", errors.New(errors.ErrCodeSessionNotFound,
			"not logged in to %s, run 'labelsmith login --server %s' or pass --username", opts.server, opts.server)
	}

	password, err := obtainPassword(opts.password)
	if err != nil {
		return "", err
	}

	client, err := homebox.NewClient(opts.server)
	if err != nil {
		return "", err
	}
	grant, err := client.Login(ctx, opts.username, password)
	if err != nil {
		return "", err
	}
	return grant.Token, nil
}
