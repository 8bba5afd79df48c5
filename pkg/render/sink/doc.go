// Package sink provides output format renderers for label sheets.
//
// A sink transforms a computed [layout.Result] into a final output format.
// This package provides renderers for:
//
//   - SVG: vector output, pages stacked vertically for quick inspection
//   - HTML: print-ready markup, one CSS page per sheet
//   - PDF: print-ready multipage output, rendered natively
//   - PNG: raster output (requires rsvg-convert)
//   - JSON: layout data export for external tools
//
// All sinks consume the same draw command stream and share the template's
// millimeter coordinate system, so a sheet prints identically regardless of
// the chosen format.
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(res layout.Result, tpl sheet.Template, opts ...FooOption) ([]byte, error)
//  2. Define option types for configuration
//  3. Walk res.Commands and dispatch on [layout.TextRun] and [layout.CodeBlock]
//  4. Register the format in internal/cli for command-line support
//
// [layout.Result]: github.com/labelsmith/labelsmith/pkg/layout.Result
// [layout.TextRun]: github.com/labelsmith/labelsmith/pkg/layout.TextRun
// [layout.CodeBlock]: github.com/labelsmith/labelsmith/pkg/layout.CodeBlock
package sink
