package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/labelsmith/labelsmith/pkg/layout"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title string
}

// WithTitle sets the document title shown in the browser tab.
func WithTitle(title string) HTMLOption {
	return func(r *htmlRenderer) { r.title = title }
}

// RenderHTML renders the layout as a print-ready HTML document. Each sheet
// page becomes one CSS page with a forced break, so printing the document
// from a browser reproduces the PDF output. All positions use millimeter
// units, which browsers honor in print media.
func RenderHTML(res layout.Result, tpl sheet.Template, opts ...HTMLOption) []byte {
	r := htmlRenderer{title: "labels"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	writeHTMLHead(&buf, &r, tpl)

	byPage := commandsByPage(res)
	for page := 0; page < res.Pages; page++ {
		buf.WriteString(`  <div class="page">` + "\n")
		for _, cmd := range byPage[page] {
			switch c := cmd.(type) {
			case layout.TextRun:
				writeHTMLText(&buf, c)
			case layout.CodeBlock:
				writeHTMLCode(&buf, c)
			}
		}
		buf.WriteString("  </div>\n")
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

func writeHTMLHead(buf *bytes.Buffer, r *htmlRenderer, tpl sheet.Template) {
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString(`<meta charset="utf-8">` + "\n")
	fmt.Fprintf(buf, "<title>%s</title>\n", html.EscapeString(r.title))
	fmt.Fprintf(buf, `<style>
  @page { size: %.2fmm %.2fmm; margin: 0; }
  body { margin: 0; font-family: Helvetica, Arial, sans-serif; }
  .page {
    position: relative;
    width: %.2fmm;
    height: %.2fmm;
    page-break-after: always;
    background: white;
  }
  .run { position: absolute; overflow: hidden; white-space: nowrap; display: flex; align-items: center; }
  .title { font-weight: bold; font-size: %.2fmm; }
  .plain { font-size: %.2fmm; }
  .small { font-size: %.2fmm; }
  .code { position: absolute; }
  .code svg { display: block; width: 100%%; height: 100%%; }
  @media screen {
    body { background: #e0e0e0; }
    .page { margin: 5mm auto; box-shadow: 0 1px 3px rgba(0,0,0,0.3); }
  }
</style>
`, tpl.PageWidth, tpl.PageHeight, tpl.PageWidth, tpl.PageHeight,
		fontSpecs[sheet.StyleTitle].SizeMM, fontSpecs[sheet.StylePlain].SizeMM, fontSpecs[sheet.StyleSmall].SizeMM)
	buf.WriteString("</head>\n<body>\n")
}

func writeHTMLText(buf *bytes.Buffer, c layout.TextRun) {
	if c.Text == "" {
		return
	}
	class := string(c.Style)
	if _, ok := fontSpecs[c.Style]; !ok {
		class = string(sheet.StylePlain)
	}
	fmt.Fprintf(buf, `    <div class="run %s" style="left:%.2fmm;top:%.2fmm;width:%.2fmm;height:%.2fmm">%s</div>`+"\n",
		class, c.X, c.Y, c.Width, c.Height, html.EscapeString(c.Text))
}

// writeHTMLCode embeds the code as an inline SVG sized in modules, letting
// the browser scale it to the block's physical size.
func writeHTMLCode(buf *bytes.Buffer, c layout.CodeBlock) {
	n := c.Modules.Size()
	if n == 0 {
		return
	}
	fmt.Fprintf(buf, `    <div class="code" style="left:%.2fmm;top:%.2fmm;width:%.2fmm;height:%.2fmm">`+"\n",
		c.X, c.Y, c.Size, c.Size)
	fmt.Fprintf(buf, `      <svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" shape-rendering="crispEdges">`+"\n", n, n)
	for row, cells := range c.Modules {
		for col, dark := range cells {
			if !dark {
				continue
			}
			fmt.Fprintf(buf, `        <rect x="%d" y="%d" width="1" height="1"/>`+"\n", col, row)
		}
	}
	buf.WriteString("      </svg>\n    </div>\n")
}

// commandsByPage groups the command stream per page, preserving order.
func commandsByPage(res layout.Result) map[int][]layout.Command {
	byPage := make(map[int][]layout.Command, res.Pages)
	for _, cmd := range res.Commands {
		byPage[cmd.Page()] = append(byPage[cmd.Page()], cmd)
	}
	return byPage
}
