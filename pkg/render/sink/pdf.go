package sink

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/layout"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

// RenderPDF renders the layout as a multipage PDF. Unlike PNG export this
// needs no external tooling; pages are drawn natively in millimeter units
// so the printed sheet matches the template exactly.
func RenderPDF(res layout.Result, tpl sheet.Template) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: tpl.PageWidth, Ht: tpl.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(tpl.Name, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	byPage := commandsByPage(res)
	for page := 0; page < res.Pages; page++ {
		pdf.AddPage()
		for _, cmd := range byPage[page] {
			switch c := cmd.(type) {
			case layout.TextRun:
				drawPDFText(pdf, tr, c)
			case layout.CodeBlock:
				drawPDFCode(pdf, c)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "writing pdf")
	}
	return buf.Bytes(), nil
}

func drawPDFText(pdf *fpdf.Fpdf, tr func(string) string, c layout.TextRun) {
	if c.Text == "" {
		return
	}
	f := fontFor(c.Style)
	style := ""
	if f.Bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, f.SizeMM*ptPerMM)
	pdf.Text(c.X, baseline(c.Y, c.Height, f.SizeMM), tr(c.Text))
}

func drawPDFCode(pdf *fpdf.Fpdf, c layout.CodeBlock) {
	n := c.Modules.Size()
	if n == 0 {
		return
	}
	module := c.Size / float64(n)

	pdf.SetFillColor(0, 0, 0)
	for row, cells := range c.Modules {
		for col, dark := range cells {
			if !dark {
				continue
			}
			pdf.Rect(c.X+float64(col)*module, c.Y+float64(row)*module, module, module, "F")
		}
	}
}
