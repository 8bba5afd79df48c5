package sink

import (
	"encoding/json"

	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/layout"
	"github.com/labelsmith/labelsmith/pkg/sheet"
)

type jsonOutput struct {
	Template   string        `json:"template"`
	PageWidth  float64       `json:"page_width"`
	PageHeight float64       `json:"page_height"`
	Pages      int           `json:"pages"`
	Commands   []jsonCommand `json:"commands"`
	Warnings   []jsonWarning `json:"warnings,omitempty"`
}

type jsonCommand struct {
	Type   string  `json:"type"` // "text" or "code"
	Page   int     `json:"page"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Text   string  `json:"text,omitempty"`
	Style  string  `json:"style,omitempty"`
	// Code payloads re-encode deterministically, so the module matrix is
	// not exported.
	Size    float64 `json:"size,omitempty"`
	Payload string  `json:"payload,omitempty"`
}

type jsonWarning struct {
	AssetID string `json:"asset_id"`
	Message string `json:"message"`
}

// RenderJSON exports the layout as a pretty-printed JSON document: page
// geometry, the positioned draw commands, and any per-label warnings. It is
// the data interchange format for external tools and for inspecting what a
// print run would produce without rendering it.
func RenderJSON(res layout.Result, tpl sheet.Template) ([]byte, error) {
	out := jsonOutput{
		Template:   tpl.Name,
		PageWidth:  tpl.PageWidth,
		PageHeight: tpl.PageHeight,
		Pages:      res.Pages,
		Commands:   make([]jsonCommand, 0, len(res.Commands)),
	}

	for _, cmd := range res.Commands {
		switch c := cmd.(type) {
		case layout.TextRun:
			out.Commands = append(out.Commands, jsonCommand{
				Type: "text", Page: c.PageIndex,
				X: c.X, Y: c.Y, Width: c.Width, Height: c.Height,
				Text: c.Text, Style: string(c.Style),
			})
		case layout.CodeBlock:
			out.Commands = append(out.Commands, jsonCommand{
				Type: "code", Page: c.PageIndex,
				X: c.X, Y: c.Y, Size: c.Size, Payload: c.Payload,
			})
		}
	}

	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, jsonWarning{AssetID: w.AssetID, Message: w.Message})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encoding layout")
	}
	return data, nil
}
