package render

import (
	"context"
	"errors"

	"github.com/printplog/svgform/pkg/fields"
	"github.com/printplog/svgform/pkg/svg"
)

// SVGRenderer produces the filled document itself: Fill applied to the
// parsed document, serialised back to SVG bytes.
type SVGRenderer struct{}

// NewSVGRenderer constructs the default output renderer.
func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

// Name reports the renderer identifier.
func (r *SVGRenderer) Name() string {
	return "svg"
}

// ContentType reports the serialisation format used by Render.
func (r *SVGRenderer) ContentType() string {
	return "image/svg+xml"
}

// Render fills the document with the submitted values and serialises it.
func (r *SVGRenderer) Render(ctx context.Context, doc *svg.Document, fieldList []fields.Field, updates []Update) ([]byte, []fields.Field, error) {
	if ctx == nil {
		return nil, nil, errors.New("render: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, errors.New("render: document is required")
	}

	updated, err := Fill(doc, fieldList, updates)
	if err != nil {
		return nil, nil, err
	}
	out, err := doc.Bytes()
	if err != nil {
		return nil, nil, err
	}
	return out, updated, nil
}
