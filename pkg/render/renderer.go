package render

import (
	"context"

	"github.com/printplog/svgform/pkg/fields"
	"github.com/printplog/svgform/pkg/svg"
)

// Renderer converts a document and its field list into output bytes. The
// built-in implementations produce the filled SVG and an HTML form preview;
// callers register alternatives through the Registry.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc *svg.Document, fieldList []fields.Field, updates []Update) ([]byte, []fields.Field, error)
}
