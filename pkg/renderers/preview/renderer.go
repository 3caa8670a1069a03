// Package preview renders an HTML form preview of a template: the filled
// document inline, with one form control per editable field. The markup is
// meant for the template editor's review pane, not for end users.
package preview

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/flosch/pongo2/v6"

	"github.com/printplog/svgform/pkg/fields"
	"github.com/printplog/svgform/pkg/render"
	"github.com/printplog/svgform/pkg/svg"
)

//go:embed templates
var templateFS embed.FS

// Option configures the renderer before construction.
type Option func(*Renderer)

// WithTitle overrides the document title shown in the preview header.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// Renderer implements render.Renderer with pongo2-backed HTML output.
type Renderer struct {
	templateSet *pongo2.TemplateSet
	template    *pongo2.Template
	title       string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the preview renderer, compiling the embedded template once.
func New(options ...Option) (*Renderer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("preview: open templates: %w", err)
	}

	set := pongo2.NewSet("preview", pongo2.NewFSLoader(sub))
	tmpl, err := set.FromFile("preview.html")
	if err != nil {
		return nil, fmt.Errorf("preview: compile template: %w", err)
	}

	r := &Renderer{
		templateSet: set,
		template:    tmpl,
		title:       "Template preview",
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "preview"
}

// ContentType reports the serialisation format used by Render.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render fills the document, sanitises the resulting SVG markup, and renders
// the form preview around it.
func (r *Renderer) Render(ctx context.Context, doc *svg.Document, fieldList []fields.Field, updates []render.Update) ([]byte, []fields.Field, error) {
	if ctx == nil {
		return nil, nil, errors.New("preview: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, errors.New("preview: document is required")
	}

	updated, err := render.Fill(doc, fieldList, updates)
	if err != nil {
		return nil, nil, err
	}

	markup, err := doc.String()
	if err != nil {
		return nil, nil, fmt.Errorf("preview: serialise document: %w", err)
	}

	viewContext := pongo2.Context{
		"title":    r.title,
		"document": sanitizeDocumentMarkup(markup),
		"fields":   fieldContext(updated),
	}

	out, err := r.template.ExecuteBytes(viewContext)
	if err != nil {
		return nil, nil, fmt.Errorf("preview: execute template: %w", err)
	}
	return out, updated, nil
}

// fieldContext converts the field list through its JSON form so the template
// sees the same camelCase keys the editor wire format uses.
func fieldContext(list []fields.Field) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, field := range list {
		raw, err := json.Marshal(field)
		if err != nil {
			continue
		}
		entry := map[string]any{}
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		entry["inputType"] = inputType(field.Type)
		out = append(out, entry)
	}
	return out
}

// inputType maps field types onto HTML input type attributes.
func inputType(t fields.FieldType) string {
	switch t {
	case fields.FieldTypeCheckbox, fields.FieldTypeHiddenToggle:
		return "checkbox"
	case fields.FieldTypeNumber:
		return "number"
	case fields.FieldTypeDate:
		return "date"
	case fields.FieldTypeEmail:
		return "email"
	case fields.FieldTypeTel:
		return "tel"
	case fields.FieldTypePassword:
		return "password"
	case fields.FieldTypeRange:
		return "range"
	case fields.FieldTypeColor:
		return "color"
	case fields.FieldTypeUpload, fields.FieldTypeFile, fields.FieldTypeSignature:
		return "file"
	default:
		return "text"
	}
}
