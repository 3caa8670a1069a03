// Package render mutates SVG documents to reflect submitted field values and
// exposes the renderer registry shared by the filled-SVG and preview
// outputs.
package render

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/printplog/svgform/pkg/depends"
	"github.com/printplog/svgform/pkg/fields"
	"github.com/printplog/svgform/pkg/svg"
)

// Update is one submitted field value keyed by field id.
type Update struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

// Fill renders field values into the document in two passes: seed every
// field's value from its current-or-default, overlay the submitted updates,
// resolve dependencies one hop, then mutate the document per field. The
// resolved values are written back onto the returned field list; the input
// list is never aliased.
func Fill(doc *svg.Document, fieldList []fields.Field, updates []Update) ([]fields.Field, error) {
	if doc == nil || len(fieldList) == 0 {
		return fields.CloneList(fieldList), nil
	}

	list := fields.CloneList(fieldList)

	fieldByID := make(map[string]*fields.Field, len(list))
	values := make(map[string]string, len(list))
	for i := range list {
		fieldByID[list[i].ID] = &list[i]
		values[list[i].ID] = effectiveString(list[i])
	}

	for _, update := range updates {
		if _, known := fieldByID[update.ID]; known {
			values[update.ID] = fields.ValueString(update.Value)
		}
	}

	// Dependency chains are one level deep by design; every field resolves
	// against the raw values map, never against another computed value.
	computed := make(map[string]string, len(list))
	for i := range list {
		if list[i].DependsOn != "" {
			computed[list[i].ID] = depends.Resolve(values, list[i].DependsOn)
		} else {
			computed[list[i].ID] = values[list[i].ID]
		}
	}

	elements := doc.ElementMap()

	for i := range list {
		field := &list[i]
		if len(field.Options) > 0 {
			applySelect(elements, field, values[field.ID])
			continue
		}

		el := elements[field.SVGElementID]
		if el == nil {
			continue
		}
		value := computed[field.ID]

		switch field.Type {
		case fields.FieldTypeUpload, fields.FieldTypeFile, fields.FieldTypeSignature:
			applyImage(doc, elements, fieldByID, el, field, value)
		case fields.FieldTypeHiddenToggle:
			if truthy(value) {
				svg.Show(el)
			} else {
				svg.Hide(el)
			}
		default:
			svg.SetInnerText(el, value)
		}
	}

	for i := range list {
		list[i].Current = computed[list[i].ID]
	}
	return list, nil
}

// applySelect hides every option, then reveals exactly the element matching
// the selected value. Hide-all-then-show-one, never toggle in place: stale
// combinations from earlier renders must not survive.
func applySelect(elements map[string]*etree.Element, field *fields.Field, selected string) {
	for _, option := range field.Options {
		el := elements[option.SVGElementID]
		if el == nil {
			continue
		}
		svg.RemoveStyle(el)
		svg.Hide(el)
	}
	for _, option := range field.Options {
		if option.Value != selected {
			continue
		}
		if el := elements[option.SVGElementID]; el != nil {
			svg.Show(el)
		}
		return
	}
}

// applyImage places an image value and composes rotation. A field without a
// rotation of its own inherits the rotation of the field it depends on --
// one hop only, never transitively.
func applyImage(doc *svg.Document, elements map[string]*etree.Element, fieldByID map[string]*fields.Field, el *etree.Element, field *fields.Field, value string) {
	normalizeTransform(el)

	if strings.TrimSpace(value) != "" {
		doc.EnsureNamespace("xlink", svg.XLinkNamespace)
		el.CreateAttr("xlink:href", value)
		el.CreateAttr("preserveAspectRatio", "none")
	}

	rotation := field.Rotation
	if rotation == nil && field.DependsOn != "" {
		if parent := fieldByID[depends.BaseField(field.DependsOn)]; parent != nil {
			rotation = parent.Rotation
		}
	}
	if rotation != nil {
		composeRotation(el, *rotation)
	}
}

// effectiveString mirrors the value seeding rule: an empty or false current
// value falls back to the default, and an empty or false default renders as
// the empty string.
func effectiveString(f fields.Field) string {
	if s, ok := nonEmptyValue(f.Current); ok {
		return s
	}
	if s, ok := nonEmptyValue(f.Default); ok {
		return s
	}
	return ""
}

func nonEmptyValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		if !v {
			return "", false
		}
		return "true", true
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	default:
		s := fields.ValueString(v)
		return s, s != "" && s != "0"
	}
}

// truthy recognises the boolean tokens the editor submits for toggles.
func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
