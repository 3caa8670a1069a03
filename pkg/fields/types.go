// Package fields defines the persisted form field model and builds it from
// SVG documents. Field identifiers come from the identifier grammar; see
// package grammar for the extension surface.
package fields

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/printplog/svgform/pkg/grammar"
)

// FieldType re-exports the grammar enumeration; the field model and the
// parser agree on type names by construction.
type FieldType = grammar.FieldType

const (
	FieldTypeText         = grammar.FieldTypeText
	FieldTypeTextarea     = grammar.FieldTypeTextarea
	FieldTypeCheckbox     = grammar.FieldTypeCheckbox
	FieldTypeDate         = grammar.FieldTypeDate
	FieldTypeUpload       = grammar.FieldTypeUpload
	FieldTypeNumber       = grammar.FieldTypeNumber
	FieldTypeEmail        = grammar.FieldTypeEmail
	FieldTypeTel          = grammar.FieldTypeTel
	FieldTypeGenerated    = grammar.FieldTypeGenerated
	FieldTypePassword     = grammar.FieldTypePassword
	FieldTypeRange        = grammar.FieldTypeRange
	FieldTypeColor        = grammar.FieldTypeColor
	FieldTypeFile         = grammar.FieldTypeFile
	FieldTypeHiddenToggle = grammar.FieldTypeHiddenToggle
	FieldTypeSignature    = grammar.FieldTypeSignature
	FieldTypeSelect       = grammar.FieldTypeSelect
)

// Option is one selectable entry of a select field. Each option maps to its
// own SVG element; the owning Field aggregates the siblings.
type Option struct {
	Value        string `json:"value"`
	Label        string `json:"label"`
	SVGElementID string `json:"svgElementId"`
	DisplayText  string `json:"displayText"`
}

// Field is the persisted representation of one fillable input. JSON tags
// match the wire shape consumed by the template editor and stored alongside
// the document, so they stay camelCase.
type Field struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         FieldType `json:"type"`
	SVGElementID string    `json:"svgElementId"`

	Default any `json:"defaultValue"`
	Current any `json:"currentValue"`

	Editable     bool   `json:"editable"`
	IsTrackingID bool   `json:"isTrackingId,omitempty"`
	TrackingRole string `json:"trackingRole,omitempty"`

	Max            *int   `json:"max,omitempty"`
	MaxGeneration  string `json:"maxGeneration,omitempty"`
	DependsOn      string `json:"dependsOn,omitempty"`
	DateFormat     string `json:"dateFormat,omitempty"`
	GenerationRule string `json:"generationRule,omitempty"`
	Link           string `json:"link,omitempty"`
	HelperText     string `json:"helperText,omitempty"`

	RequiresGrayscale  bool `json:"requiresGrayscale,omitempty"`
	GrayscaleIntensity *int `json:"grayscaleIntensity,omitempty"`

	// Rotation is authored in the editor, not in the identifier; it rides
	// along the field so the renderer can compose it into the transform.
	Rotation *float64 `json:"rotation,omitempty"`

	Options []Option `json:"options,omitempty"`
}

// Clone returns a deep copy so sync and render passes can mutate field lists
// without aliasing the caller's slice.
func (f Field) Clone() Field {
	out := f
	if f.Max != nil {
		v := *f.Max
		out.Max = &v
	}
	if f.GrayscaleIntensity != nil {
		v := *f.GrayscaleIntensity
		out.GrayscaleIntensity = &v
	}
	if f.Rotation != nil {
		v := *f.Rotation
		out.Rotation = &v
	}
	if f.Options != nil {
		out.Options = append([]Option(nil), f.Options...)
	}
	return out
}

// CloneList deep-copies a field list.
func CloneList(list []Field) []Field {
	if list == nil {
		return nil
	}
	out := make([]Field, len(list))
	for i, f := range list {
		out[i] = f.Clone()
	}
	return out
}

var titleCaser = cases.Title(language.English)

// DisplayName derives the human-readable name from a base id:
// "customer_name" becomes "Customer Name".
func DisplayName(baseID string) string {
	return titleCaser.String(strings.ReplaceAll(baseID, "_", " "))
}

// ValueString coerces a stored field value to its string form. Booleans use
// the lowercase tokens the hidden-toggle coercion recognises.
func ValueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// TrackingID returns the current value of the field flagged tracking_id, or
// the empty string when the template declares none.
func TrackingID(list []Field) string {
	for _, f := range list {
		if f.IsTrackingID {
			return ValueString(effectiveValue(f))
		}
	}
	return ""
}

// TrackingRoles maps each declared tracking role to its field's current
// value. The public tracking page is built from this map.
func TrackingRoles(list []Field) map[string]string {
	out := make(map[string]string)
	for _, f := range list {
		if f.TrackingRole != "" {
			out[f.TrackingRole] = ValueString(effectiveValue(f))
		}
	}
	return out
}

func effectiveValue(f Field) any {
	if f.Current != nil && ValueString(f.Current) != "" {
		return f.Current
	}
	return f.Default
}
