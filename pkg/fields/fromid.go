package fields

import "github.com/printplog/svgform/pkg/grammar"

// FromIdentifier builds a field from an identifier string alone. Identifiers
// carry their complete metadata, so no document access is needed; the sync
// engine relies on this when an id-attribute patch arrives.
//
// currentText seeds the default value for text-like types, preserving the
// user's text across a metadata-only id change. A nil field means the
// identifier does not encode one (grammar rejection); warnings may accompany
// either outcome.
func FromIdentifier(identifier, currentText string) (*Field, []grammar.Warning) {
	ext, warnings, ok := grammar.Parse(identifier)
	if !ok {
		return nil, warnings
	}
	field := fromExtension(ext, currentText)
	return &field, warnings
}

func fromExtension(ext grammar.Extension, currentText string) Field {
	field := Field{
		ID:             ext.BaseID,
		Name:           DisplayName(ext.BaseID),
		Type:           ext.Type,
		SVGElementID:   ext.ElementID,
		Editable:       ext.Editable,
		IsTrackingID:   ext.TrackingID,
		TrackingRole:   ext.TrackingRole,
		Max:            ext.MaxValue,
		MaxGeneration:  ext.MaxGeneration,
		DependsOn:      ext.Dependency,
		DateFormat:     ext.DateFormat,
		GenerationRule: ext.GenerationRule,
		Link:           ext.LinkURL,
	}
	if ext.RequiresGrayscale {
		intensity := ext.GrayscaleIntensity
		field.RequiresGrayscale = true
		field.GrayscaleIntensity = &intensity
	}

	value := defaultValue(ext, currentText)
	field.Default = value
	field.Current = value
	return field
}

// defaultValue derives the initial value per type: checkboxes start
// unchecked, hidden toggles encode their default in which hide variant was
// authored, everything else keeps the element text.
func defaultValue(ext grammar.Extension, currentText string) any {
	switch ext.Type {
	case FieldTypeCheckbox:
		return false
	case FieldTypeHiddenToggle:
		return ext.HideSegment == grammar.FlagHideChecked
	default:
		return currentText
	}
}
