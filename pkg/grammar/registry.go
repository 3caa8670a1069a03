package grammar

// FieldType enumerates the field kinds an identifier can declare.
type FieldType string

const (
	FieldTypeText         FieldType = "text"
	FieldTypeTextarea     FieldType = "textarea"
	FieldTypeCheckbox     FieldType = "checkbox"
	FieldTypeDate         FieldType = "date"
	FieldTypeUpload       FieldType = "upload"
	FieldTypeNumber       FieldType = "number"
	FieldTypeEmail        FieldType = "email"
	FieldTypeTel          FieldType = "tel"
	FieldTypeGenerated    FieldType = "generated"
	FieldTypePassword     FieldType = "password"
	FieldTypeRange        FieldType = "range"
	FieldTypeColor        FieldType = "color"
	FieldTypeFile         FieldType = "file"
	FieldTypeHiddenToggle FieldType = "hidden-toggle"
	FieldTypeSignature    FieldType = "signature"
	FieldTypeSelect       FieldType = "select"
)

// Extension prefixes understood by the identifier grammar. These tokens are a
// wire format: external editor tooling authors identifiers against them, so
// they never change spelling.
const (
	PrefixMax       = "max_"
	PrefixDepends   = "depends_"
	PrefixTrack     = "track_"
	PrefixSelect    = "select_"
	PrefixLink      = "link_"
	PrefixDate      = "date_"
	PrefixGen       = "gen_"
	PrefixGrayscale = "grayscale_"
	PrefixHide      = "hide"
)

// Bare flag segments.
const (
	FlagEditable     = "editable"
	FlagTrackingID   = "tracking_id"
	FlagHideChecked  = "hide_checked"
	FlagGrayscale    = "grayscale"
	linkMarker       = "." + PrefixLink
	segmentSeparator = "."
)

// typeTokens maps identifier segments that declare a field type directly.
// The short tokens gen and sign are the authored spellings; they map onto the
// canonical type names used in the persisted field model.
var typeTokens = map[string]FieldType{
	"text":      FieldTypeText,
	"textarea":  FieldTypeTextarea,
	"checkbox":  FieldTypeCheckbox,
	"date":      FieldTypeDate,
	"upload":    FieldTypeUpload,
	"number":    FieldTypeNumber,
	"email":     FieldTypeEmail,
	"tel":       FieldTypeTel,
	"gen":       FieldTypeGenerated,
	"generated": FieldTypeGenerated,
	"password":  FieldTypePassword,
	"range":     FieldTypeRange,
	"color":     FieldTypeColor,
	"file":      FieldTypeFile,
	"sign":      FieldTypeSignature,
	"signature": FieldTypeSignature,
	"select":    FieldTypeSelect,
}

// GrayscaleTarget reports whether grayscale metadata is meaningful for the
// given type. Grayscale only affects raster output of placed images.
func GrayscaleTarget(t FieldType) bool {
	return t == FieldTypeUpload || t == FieldTypeFile
}
