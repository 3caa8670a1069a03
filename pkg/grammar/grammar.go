// Package grammar parses the identifier DSL that turns SVG element ids into
// form field declarations. An identifier is a base id followed by
// dot-separated extension segments, for example
// "Serial.gen_(rn[12]).max_14.track_code". The grammar is a published surface
// relied on by external editor tooling; every token and ordering rule here is
// bit-exact.
package grammar

import (
	"strconv"
	"strings"
)

// Extension is the transient record produced by parsing one identifier. The
// field model builder turns it into a persisted Field.
type Extension struct {
	// BaseID is the first segment, stable across metadata edits.
	BaseID string
	// ElementID is the full identifier as authored, link segment included.
	ElementID string

	Type         FieldType
	TypeExplicit bool

	MaxValue      *int
	MaxGeneration string

	Dependency     string
	TrackingRole   string
	DateFormat     string
	GenerationRule string
	LinkURL        string

	Editable   bool
	TrackingID bool

	RequiresGrayscale  bool
	GrayscaleIntensity int

	// HideSegment holds the matched hide* token so callers can derive the
	// hidden-toggle default (hide_checked means visible by default).
	HideSegment string
}

// ExtractLink splits a link_ extension off the identifier. URLs legitimately
// contain dots, so everything after the marker is captured verbatim before
// any segment splitting happens.
func ExtractLink(identifier string) (cleaned, url string) {
	idx := strings.Index(identifier, linkMarker)
	if idx < 0 {
		return identifier, ""
	}
	return identifier[:idx], identifier[idx+len(linkMarker):]
}

// Segments splits a link-free identifier into its dot-separated parts.
func Segments(identifier string) []string {
	return strings.Split(identifier, segmentSeparator)
}

// HasSelectSegment reports whether any segment declares a select option.
// Select options need multi-element context and are assembled by the field
// model builder, not through Parse.
func HasSelectSegment(segments []string) bool {
	for _, segment := range segments {
		if strings.HasPrefix(segment, PrefixSelect) {
			return true
		}
	}
	return false
}

// TrackPositionValid reports whether a track_ segment, if present, is the
// final segment.
func TrackPositionValid(segments []string) bool {
	for i, segment := range segments {
		if strings.HasPrefix(segment, PrefixTrack) {
			return i == len(segments)-1
		}
	}
	return true
}

// Parse evaluates one identifier against the extension grammar. ok is false
// when the identifier does not encode a plain field: empty base id, a
// select_ segment, or a track_ segment out of final position. Rejection is
// not an error; it simply means the element is not a field (or is a select
// option owned by the builder).
func Parse(identifier string) (ext Extension, warnings []Warning, ok bool) {
	if identifier == "" {
		return Extension{}, nil, false
	}

	cleaned, url := ExtractLink(identifier)
	segments := Segments(cleaned)
	if segments[0] == "" {
		return Extension{}, nil, false
	}
	if HasSelectSegment(segments) {
		return Extension{}, nil, false
	}
	if !TrackPositionValid(segments) {
		warnings = append(warnings, Warning{
			Code:      WarnTrackPosition,
			ElementID: identifier,
			Detail:    "track_ extension must be the last segment",
		})
		return Extension{}, warnings, false
	}

	ext = Extension{
		BaseID:    segments[0],
		ElementID: identifier,
		Type:      FieldTypeText,
		LinkURL:   url,
	}

	for _, segment := range segments[1:] {
		switch {
		case strings.HasPrefix(segment, PrefixMax):
			value := strings.TrimPrefix(segment, PrefixMax)
			if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
				ext.MaxGeneration = value
				continue
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				warnings = append(warnings, Warning{
					Code:      WarnBadMaxValue,
					ElementID: identifier,
					Detail:    "max_ value " + strconv.Quote(value) + " is not an integer",
				})
				continue
			}
			ext.MaxValue = &n

		case strings.HasPrefix(segment, PrefixDepends):
			ext.Dependency = strings.TrimPrefix(segment, PrefixDepends)

		case strings.HasPrefix(segment, PrefixTrack):
			// Position already validated; this is the final segment.
			ext.TrackingRole = strings.TrimPrefix(segment, PrefixTrack)

		case strings.HasPrefix(segment, PrefixDate):
			// The format string keeps underscores as authored; display
			// layers convert them to spaces.
			ext.DateFormat = strings.TrimPrefix(segment, PrefixDate)
			if !ext.TypeExplicit {
				ext.Type = FieldTypeDate
				ext.TypeExplicit = true
			}

		case strings.HasPrefix(segment, PrefixGen):
			ext.GenerationRule = strings.TrimPrefix(segment, PrefixGen)
			if !ext.TypeExplicit {
				ext.Type = FieldTypeGenerated
				ext.TypeExplicit = true
			}

		case segment == FlagTrackingID:
			ext.Type = FieldTypeGenerated
			ext.TypeExplicit = true
			ext.TrackingID = true

		case segment == FlagEditable:
			ext.Editable = true

		case segment == FlagGrayscale:
			ext.RequiresGrayscale = true
			ext.GrayscaleIntensity = 100

		case strings.HasPrefix(segment, PrefixGrayscale):
			ext.RequiresGrayscale = true
			ext.GrayscaleIntensity = parseGrayscale(
				strings.TrimPrefix(segment, PrefixGrayscale), identifier, &warnings)

		default:
			if t, found := typeTokens[segment]; found {
				ext.Type = t
				ext.TypeExplicit = true
			} else if strings.HasPrefix(segment, PrefixHide) {
				ext.Type = FieldTypeHiddenToggle
				ext.TypeExplicit = true
				ext.HideSegment = segment
			}
		}
	}

	if ext.RequiresGrayscale && !GrayscaleTarget(ext.Type) {
		warnings = append(warnings, Warning{
			Code:      WarnGrayscaleTarget,
			ElementID: identifier,
			Detail:    "grayscale extension on non-upload field " + strconv.Quote(ext.BaseID),
		})
	}

	return ext, warnings, true
}

// parseGrayscale coerces an intensity token, clamping to [0, 100] and
// defaulting to 100 when unparseable.
func parseGrayscale(raw, identifier string, warnings *[]Warning) int {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*warnings = append(*warnings, Warning{
			Code:      WarnBadGrayscale,
			ElementID: identifier,
			Detail:    "invalid grayscale intensity " + strconv.Quote(raw) + "; defaulting to 100",
		})
		return 100
	}
	intensity := int(value)
	if intensity < 0 {
		return 0
	}
	if intensity > 100 {
		return 100
	}
	return intensity
}
