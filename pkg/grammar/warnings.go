package grammar

import "fmt"

// WarningCode classifies a non-fatal policy or coercion problem found while
// parsing an identifier. Warnings are returned, never logged; logging is the
// caller's concern.
type WarningCode string

const (
	// WarnTrackPosition reports a track_ segment that is not the final
	// segment. The whole identifier is rejected as a field.
	WarnTrackPosition WarningCode = "track-position"
	// WarnBadMaxValue reports a max_ segment whose value is neither an
	// integer nor a parenthesised padding rule. The segment is ignored.
	WarnBadMaxValue WarningCode = "bad-max-value"
	// WarnBadGrayscale reports an unparseable grayscale intensity. The
	// intensity defaults to 100.
	WarnBadGrayscale WarningCode = "bad-grayscale"
	// WarnGrayscaleTarget reports grayscale metadata on a field type that
	// cannot use it. The metadata is kept but has no effect.
	WarnGrayscaleTarget WarningCode = "grayscale-target"
)

// Warning records one policy violation against an identifier.
type Warning struct {
	Code      WarningCode
	ElementID string
	Detail    string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Code, w.Detail, w.ElementID)
}
