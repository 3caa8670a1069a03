package fields

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/printplog/svgform/pkg/grammar"
	"github.com/printplog/svgform/pkg/svg"
)

// Options configures a Builder.
type Options struct {
	// Labeler converts a base id into the display name. Defaults to
	// DisplayName.
	Labeler func(string) string
}

// Builder walks a parsed SVG document and assembles the ordered field list.
// Element order in the document is declaration order; consumers rely on it.
type Builder struct {
	opts Options
}

// NewBuilder constructs a Builder applying defaults for omitted options.
func NewBuilder(options ...Options) *Builder {
	opts := Options{Labeler: DisplayName}
	if len(options) > 0 && options[0].Labeler != nil {
		opts.Labeler = options[0].Labeler
	}
	return &Builder{opts: opts}
}

// Build converts every identifier-bearing element into a field. Select
// options sharing a base id aggregate into one select field. Identifiers the
// grammar rejects are skipped with a warning where the rejection is a policy
// violation, silently where they simply are not fields.
func (b *Builder) Build(doc *svg.Document) ([]Field, []grammar.Warning, error) {
	if doc == nil {
		return nil, nil, errors.New("fields: document is required")
	}

	var (
		list     []Field
		warnings []grammar.Warning
		selects  = make(map[string]int)
	)

	for _, el := range doc.ElementsWithID() {
		elementID := el.SelectAttrValue("id", "")
		if elementID == "" {
			continue
		}

		cleaned, _ := grammar.ExtractLink(elementID)
		segments := grammar.Segments(cleaned)

		if grammar.HasSelectSegment(segments) {
			list = b.applySelectOption(list, selects, elementID, segments, el)
			continue
		}

		if !grammar.TrackPositionValid(segments) {
			warnings = append(warnings, grammar.Warning{
				Code:      grammar.WarnTrackPosition,
				ElementID: elementID,
				Detail:    "track_ extension must be the last segment; element skipped",
			})
			continue
		}

		ext, extWarnings, ok := grammar.Parse(elementID)
		warnings = append(warnings, extWarnings...)
		if !ok {
			continue
		}

		field := fromExtension(ext, svg.ElementText(el))
		field.Name = b.opts.Labeler(field.ID)
		if helper := el.SelectAttrValue("data-helper", ""); helper != "" {
			field.HelperText = helper
		}
		list = append(list, field)
	}

	return list, warnings, nil
}

// applySelectOption folds one option element into its owning select field,
// creating the field on first sight.
func (b *Builder) applySelectOption(list []Field, selects map[string]int, elementID string, segments []string, el *etree.Element) []Field {
	baseID := segments[0]
	option := selectOption(elementID, segments, el)
	editable := containsSegment(segments, grammar.FlagEditable)

	idx, seen := selects[baseID]
	if !seen {
		list = append(list, Field{
			ID:           baseID,
			Name:         b.opts.Labeler(baseID),
			Type:         FieldTypeSelect,
			SVGElementID: elementID,
			Default:      "",
			Current:      "",
			Editable:     editable,
		})
		idx = len(list) - 1
		selects[baseID] = idx
	}

	field := &list[idx]
	field.Options = append(field.Options, option)

	// Whichever option is currently visible supplies the current value; with
	// several visible the last in document order wins by definition.
	if svg.IsVisible(el) {
		field.Current = option.Value
	}
	if ValueString(field.Default) == "" {
		field.Default = field.Options[0].Value
	}
	if role := trackSegmentValue(segments); role != "" {
		field.TrackingRole = role
	}
	if editable {
		field.Editable = true
	}
	return list
}

// selectOption derives the option entry for one element. The label comes
// from the select_ segment with underscores read as spaces; display text
// falls back to the label when the element carries no text of its own.
func selectOption(elementID string, segments []string, el *etree.Element) Option {
	var label string
	for _, segment := range segments {
		if strings.HasPrefix(segment, grammar.PrefixSelect) {
			label = strings.ReplaceAll(strings.TrimPrefix(segment, grammar.PrefixSelect), "_", " ")
			break
		}
	}
	display := strings.TrimSpace(el.Text())
	if display == "" {
		display = label
	}
	return Option{
		Value:        elementID,
		Label:        label,
		SVGElementID: elementID,
		DisplayText:  display,
	}
}

func trackSegmentValue(segments []string) string {
	for _, segment := range segments {
		if strings.HasPrefix(segment, grammar.PrefixTrack) {
			return strings.TrimPrefix(segment, grammar.PrefixTrack)
		}
	}
	return ""
}

func containsSegment(segments []string, want string) bool {
	for _, segment := range segments {
		if segment == want {
			return true
		}
	}
	return false
}
