// Package sync reconciles a field list with a patch batch without re-parsing
// the document. Text patches update stored values in place; id patches
// re-derive field metadata from the new identifier string alone, which is
// sufficient input because identifiers carry their complete metadata.
package sync

import (
	"strings"

	"github.com/printplog/svgform/pkg/fields"
	"github.com/printplog/svgform/pkg/patch"
)

// location points at a field, or at one option of a select field, by the
// element identifier it owns.
type location struct {
	fieldIdx    int
	optionValue string
	isOption    bool
}

// Sync applies a patch batch to the field list and reports whether anything
// changed. The input list is never mutated; callers persist the returned
// list when modified is true.
func Sync(fieldList []fields.Field, patches []patch.Patch) ([]fields.Field, bool) {
	if len(patches) == 0 {
		return fieldList, false
	}

	list := fields.CloneList(fieldList)
	index := buildIndex(list)
	modified := false

	for _, p := range patches {
		if p.TargetID == "" {
			continue
		}
		switch p.Attribute {
		case patch.AttrInnerText:
			if applyTextChange(list, index, p.TargetID, p.Value) {
				modified = true
			}
		case patch.AttrID:
			if changed := applyIDChange(&list, index, p.TargetID, p.Value); changed {
				modified = true
				// Field positions and identifiers moved; rebuild before the
				// next patch resolves against stale locations.
				index = buildIndex(list)
			}
		}
	}

	return list, modified
}

// buildIndex maps every field's element identifier, and every select
// option's, to its position.
func buildIndex(list []fields.Field) map[string]location {
	index := make(map[string]location, len(list))
	for i := range list {
		if id := list[i].SVGElementID; id != "" {
			index[id] = location{fieldIdx: i}
		}
		for _, option := range list[i].Options {
			if option.SVGElementID != "" {
				index[option.SVGElementID] = location{
					fieldIdx:    i,
					optionValue: option.Value,
					isOption:    true,
				}
			}
		}
	}
	return index
}

// lookup resolves an element id, falling back to a case-insensitive scan for
// editors that normalise id casing.
func lookup(index map[string]location, id string) (location, bool) {
	if loc, ok := index[id]; ok {
		return loc, true
	}
	lower := strings.ToLower(id)
	for key, loc := range index {
		if strings.ToLower(key) == lower {
			return loc, true
		}
	}
	return location{}, false
}

// applyTextChange is the O(1) path: an innerText patch updates the stored
// text of the owning field or option without touching the document.
func applyTextChange(list []fields.Field, index map[string]location, id, value string) bool {
	loc, ok := lookup(index, id)
	if !ok {
		return false
	}

	if loc.isOption {
		field := &list[loc.fieldIdx]
		changed := false
		for i := range field.Options {
			if field.Options[i].Value == loc.optionValue {
				field.Options[i].DisplayText = value
				field.Options[i].Label = value
				changed = true
			}
		}
		return changed
	}

	list[loc.fieldIdx].Default = value
	list[loc.fieldIdx].Current = value
	return true
}

// applyIDChange splices a re-parsed field into the list when the identifier
// itself changed. The old field's current value survives any metadata-only
// rename; a new identifier that no longer encodes a field removes the old
// one.
func applyIDChange(list *[]fields.Field, index map[string]location, oldID, newID string) bool {
	origIdx := -1
	if loc, ok := index[oldID]; ok && !loc.isOption {
		// Select options need multi-element context; their id changes are
		// picked up on the next full parse.
		origIdx = loc.fieldIdx
	}

	existingText := ""
	if origIdx >= 0 {
		orig := (*list)[origIdx]
		existingText = fields.ValueString(orig.Default)
		if existingText == "" {
			existingText = fields.ValueString(orig.Current)
		}
	}

	replacement, _ := fields.FromIdentifier(newID, existingText)
	if replacement == nil {
		if origIdx >= 0 {
			*list = append((*list)[:origIdx], (*list)[origIdx+1:]...)
			return true
		}
		return false
	}

	targetIdx := -1
	for i := range *list {
		if (*list)[i].ID == replacement.ID && i != origIdx {
			targetIdx = i
			break
		}
	}

	switch {
	case origIdx >= 0:
		spliceField(&(*list)[origIdx], *replacement)
	case targetIdx >= 0:
		spliceField(&(*list)[targetIdx], *replacement)
	default:
		*list = append(*list, *replacement)
	}
	return true
}

// spliceField overwrites dst with the re-parsed metadata while keeping the
// attributes an identifier cannot encode (helper text, rotation, select
// options) and force-restoring the in-progress user value.
func spliceField(dst *fields.Field, src fields.Field) {
	preserved := dst.Current
	helper := dst.HelperText
	rotation := dst.Rotation
	options := dst.Options

	*dst = src
	dst.HelperText = helper
	dst.Rotation = rotation
	dst.Options = options
	if preserved != nil {
		dst.Current = preserved
	}
}
