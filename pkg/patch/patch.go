// Package patch applies atomic attribute, text and reorder edits to an SVG
// document. Patches are append-only instructions recorded against a base
// document; the merge rule below is the only way an existing log entry is
// ever superseded.
package patch

import (
	"encoding/json"
	"fmt"
)

// Attribute values with dedicated semantics. Anything else is treated as a
// literal document attribute name, optionally namespaced as prefix:local.
const (
	AttrInnerText = "innerText"
	AttrReorder   = "reorder"
	AttrID        = "id"
)

// Reorder is the structured value of a reorder patch. BeforeID places the
// element immediately before the referenced element, AfterID immediately
// after it; BeforeID is tried first.
type Reorder struct {
	BeforeID string `json:"beforeId,omitempty"`
	AfterID  string `json:"afterId,omitempty"`
}

// Patch is one atomic edit. TargetID locates the element (id, namespaced id,
// name, data-name, first probe with matches wins). For ordinary attributes
// an empty Value deletes the attribute instead of setting it to empty.
type Patch struct {
	TargetID  string
	Attribute string
	Value     string
	Reorder   *Reorder
}

// patchWire mirrors the JSON layout the editor emits: value is a plain
// string except for reorder patches, where it is a structured directive.
type patchWire struct {
	TargetID  string          `json:"id"`
	Attribute string          `json:"attribute"`
	Value     json.RawMessage `json:"value,omitempty"`
}

// UnmarshalJSON decodes the editor wire format, accepting a structured value
// for reorder patches and a string (or null) for everything else.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var wire patchWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("patch: decode: %w", err)
	}
	p.TargetID = wire.TargetID
	p.Attribute = wire.Attribute
	p.Value = ""
	p.Reorder = nil

	if len(wire.Value) == 0 || string(wire.Value) == "null" {
		return nil
	}

	if wire.Attribute == AttrReorder {
		var directive Reorder
		if err := json.Unmarshal(wire.Value, &directive); err != nil {
			return fmt.Errorf("patch: decode reorder value: %w", err)
		}
		p.Reorder = &directive
		return nil
	}

	var value string
	if err := json.Unmarshal(wire.Value, &value); err != nil {
		// Tolerate non-string scalars by keeping their literal form.
		p.Value = string(wire.Value)
		return nil
	}
	p.Value = value
	return nil
}

// MarshalJSON encodes back to the wire format.
func (p Patch) MarshalJSON() ([]byte, error) {
	wire := patchWire{TargetID: p.TargetID, Attribute: p.Attribute}
	if p.Attribute == AttrReorder && p.Reorder != nil {
		raw, err := json.Marshal(p.Reorder)
		if err != nil {
			return nil, fmt.Errorf("patch: encode reorder value: %w", err)
		}
		wire.Value = raw
	} else if p.Value != "" {
		raw, err := json.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("patch: encode value: %w", err)
		}
		wire.Value = raw
	}
	return json.Marshal(wire)
}

// Merge deduplicates a patch batch: for a given (target, attribute) pair only
// the last write survives, keyed in first-occurrence order. Reorder patches
// are order-dependent and non-commutative, so every one is kept and replayed
// after the merged attribute patches in submission order. Merge is
// idempotent.
func Merge(patches []Patch) []Patch {
	type key struct{ target, attribute string }

	var (
		order    []key
		latest   = make(map[key]Patch)
		reorders []Patch
	)
	for _, p := range patches {
		if p.Attribute == AttrReorder {
			reorders = append(reorders, p)
			continue
		}
		if p.TargetID == "" || p.Attribute == "" {
			continue
		}
		k := key{p.TargetID, p.Attribute}
		if _, seen := latest[k]; !seen {
			order = append(order, k)
		}
		latest[k] = p
	}

	out := make([]Patch, 0, len(order)+len(reorders))
	for _, k := range order {
		out = append(out, latest[k])
	}
	out = append(out, reorders...)
	return out
}
