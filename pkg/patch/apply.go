package patch

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/printplog/svgform/pkg/svg"
)

// Report summarises an Apply run. Patches whose target cannot be found are
// skipped and counted, never fatal: patches are independent units of work and
// one stale target must not abort the batch.
type Report struct {
	Applied int
	Skipped int
	// Missing lists target ids that matched no element.
	Missing []string
	// Notes records non-fatal oddities such as unresolvable reorder
	// references, for the caller to log.
	Notes []string
}

// Apply executes a patch batch against the document, mutating it in place.
// Attribute and text patches are direct overwrites, so replaying a batch is
// idempotent; reorder patches replay relative to the current sibling order.
func Apply(doc *svg.Document, patches []Patch) Report {
	var report Report
	if doc == nil {
		return report
	}

	for _, p := range patches {
		if p.TargetID == "" || p.Attribute == "" {
			report.Skipped++
			continue
		}

		elements := doc.FindByAnyName(p.TargetID)
		if len(elements) == 0 {
			report.Skipped++
			report.Missing = append(report.Missing, p.TargetID)
			continue
		}

		applied := false
		for _, el := range elements {
			if setAttribute(doc, el, p, &report) {
				applied = true
			}
		}
		if applied {
			report.Applied++
		} else {
			report.Skipped++
		}
	}
	return report
}

func setAttribute(doc *svg.Document, el *etree.Element, p Patch, report *Report) bool {
	switch p.Attribute {
	case AttrInnerText:
		svg.SetInnerText(el, p.Value)
		return true

	case AttrReorder:
		if p.Reorder == nil {
			report.Notes = append(report.Notes,
				fmt.Sprintf("reorder patch for %q has no directive", p.TargetID))
			return false
		}
		if !applyReorder(doc, el, *p.Reorder) {
			report.Notes = append(report.Notes,
				fmt.Sprintf("reorder reference not found for %q", p.TargetID))
			return false
		}
		return true

	default:
		if p.Value == "" {
			// Empty value deletes the attribute rather than writing "".
			return el.RemoveAttr(p.Attribute) != nil
		}
		if prefix, _, found := strings.Cut(p.Attribute, ":"); found {
			if uri, declared := doc.Namespaces()[prefix]; declared {
				doc.EnsureNamespace(prefix, uri)
			}
		}
		el.CreateAttr(p.Attribute, p.Value)
		return true
	}
}

// applyReorder relocates el relative to the directive's reference element:
// immediately before BeforeID's element, or immediately after AfterID's,
// tried in that order. Both references live in the reference's own parent, so
// a reorder can move an element between groups.
func applyReorder(doc *svg.Document, el *etree.Element, directive Reorder) bool {
	if ref := referenceElement(doc, directive.BeforeID); ref != nil {
		return moveElement(el, ref, false)
	}
	if ref := referenceElement(doc, directive.AfterID); ref != nil {
		return moveElement(el, ref, true)
	}
	return false
}

func referenceElement(doc *svg.Document, id string) *etree.Element {
	if id == "" {
		return nil
	}
	return doc.ElementMap()[id]
}

func moveElement(el, ref *etree.Element, after bool) bool {
	if el == nil || ref == nil || el == ref {
		return false
	}
	refParent := ref.Parent()
	if refParent == nil {
		return false
	}
	if parent := el.Parent(); parent != nil {
		parent.RemoveChild(el)
	}
	index := ref.Index()
	if after {
		index++
	}
	refParent.InsertChildAt(index, el)
	return true
}
