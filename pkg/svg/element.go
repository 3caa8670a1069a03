package svg

import (
	"strings"

	"github.com/beevik/etree"
)

// IsVisible reports whether an element is shown, per the attribute triple the
// editor toggles: opacity, visibility and display.
func IsVisible(el *etree.Element) bool {
	if el == nil {
		return false
	}
	opacity := el.SelectAttrValue("opacity", "1")
	visibility := el.SelectAttrValue("visibility", "visible")
	display := el.SelectAttrValue("display", "")
	return !(opacity == "0" || visibility == "hidden" || display == "none")
}

// Hide sets the full attribute triple so the element stays hidden regardless
// of which property a downstream rasteriser honours.
func Hide(el *etree.Element) {
	if el == nil {
		return
	}
	el.CreateAttr("opacity", "0")
	el.CreateAttr("visibility", "hidden")
	el.CreateAttr("display", "none")
}

// Show reveals an element previously hidden through Hide. The display
// attribute is removed rather than set to restore the element's intrinsic
// display mode.
func Show(el *etree.Element) {
	if el == nil {
		return
	}
	el.CreateAttr("opacity", "1")
	el.CreateAttr("visibility", "visible")
	el.RemoveAttr("display")
}

// RemoveStyle drops any inline style attribute. Select option reveals clear
// inline styles first so stale editor styling cannot override the attribute
// triple.
func RemoveStyle(el *etree.Element) {
	if el == nil {
		return
	}
	el.RemoveAttr("style")
}

// ElementText extracts the element's visible text: direct character data plus
// the text of each direct child element and any trailing fragments, joined
// with newlines. Multi-line labels exported as stacked tspans concatenate
// into one value this way.
func ElementText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var parts []string
	for _, token := range el.Child {
		switch node := token.(type) {
		case *etree.CharData:
			if text := strings.TrimSpace(node.Data); text != "" {
				parts = append(parts, text)
			}
		case *etree.Element:
			if text := strings.TrimSpace(node.Text()); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, "\n")
}

// SetInnerText removes all child nodes and replaces them with a single text
// node. A full replace, never an append: stale tspans would otherwise render
// alongside the new value.
func SetInnerText(el *etree.Element, value string) {
	if el == nil {
		return
	}
	el.Child = nil
	el.SetText(value)
}
