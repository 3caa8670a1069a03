package svg

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// Namespace URIs the engine relies on. Declared here so callers and the
// renderer agree on the prefixes used when mutating attributes.
const (
	SVGNamespace   = "http://www.w3.org/2000/svg"
	XLinkNamespace = "http://www.w3.org/1999/xlink"
)

// Document wraps an etree document with the traversal and lookup helpers the
// field builder, renderer and patch engine share. The zero value is not
// usable; construct through Parse or ParseString.
type Document struct {
	doc *etree.Document
}

// Parse reads raw SVG bytes into a mutable document. Parsing is permissive so
// designer exports with minor irregularities still load; a document without a
// root element is rejected.
func Parse(raw []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("svg: parse document: %w", err)
	}
	if doc.Root() == nil {
		return nil, errors.New("svg: document has no root element")
	}
	return &Document{doc: doc}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(raw string) (*Document, error) {
	return Parse([]byte(raw))
}

// Bytes serialises the document, preserving the original structure except for
// the mutations applied through the engine.
func (d *Document) Bytes() ([]byte, error) {
	out, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("svg: serialize document: %w", err)
	}
	return out, nil
}

// String serialises the document to a string.
func (d *Document) String() (string, error) {
	out, err := d.doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("svg: serialize document: %w", err)
	}
	return out, nil
}

// Root returns the document's root element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// ElementsWithID returns every element carrying an id attribute, in document
// order. Declaration order is semantically significant for the field model,
// so callers must not re-sort the result.
func (d *Document) ElementsWithID() []*etree.Element {
	var out []*etree.Element
	walk(d.doc.Root(), func(el *etree.Element) {
		if el.SelectAttrValue("id", "") != "" {
			out = append(out, el)
		}
	})
	return out
}

// ElementMap indexes every element by its id attribute. Duplicate ids keep
// the last occurrence in document order.
func (d *Document) ElementMap() map[string]*etree.Element {
	out := make(map[string]*etree.Element)
	walk(d.doc.Root(), func(el *etree.Element) {
		if id := el.SelectAttrValue("id", ""); id != "" {
			out[id] = el
		}
	})
	return out
}

// FindByAnyName locates elements for a patch target. Probes run in a fixed
// order -- id, namespace-qualified id, name, data-name -- and the first probe
// with any match wins.
func (d *Document) FindByAnyName(target string) []*etree.Element {
	if target == "" {
		return nil
	}
	probes := []func(*etree.Element) bool{
		func(el *etree.Element) bool {
			attr := el.SelectAttr("id")
			return attr != nil && attr.Space == "" && attr.Value == target
		},
		func(el *etree.Element) bool {
			for _, attr := range el.Attr {
				if attr.Key == "id" && attr.Value == target {
					return true
				}
			}
			return false
		},
		func(el *etree.Element) bool {
			return el.SelectAttrValue("name", "") == target
		},
		func(el *etree.Element) bool {
			return el.SelectAttrValue("data-name", "") == target
		},
	}
	for _, probe := range probes {
		var matches []*etree.Element
		walk(d.doc.Root(), func(el *etree.Element) {
			if probe(el) {
				matches = append(matches, el)
			}
		})
		if len(matches) > 0 {
			return matches
		}
	}
	return nil
}

// Namespaces returns the prefix to URI map declared on the root element. The
// svg and xlink prefixes are always present so patch attribute resolution has
// a stable baseline.
func (d *Document) Namespaces() map[string]string {
	out := map[string]string{
		"svg":   SVGNamespace,
		"xlink": XLinkNamespace,
	}
	root := d.doc.Root()
	if root == nil {
		return out
	}
	for _, attr := range root.Attr {
		switch {
		case attr.Space == "xmlns":
			out[attr.Key] = attr.Value
		case attr.Space == "" && attr.Key == "xmlns":
			out["svg"] = attr.Value
		}
	}
	return out
}

// EnsureNamespace declares prefix on the root element when missing. The
// renderer uses this before writing xlink:href so the output stays valid.
func (d *Document) EnsureNamespace(prefix, uri string) {
	root := d.doc.Root()
	if root == nil {
		return
	}
	for _, attr := range root.Attr {
		if attr.Space == "xmlns" && attr.Key == prefix {
			return
		}
	}
	root.CreateAttr("xmlns:"+prefix, uri)
}

func walk(el *etree.Element, visit func(*etree.Element)) {
	if el == nil {
		return
	}
	visit(el)
	for _, child := range el.ChildElements() {
		walk(child, visit)
	}
}
