package patch_test

import (
	"strings"
	"testing"

	"github.com/printplog/svgform/pkg/patch"
	"github.com/printplog/svgform/pkg/svg"
	"github.com/printplog/svgform/pkg/testsupport"
)

func TestApplyAttribute(t *testing.T) {
	doc := testsupport.ParseDocument(t, `<svg><rect id="Box" fill="#fff"/></svg>`)

	report := patch.Apply(doc, []patch.Patch{
		{TargetID: "Box", Attribute: "fill", Value: "#123456"},
		{TargetID: "Box", Attribute: "stroke", Value: "#000"},
	})
	if report.Applied != 2 || report.Skipped != 0 {
		t.Fatalf("report = %+v, want 2 applied", report)
	}

	el := doc.ElementMap()["Box"]
	if got := el.SelectAttrValue("fill", ""); got != "#123456" {
		t.Fatalf("fill = %q", got)
	}
	if got := el.SelectAttrValue("stroke", ""); got != "#000" {
		t.Fatalf("stroke = %q", got)
	}
}

func TestApplyEmptyValueDeletesAttribute(t *testing.T) {
	doc := testsupport.ParseDocument(t, `<svg><rect id="Box" fill="#fff"/></svg>`)

	report := patch.Apply(doc, []patch.Patch{{TargetID: "Box", Attribute: "fill"}})
	if report.Applied != 1 {
		t.Fatalf("report = %+v, want 1 applied", report)
	}
	if doc.ElementMap()["Box"].SelectAttr("fill") != nil {
		t.Fatal("fill attribute still present, want deleted")
	}
}

func TestApplyInnerText(t *testing.T) {
	doc := testsupport.ParseDocument(t,
		`<svg><text id="Company"><tspan>Old</tspan><tspan>Name</tspan></text></svg>`)

	patch.Apply(doc, []patch.Patch{{TargetID: "Company", Attribute: "innerText", Value: "Acme Ltd"}})

	el := doc.ElementMap()["Company"]
	if len(el.ChildElements()) != 0 {
		t.Fatal("innerText patch left child elements behind")
	}
	if el.Text() != "Acme Ltd" {
		t.Fatalf("text = %q, want %q", el.Text(), "Acme Ltd")
	}
}

func TestApplyNameProbeFallback(t *testing.T) {
	doc := testsupport.ParseDocument(t, `<svg>
	  <text name="Header">one</text>
	  <text name="Header">two</text>
	</svg>`)

	report := patch.Apply(doc, []patch.Patch{{TargetID: "Header", Attribute: "innerText", Value: "both"}})
	if report.Applied != 1 {
		t.Fatalf("report = %+v, want the batch entry counted once", report)
	}

	for _, el := range doc.Root().ChildElements() {
		if el.Text() != "both" {
			t.Fatalf("element text = %q, want every probe match updated", el.Text())
		}
	}
}

func TestApplyMissingTarget(t *testing.T) {
	doc := testsupport.ParseDocument(t, `<svg><rect id="Box"/></svg>`)

	report := patch.Apply(doc, []patch.Patch{{TargetID: "Ghost", Attribute: "fill", Value: "#000"}})
	if report.Applied != 0 || report.Skipped != 1 {
		t.Fatalf("report = %+v, want the patch skipped", report)
	}
	if len(report.Missing) != 1 || report.Missing[0] != "Ghost" {
		t.Fatalf("Missing = %v, want the target recorded", report.Missing)
	}
}

func TestApplyNamespacedAttribute(t *testing.T) {
	doc := testsupport.ParseDocument(t, `<svg xmlns="http://www.w3.org/2000/svg"><image id="Logo"/></svg>`)

	patch.Apply(doc, []patch.Patch{{TargetID: "Logo", Attribute: "xlink:href", Value: "logo.png"}})

	el := doc.ElementMap()["Logo"]
	if got := el.SelectAttrValue("xlink:href", ""); got != "logo.png" {
		t.Fatalf("xlink:href = %q", got)
	}

	declared := false
	for _, attr := range doc.Root().Attr {
		if attr.Space == "xmlns" && attr.Key == "xlink" {
			declared = true
		}
	}
	if !declared {
		t.Fatal("xmlns:xlink not declared on the root")
	}
}

func TestApplyReorder(t *testing.T) {
	markup := `<svg><g id="A"/><g id="B"/><g id="C"/></svg>`

	t.Run("before reference", func(t *testing.T) {
		doc := testsupport.ParseDocument(t, markup)
		patch.Apply(doc, []patch.Patch{
			{TargetID: "C", Attribute: "reorder", Reorder: &patch.Reorder{BeforeID: "A"}},
		})
		if got := childOrder(doc); got != "C,A,B" {
			t.Fatalf("order = %s, want C,A,B", got)
		}
	})

	t.Run("after reference", func(t *testing.T) {
		doc := testsupport.ParseDocument(t, markup)
		patch.Apply(doc, []patch.Patch{
			{TargetID: "A", Attribute: "reorder", Reorder: &patch.Reorder{AfterID: "C"}},
		})
		if got := childOrder(doc); got != "B,C,A" {
			t.Fatalf("order = %s, want B,C,A", got)
		}
	})

	t.Run("before tried first", func(t *testing.T) {
		doc := testsupport.ParseDocument(t, markup)
		patch.Apply(doc, []patch.Patch{
			{TargetID: "B", Attribute: "reorder", Reorder: &patch.Reorder{BeforeID: "A", AfterID: "C"}},
		})
		if got := childOrder(doc); got != "B,A,C" {
			t.Fatalf("order = %s, want the beforeId placement", got)
		}
	})

	t.Run("unresolvable reference noted", func(t *testing.T) {
		doc := testsupport.ParseDocument(t, markup)
		report := patch.Apply(doc, []patch.Patch{
			{TargetID: "B", Attribute: "reorder", Reorder: &patch.Reorder{BeforeID: "Ghost"}},
		})
		if report.Applied != 0 || len(report.Notes) == 0 {
			t.Fatalf("report = %+v, want skip with note", report)
		}
		if got := childOrder(doc); got != "A,B,C" {
			t.Fatalf("order = %s, want untouched", got)
		}
	})
}

func TestApplyIdempotent(t *testing.T) {
	markup := `<svg><text id="Company">Old</text><g id="A"/><g id="B"/></svg>`
	batch := []patch.Patch{
		{TargetID: "Company", Attribute: "innerText", Value: "Acme"},
		{TargetID: "Company", Attribute: "fill", Value: "#222"},
		{TargetID: "B", Attribute: "reorder", Reorder: &patch.Reorder{BeforeID: "A"}},
	}

	doc := testsupport.ParseDocument(t, markup)
	patch.Apply(doc, batch)
	once, err := doc.Bytes()
	if err != nil {
		t.Fatalf("serialise: %v", err)
	}

	patch.Apply(doc, batch)
	twice, err := doc.Bytes()
	if err != nil {
		t.Fatalf("serialise: %v", err)
	}

	if string(once) != string(twice) {
		t.Fatalf("replay changed the document:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func childOrder(doc *svg.Document) string {
	var ids []string
	for _, el := range doc.Root().ChildElements() {
		ids = append(ids, el.SelectAttrValue("id", ""))
	}
	return strings.Join(ids, ",")
}
