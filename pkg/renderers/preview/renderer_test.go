package preview_test

import (
	"context"
	"strings"
	"testing"

	"github.com/printplog/svgform/pkg/fields"
	"github.com/printplog/svgform/pkg/render"
	"github.com/printplog/svgform/pkg/renderers/preview"
	"github.com/printplog/svgform/pkg/testsupport"
)

const previewMarkup = `<svg xmlns="http://www.w3.org/2000/svg">
  <text id="First_Name.max_20.editable" data-helper="Legal name">John</text>
  <g id="Status.select_Active"><text>Active</text></g>
  <g id="Status.select_Closed" opacity="0"><text>Closed</text></g>
  <script>alert(1)</script>
</svg>`

func renderPreview(t *testing.T, updates []render.Update) string {
	t.Helper()

	doc := testsupport.ParseDocument(t, previewMarkup)
	list, _, err := fields.NewBuilder().Build(doc)
	if err != nil {
		t.Fatalf("build fields: %v", err)
	}

	renderer, err := preview.New(preview.WithTitle("Invoice"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, _, err := renderer.Render(context.Background(), doc, list, updates)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(out)
}

func TestRendererMetadata(t *testing.T) {
	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if renderer.Name() != "preview" {
		t.Fatalf("Name = %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("ContentType = %q", renderer.ContentType())
	}
}

func TestRenderProducesForm(t *testing.T) {
	html := renderPreview(t, []render.Update{{ID: "First_Name", Value: "Jane"}})

	for _, want := range []string{
		"<title>Invoice</title>",
		`<label for="First_Name">First Name</label>`,
		`value="Jane"`,
		`maxlength="20"`,
		"Legal name",
		`<select id="Status"`,
		`<option value="Status.select_Active"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
}

func TestRenderInlinesFilledDocument(t *testing.T) {
	html := renderPreview(t, []render.Update{{ID: "First_Name", Value: "Jane"}})

	if !strings.Contains(html, ">Jane<") {
		t.Fatal("filled document text missing from the inline SVG")
	}
}

func TestRenderSanitisesDocument(t *testing.T) {
	html := renderPreview(t, nil)

	if strings.Contains(html, "alert(1)") || strings.Contains(html, "<script") {
		t.Fatal("script content survived sanitisation")
	}
}

func TestRenderRequiresContext(t *testing.T) {
	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, err := renderer.Render(nil, nil, nil, nil); err == nil { //nolint:staticcheck
		t.Fatal("nil context accepted")
	}
}
