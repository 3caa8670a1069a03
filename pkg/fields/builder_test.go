package fields_test

import (
	"testing"

	"github.com/printplog/svgform/pkg/fields"
	"github.com/printplog/svgform/pkg/grammar"
	"github.com/printplog/svgform/pkg/testsupport"
)

const builderMarkup = `<svg xmlns="http://www.w3.org/2000/svg">
  <text id="First_Name.max_20.editable" data-helper="Legal name">John</text>
  <rect id="Agreed.checkbox"/>
  <g id="Status.select_Active"><text>Active</text></g>
  <g id="Status.select_On_Hold" opacity="0"><text>On hold</text></g>
  <text id="Serial.gen_AUTO.tracking_id">A-0001</text>
  <text id="Bad.track_code.editable">skipped</text>
  <rect fill="#fff"/>
</svg>`

func TestBuilderBuild(t *testing.T) {
	doc := testsupport.ParseDocument(t, builderMarkup)

	list, warnings, err := fields.NewBuilder().Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ids := make([]string, 0, len(list))
	for _, f := range list {
		ids = append(ids, f.ID)
	}
	want := []string{"First_Name", "Agreed", "Status", "Serial"}
	if len(ids) != len(want) {
		t.Fatalf("field ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("field ids = %v, want document order %v", ids, want)
		}
	}

	if len(warnings) != 1 || warnings[0].Code != grammar.WarnTrackPosition {
		t.Fatalf("warnings = %v, want one WarnTrackPosition for the Bad element", warnings)
	}
}

func TestBuilderTextField(t *testing.T) {
	doc := testsupport.ParseDocument(t, builderMarkup)
	list, _, err := fields.NewBuilder().Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	field := testsupport.FieldByID(t, list, "First_Name")
	if field.Name != "First Name" {
		t.Fatalf("Name = %q, want %q", field.Name, "First Name")
	}
	if field.SVGElementID != "First_Name.max_20.editable" {
		t.Fatalf("SVGElementID = %q, want the authored identifier round-tripped", field.SVGElementID)
	}
	if field.Max == nil || *field.Max != 20 {
		t.Fatalf("Max = %v, want 20", field.Max)
	}
	if !field.Editable {
		t.Fatal("Editable = false, want true")
	}
	if field.HelperText != "Legal name" {
		t.Fatalf("HelperText = %q, want data-helper attribute", field.HelperText)
	}
	if field.Default != "John" {
		t.Fatalf("Default = %v, want element text", field.Default)
	}
}

func TestBuilderSelectAggregation(t *testing.T) {
	doc := testsupport.ParseDocument(t, builderMarkup)
	list, _, err := fields.NewBuilder().Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	field := testsupport.FieldByID(t, list, "Status")
	if field.Type != fields.FieldTypeSelect {
		t.Fatalf("Type = %q, want select", field.Type)
	}
	if len(field.Options) != 2 {
		t.Fatalf("Options = %d, want the sibling elements aggregated", len(field.Options))
	}

	first := field.Options[0]
	if first.Value != "Status.select_Active" || first.SVGElementID != "Status.select_Active" {
		t.Fatalf("option value = %q, want the full element id", first.Value)
	}
	if first.Label != "Active" {
		t.Fatalf("option label = %q, want %q", first.Label, "Active")
	}
	if second := field.Options[1]; second.Label != "On Hold" {
		t.Fatalf("option label = %q, want underscores read as spaces", second.Label)
	}

	if field.Default != "Status.select_Active" {
		t.Fatalf("Default = %v, want the first option", field.Default)
	}
	if field.Current != "Status.select_Active" {
		t.Fatalf("Current = %v, want the visible option", field.Current)
	}
}

func TestBuilderTracking(t *testing.T) {
	doc := testsupport.ParseDocument(t, builderMarkup)
	list, _, err := fields.NewBuilder().Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	field := testsupport.FieldByID(t, list, "Serial")
	if !field.IsTrackingID {
		t.Fatal("IsTrackingID = false, want true")
	}
	if field.Type != fields.FieldTypeGenerated {
		t.Fatalf("Type = %q, want generated", field.Type)
	}
	if field.GenerationRule != "AUTO" {
		t.Fatalf("GenerationRule = %q, want %q", field.GenerationRule, "AUTO")
	}
}

func TestBuilderCustomLabeler(t *testing.T) {
	doc := testsupport.ParseDocument(t, `<svg><text id="First_Name">x</text></svg>`)
	builder := fields.NewBuilder(fields.Options{Labeler: func(base string) string {
		return "label:" + base
	}})

	list, _, err := builder.Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if list[0].Name != "label:First_Name" {
		t.Fatalf("Name = %q, want the custom labeler applied", list[0].Name)
	}
}

func TestCloneListIsDeep(t *testing.T) {
	max := 5
	src := []fields.Field{{ID: "a", Max: &max, Options: []fields.Option{{Value: "v"}}}}

	dst := fields.CloneList(src)
	*dst[0].Max = 9
	dst[0].Options[0].Value = "changed"

	if *src[0].Max != 5 {
		t.Fatalf("Max aliased: src mutated to %d", *src[0].Max)
	}
	if src[0].Options[0].Value != "v" {
		t.Fatalf("Options aliased: src mutated to %q", src[0].Options[0].Value)
	}
}
