package patch_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/printplog/svgform/pkg/patch"
)

func TestPatchUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want patch.Patch
	}{
		{
			name: "string value",
			in:   `{"id":"Company","attribute":"innerText","value":"Acme"}`,
			want: patch.Patch{TargetID: "Company", Attribute: "innerText", Value: "Acme"},
		},
		{
			name: "missing value",
			in:   `{"id":"Logo","attribute":"href"}`,
			want: patch.Patch{TargetID: "Logo", Attribute: "href"},
		},
		{
			name: "null value",
			in:   `{"id":"Logo","attribute":"href","value":null}`,
			want: patch.Patch{TargetID: "Logo", Attribute: "href"},
		},
		{
			name: "numeric value kept literally",
			in:   `{"id":"Box","attribute":"width","value":120}`,
			want: patch.Patch{TargetID: "Box", Attribute: "width", Value: "120"},
		},
		{
			name: "reorder directive",
			in:   `{"id":"Layer2","attribute":"reorder","value":{"beforeId":"Layer1"}}`,
			want: patch.Patch{TargetID: "Layer2", Attribute: "reorder", Reorder: &patch.Reorder{BeforeID: "Layer1"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got patch.Patch
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("patch mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatchMarshalRoundTrip(t *testing.T) {
	in := []patch.Patch{
		{TargetID: "Company", Attribute: "innerText", Value: "Acme"},
		{TargetID: "Layer2", Attribute: "reorder", Reorder: &patch.Reorder{AfterID: "Layer3"}},
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got []patch.Patch
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeLastWriteWins(t *testing.T) {
	in := []patch.Patch{
		{TargetID: "Company", Attribute: "innerText", Value: "Acme"},
		{TargetID: "Logo", Attribute: "href", Value: "a.png"},
		{TargetID: "Company", Attribute: "innerText", Value: "Acme Ltd"},
		{TargetID: "Company", Attribute: "fill", Value: "#000"},
	}

	got := patch.Merge(in)
	want := []patch.Patch{
		{TargetID: "Company", Attribute: "innerText", Value: "Acme Ltd"},
		{TargetID: "Logo", Attribute: "href", Value: "a.png"},
		{TargetID: "Company", Attribute: "fill", Value: "#000"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeKeepsReordersInOrder(t *testing.T) {
	in := []patch.Patch{
		{TargetID: "A", Attribute: "reorder", Reorder: &patch.Reorder{BeforeID: "B"}},
		{TargetID: "A", Attribute: "fill", Value: "#111"},
		{TargetID: "A", Attribute: "reorder", Reorder: &patch.Reorder{AfterID: "C"}},
	}

	got := patch.Merge(in)
	if len(got) != 3 {
		t.Fatalf("merged length = %d, want reorders never deduplicated", len(got))
	}
	if got[0].Attribute != "fill" {
		t.Fatalf("got[0].Attribute = %q, want attribute patches first", got[0].Attribute)
	}
	if got[1].Reorder.BeforeID != "B" || got[2].Reorder.AfterID != "C" {
		t.Fatal("reorder patches lost their submission order")
	}
}

func TestMergeIdempotent(t *testing.T) {
	in := []patch.Patch{
		{TargetID: "Company", Attribute: "innerText", Value: "Acme"},
		{TargetID: "Company", Attribute: "innerText", Value: "Acme Ltd"},
		{TargetID: "A", Attribute: "reorder", Reorder: &patch.Reorder{BeforeID: "B"}},
	}

	once := patch.Merge(in)
	twice := patch.Merge(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("Merge not idempotent (-once +twice):\n%s", diff)
	}
}
