package depends_test

import (
	"testing"

	"github.com/printplog/svgform/pkg/depends"
)

func TestResolve(t *testing.T) {
	values := map[string]string{
		"Name":    "HELLO WORLD",
		"Company": "Acme Corporation Ltd",
		"Photo":   "data:image//png;base64,AAAA",
		"Scan":    "blob:https://host/uuid",
	}

	tests := []struct {
		name string
		expr string
		want string
	}{
		{name: "whole value", expr: "Name", want: "HELLO WORLD"},
		{name: "unknown field resolves empty", expr: "Missing", want: ""},
		{name: "second word", expr: "Company[w2]", want: "Corporation"},
		{name: "word out of range", expr: "Company[w9]", want: ""},
		{name: "single character", expr: "Name[ch1]", want: "H"},
		{name: "character range", expr: "Name[ch1-4]", want: "HELL"},
		{name: "range clamps to length", expr: "Name[ch7-99]", want: "WORLD"},
		{name: "comma list skips invalid entries", expr: "Name[ch1,3,x,5]", want: "HLO"},
		{name: "character out of range", expr: "Name[ch99]", want: ""},
		{name: "inverted range resolves empty", expr: "Name[ch5-2]", want: ""},
		{name: "data URI passes through unsliced", expr: "Photo[ch1-4]", want: "data:image//png;base64,AAAA"},
		{name: "blob URL passes through", expr: "Scan[w2]", want: "blob:https://host/uuid"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := depends.Resolve(values, tc.expr); got != tc.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tc.expr, got, tc.want)
			}
		})
	}
}

func TestBaseField(t *testing.T) {
	if got := depends.BaseField("Name[ch1-4]"); got != "Name" {
		t.Fatalf("BaseField = %q, want %q", got, "Name")
	}
	if got := depends.BaseField("Name"); got != "Name" {
		t.Fatalf("BaseField = %q, want %q", got, "Name")
	}
}

func TestIsImagePayload(t *testing.T) {
	if !depends.IsImagePayload("data:image/png;base64,AAAA") {
		t.Fatal("data URI not recognised")
	}
	if !depends.IsImagePayload("blob:https://host/uuid") {
		t.Fatal("blob URL not recognised")
	}
	if depends.IsImagePayload("plain text") {
		t.Fatal("plain text misclassified as image payload")
	}
}
