// Package testsupport holds helpers shared by the package contract tests:
// fixture loading, inline document parsing, and field list golden files.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/printplog/svgform/pkg/fields"
	"github.com/printplog/svgform/pkg/svg"
)

// ParseDocument parses inline SVG markup, failing the test on error. Most
// contract tests build their documents from short literals rather than
// fixture files.
func ParseDocument(t *testing.T, markup string) *svg.Document {
	t.Helper()

	doc, err := svg.ParseString(markup)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// LoadDocument reads an SVG fixture file into a parsed document.
func LoadDocument(t *testing.T, path string) *svg.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (*svg.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := svg.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse document: %w", err)
	}
	return doc, nil
}

// MustLoadFields loads a JSON golden file into a field list.
func MustLoadFields(t *testing.T, path string) []fields.Field {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	var out []fields.Field
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// DiffFields compares field lists and fails with a readable diff.
func DiffFields(t *testing.T, want, got []fields.Field) {
	t.Helper()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field list mismatch (-want +got):\n%s", diff)
	}
}

// FieldByID returns the field with the given id, failing when absent.
func FieldByID(t *testing.T, list []fields.Field, id string) fields.Field {
	t.Helper()

	for _, f := range list {
		if f.ID == id {
			return f
		}
	}
	t.Fatalf("field %q not found in list of %d", id, len(list))
	return fields.Field{}
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is
// set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
