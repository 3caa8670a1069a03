// Package engine coordinates the full pipeline from raw SVG bytes to field
// models, patched documents, and rendered output. It applies sensible
// defaults (SVG renderer registered, standard builder) while remaining open
// to dependency injection for advanced callers.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/printplog/svgform/pkg/fields"
	"github.com/printplog/svgform/pkg/grammar"
	"github.com/printplog/svgform/pkg/patch"
	"github.com/printplog/svgform/pkg/render"
	fieldsync "github.com/printplog/svgform/pkg/sync"
	"github.com/printplog/svgform/pkg/svg"
)

const defaultRendererName = "svg"

// Option customises the engine configuration.
type Option func(*Engine)

// WithBuilder injects a custom field builder.
func WithBuilder(builder *fields.Builder) Option {
	return func(e *Engine) {
		e.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(e *Engine) {
		e.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(e *Engine) {
		e.defaultRenderer = name
	}
}

// Engine wires the parser, builder, patch engine, sync engine, and renderer
// registry behind one façade.
type Engine struct {
	builder         *fields.Builder
	registry        *render.Registry
	defaultRenderer string
	defaultsApplied bool
}

// New constructs an Engine applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Engine {
	e := &Engine{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.applyDefaults()
	return e
}

func (e *Engine) applyDefaults() {
	if e.defaultsApplied {
		return
	}
	if e.builder == nil {
		e.builder = fields.NewBuilder()
	}
	if e.registry == nil {
		e.registry = render.NewRegistry()
		e.registry.MustRegister(render.NewSVGRenderer())
	}
	if e.defaultRenderer == "" {
		e.defaultRenderer = defaultRendererName
	}
	e.defaultsApplied = true
}

// Registry exposes the renderer registry so callers can register outputs.
func (e *Engine) Registry() *render.Registry {
	return e.registry
}

// Template pairs a parsed document with its extracted field list.
type Template struct {
	Document *svg.Document
	Fields   []fields.Field
	Warnings []grammar.Warning
}

// Ingest parses raw SVG bytes and extracts the field list.
func (e *Engine) Ingest(ctx context.Context, raw []byte) (*Template, error) {
	if ctx == nil {
		return nil, errors.New("engine: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := svg.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("engine: parse document: %w", err)
	}

	list, warnings, err := e.builder.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("engine: build fields: %w", err)
	}

	return &Template{Document: doc, Fields: list, Warnings: warnings}, nil
}

// RenderRequest describes one render pass over a stored template.
type RenderRequest struct {
	// Raw holds the stored template bytes. Each render parses a fresh copy so
	// repeated submissions never see each other's mutations.
	Raw []byte

	// Fields is the stored field list for the template.
	Fields []fields.Field

	// Updates carries the submitted values, keyed by field id.
	Updates []render.Update

	// Renderer names the output to produce. Empty falls back to the default.
	Renderer string
}

// Render executes parse, fill, serialise via the selected renderer. When the
// stored document no longer parses, the caller's field list is returned
// untouched alongside the error so submissions degrade without losing state.
func (e *Engine) Render(ctx context.Context, req RenderRequest) ([]byte, []fields.Field, error) {
	if ctx == nil {
		return nil, nil, errors.New("engine: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	doc, err := svg.Parse(req.Raw)
	if err != nil {
		return nil, fields.CloneList(req.Fields), fmt.Errorf("engine: parse document: %w", err)
	}

	renderer, err := e.rendererFor(req.Renderer)
	if err != nil {
		return nil, nil, err
	}

	out, updated, err := renderer.Render(ctx, doc, req.Fields, req.Updates)
	if err != nil {
		return nil, nil, fmt.Errorf("engine: render output: %w", err)
	}
	return out, updated, nil
}

// Submit is the submission boundary: submitted values rendered into the
// stored document through the default renderer. Callers persist the returned
// document bytes; refreshing the stored field list from the returned one is
// their choice.
func (e *Engine) Submit(ctx context.Context, raw []byte, fieldList []fields.Field, updates []render.Update) ([]byte, []fields.Field, error) {
	return e.Render(ctx, RenderRequest{Raw: raw, Fields: fieldList, Updates: updates})
}

func (e *Engine) rendererFor(name string) (render.Renderer, error) {
	if e.registry == nil {
		return nil, errors.New("engine: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = e.defaultRenderer
	}

	renderer, err := e.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("engine: renderer %q: %w", target, err)
	}
	return renderer, nil
}

// ApplyPatches parses the stored bytes, applies the patch batch, and returns
// the updated serialisation together with the application report.
func (e *Engine) ApplyPatches(ctx context.Context, raw []byte, patches []patch.Patch) ([]byte, patch.Report, error) {
	if ctx == nil {
		return nil, patch.Report{}, errors.New("engine: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, patch.Report{}, err
	}

	doc, err := svg.Parse(raw)
	if err != nil {
		return nil, patch.Report{}, fmt.Errorf("engine: parse document: %w", err)
	}

	report := patch.Apply(doc, patches)
	out, err := doc.Bytes()
	if err != nil {
		return nil, report, fmt.Errorf("engine: serialise document: %w", err)
	}
	return out, report, nil
}

// MergePatches folds an incoming batch into the stored one, last write per
// target and attribute winning.
func (e *Engine) MergePatches(existing, incoming []patch.Patch) []patch.Patch {
	combined := make([]patch.Patch, 0, len(existing)+len(incoming))
	combined = append(combined, existing...)
	combined = append(combined, incoming...)
	return patch.Merge(combined)
}

// SyncFields reconciles the stored field list with an editor patch batch
// without re-parsing the document.
func (e *Engine) SyncFields(fieldList []fields.Field, patches []patch.Patch) ([]fields.Field, bool) {
	return fieldsync.Sync(fieldList, patches)
}
