package preview

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	documentPolicyOnce sync.Once
	documentPolicy     *bluemonday.Policy
)

// sanitizeDocumentMarkup strips scripts and event handlers from the filled
// SVG before it is inlined into the preview page.
func sanitizeDocumentMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(documentSanitizer().Sanitize(trimmed))
}

func documentSanitizer() *bluemonday.Policy {
	documentPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		elements := []string{
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "text", "tspan", "image", "title", "desc", "defs", "use",
			"clipPath", "linearGradient", "radialGradient", "stop", "style",
		}
		policy.AllowElements(elements...)

		policy.AllowAttrs(
			"xmlns", "xmlns:xlink", "viewBox", "width", "height", "fill",
			"stroke", "stroke-width", "version", "preserveAspectRatio", "class",
		).OnElements("svg")

		policy.AllowDataURIImages()
		policy.AllowAttrs(
			"href", "xlink:href", "x", "y", "width", "height",
			"preserveAspectRatio", "transform",
		).OnElements("image", "use")

		common := []string{
			"id", "class", "name", "data-name", "data-helper", "style",
			"transform", "opacity", "visibility", "display", "fill", "stroke",
			"stroke-width", "font-family", "font-size", "font-weight",
			"text-anchor",
		}
		for _, el := range elements {
			policy.AllowAttrs(common...).OnElements(el)
		}
		policy.AllowAttrs(
			"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
			"points", "rx", "ry", "dx", "dy", "offset", "stop-color",
		).OnElements(
			"path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "text", "tspan", "stop",
		)

		documentPolicy = policy
	})
	return documentPolicy
}
