package render

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Editors write CSS transforms into style attributes; rasterisers read the
// SVG transform attribute. These expressions migrate one into the other.
var (
	styleTransformPattern = regexp.MustCompile(`transform\s*:\s*([^;]+)`)
	translatePairPattern  = regexp.MustCompile(`translate\(([^,)]+)px\s*,\s*([^,)]+)px\)`)
	translateOnePattern   = regexp.MustCompile(`translate\(([^,)]+)px\)`)
	rotatePattern         = regexp.MustCompile(`rotate\(([^)]+)\)`)
	rotateAnglePattern    = regexp.MustCompile(`rotate\s*\(\s*(-?\d+\.?\d*)`)

	styleTransformStrip = regexp.MustCompile(`transform\s*:\s*[^;]+;?`)
	styleOriginStrip    = regexp.MustCompile(`transform-origin\s*:\s*[^;]+;?`)
	styleBoxStrip       = regexp.MustCompile(`transform-box\s*:\s*[^;]+;?`)
)

// normalizeTransform consolidates any CSS transform found in the element's
// style attribute into the SVG transform attribute: translate loses its px
// units, rotate loses deg and gains an explicit pivot at the element's
// bounding-box centre when width/height are present. The style attribute is
// cleaned of transform properties afterwards.
func normalizeTransform(el *etree.Element) {
	style := el.SelectAttrValue("style", "")
	match := styleTransformPattern.FindStringSubmatch(style)
	if match == nil {
		return
	}
	styleTransform := strings.TrimSpace(match[1])

	cx, cy := boundingBoxCenter(el)
	hasDimensions := el.SelectAttr("width") != nil && el.SelectAttr("height") != nil

	normalized := translatePairPattern.ReplaceAllString(styleTransform, "translate($1, $2)")
	normalized = translateOnePattern.ReplaceAllString(normalized, "translate($1)")
	normalized = rotatePattern.ReplaceAllStringFunc(normalized, func(raw string) string {
		inner := rotatePattern.FindStringSubmatch(raw)[1]
		angle := strings.TrimSpace(strings.ReplaceAll(inner, "deg", ""))
		if !strings.Contains(inner, ",") && hasDimensions {
			return fmt.Sprintf("rotate(%s, %s, %s)", angle, formatCoord(cx), formatCoord(cy))
		}
		return fmt.Sprintf("rotate(%s)", angle)
	})

	combined := strings.TrimSpace(strings.TrimSpace(el.SelectAttrValue("transform", "")) + " " + normalized)
	el.CreateAttr("transform", combined)

	cleaned := styleTransformStrip.ReplaceAllString(style, "")
	cleaned = styleOriginStrip.ReplaceAllString(cleaned, "")
	cleaned = styleBoxStrip.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned != "" {
		el.CreateAttr("style", cleaned)
	} else {
		el.RemoveAttr("style")
	}
}

// composeRotation adds the field's rotation to any rotation already in the
// transform, pivoting about the element's bounding-box centre. Non-rotation
// transform components are never discarded.
func composeRotation(el *etree.Element, rotation float64) {
	if math.IsNaN(rotation) {
		return
	}

	cx, cy := boundingBoxCenter(el)
	existing := el.SelectAttrValue("transform", "")

	base := 0.0
	if match := rotateAnglePattern.FindStringSubmatch(existing); match != nil {
		if parsed, err := strconv.ParseFloat(match[1], 64); err == nil {
			base = parsed
		}
	}

	total := base + rotation
	rotationExpr := ""
	if total != 0 {
		rotationExpr = fmt.Sprintf("rotate(%s, %s, %s)", formatCoord(total), formatCoord(cx), formatCoord(cy))
	}

	var next string
	switch {
	case strings.Contains(existing, "rotate("):
		next = strings.TrimSpace(rotatePattern.ReplaceAllString(existing, rotationExpr))
	case rotationExpr != "":
		next = strings.TrimSpace(existing + " " + rotationExpr)
	default:
		next = existing
	}

	if next != "" {
		el.CreateAttr("transform", next)
	} else {
		el.RemoveAttr("transform")
	}
}

func boundingBoxCenter(el *etree.Element) (cx, cy float64) {
	x := floatAttr(el, "x")
	y := floatAttr(el, "y")
	w := floatAttr(el, "width")
	h := floatAttr(el, "height")
	return x + w/2, y + h/2
}

func floatAttr(el *etree.Element, key string) float64 {
	value, err := strconv.ParseFloat(el.SelectAttrValue(key, "0"), 64)
	if err != nil {
		return 0
	}
	return value
}

// formatCoord renders numbers without a trailing .0 so output matches
// hand-authored SVG.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
