package vanilla

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	textPolicy *bluemonday.Policy
	richPolicy *bluemonday.Policy
	iconPolicy *bluemonday.Policy
)

func policies() {
	policyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
		richPolicy = bluemonday.UGCPolicy()
		iconPolicy = newIconPolicy()
	})
}

// descriptionHTML strips any markup from a plain-text description, escapes
// it, and turns line breaks into <br>.
func descriptionHTML(text string) string {
	policies()
	cleaned := html.UnescapeString(textPolicy.Sanitize(strings.TrimSpace(text)))
	lines := strings.Split(cleaned, "\n")
	for idx, line := range lines {
		lines[idx] = html.EscapeString(strings.TrimRight(line, " \r\t"))
	}
	return strings.Join(lines, "<br>\n")
}

// richHTML keeps the safe subset of user generated markup.
func richHTML(text string) string {
	policies()
	return strings.TrimSpace(richPolicy.Sanitize(text))
}

func sanitizeIcon(raw string) string {
	policies()
	return strings.TrimSpace(iconPolicy.Sanitize(strings.TrimSpace(raw)))
}

func newIconPolicy() *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	policy.AllowElements("svg", "g", "path", "circle", "rect", "line", "polyline", "polygon")
	policy.AllowAttrs(
		"xmlns", "viewBox", "width", "height", "fill", "stroke",
		"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden", "class",
	).OnElements("svg")
	for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon"} {
		policy.AllowAttrs(
			"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
			"points", "rx", "ry", "width", "height",
		).OnElements(el)
	}
	return policy
}
