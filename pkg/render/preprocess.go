package render

import (
	"regexp"
	"strings"
)

// sugarMarker matches one interpolation marker: "{{", any interior spacing,
// the expression, any interior spacing, "}}". Non-greedy so adjacent markers
// on one line stay separate; markers do not span lines.
var sugarMarker = regexp.MustCompile(`\{\{[ \t]*(.*?)[ \t]*\}\}`)

// Preprocess rewrites the sugar interpolation form into the engine's
// canonical output marker, so template authors can write "{{db.host}}" or
// "{{   db.host   }}" interchangeably. The expression text is preserved
// verbatim; only the spacing immediately inside the braces is normalized.
// Content outside markers, including native control tags such as "{% if %}",
// is never touched, and the rewrite is idempotent.
func Preprocess(text string) string {
	return sugarMarker.ReplaceAllStringFunc(text, func(marker string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(marker, "{{"), "}}")
		return "{{ " + strings.Trim(inner, " \t") + " }}"
	})
}
