// Package formatter provides template parsing, token binding and preset management
// for rendering email previews from lead records.
package formatter

import (
	"regexp"
)

// TemplateEngine provides template parsing and token substitution.
type TemplateEngine interface {
	// Parse returns the distinct tokens found in the template, in order of appearance.
	Parse(template string) []string

	// Render replaces every bound token in the template with its binding.
	Render(template string, bindings map[string]string) string
}

// templateEngine implements TemplateEngine interface.
type templateEngine struct {
	tokenPattern *regexp.Regexp
}

// NewTemplateEngine creates a new template engine instance.
func NewTemplateEngine() TemplateEngine {
	return &templateEngine{
		tokenPattern: regexp.MustCompile(`\{\{([^{}]+)\}\}`),
	}
}

// Parse identifies all tokens in a template string using {{token}} syntax.
func (te *templateEngine) Parse(template string) []string {
	matches := te.tokenPattern.FindAllStringSubmatch(template, -1)
	tokens := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, match := range matches {
		name := match[1]
		if !seen[name] {
			tokens = append(tokens, name)
			seen[name] = true
		}
	}
	return tokens
}

// Render substitutes tokens in a single pass. Replacement text is literal and
// never expanded again. Unbound tokens and unterminated braces stay as written.
func (te *templateEngine) Render(template string, bindings map[string]string) string {
	if template == "" || len(bindings) == 0 {
		return template
	}
	return te.tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-2]
		if value, ok := bindings[name]; ok {
			return value
		}
		return match
	})
}

// Missing returns the tokens in the template that have no binding.
func Missing(engine TemplateEngine, template string, bindings map[string]string) []string {
	var missing []string
	for _, token := range engine.Parse(template) {
		if _, ok := bindings[token]; !ok {
			missing = append(missing, token)
		}
	}
	return missing
}

var defaultEngine = NewTemplateEngine()

// Render substitutes tokens using the default engine.
func Render(template string, bindings map[string]string) string {
	return defaultEngine.Render(template, bindings)
}
