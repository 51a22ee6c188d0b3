package restbound

import (
	"strings"
)

// TemplatePartType represents the type of template part
type TemplatePartType int

const (
	StaticPart TemplatePartType = iota
	PlaceholderPart
)

// TemplatePart represents a single part of a path template
type TemplatePart struct {
	Type  TemplatePartType
	Value string // For static parts: the literal text, for placeholders: the placeholder name
}

// TemplatePath represents a path template in `{name}` placeholder format and
// provides parsed parts
type TemplatePath string

// Raw returns the original template text
func (p TemplatePath) Raw() string {
	return string(p)
}

// Parts parses the template and returns the individual parts. A placeholder
// is a maximal substring bounded by '{' and '}' containing no nested braces;
// an unterminated '{' is treated as static text.
func (p TemplatePath) Parts() []TemplatePart {
	path := string(p)
	var parts []TemplatePart

	i := 0
	for i < len(path) {
		if path[i] == '{' {
			j := i + 1
			for j < len(path) && path[j] != '}' && path[j] != '{' {
				j++
			}
			if j < len(path) && path[j] == '}' && j > i+1 {
				parts = append(parts, TemplatePart{
					Type:  PlaceholderPart,
					Value: path[i+1 : j],
				})
				i = j + 1
			} else {
				// Malformed (unterminated, nested or empty), treat as static
				parts = append(parts, TemplatePart{
					Type:  StaticPart,
					Value: string(path[i]),
				})
				i++
			}
		} else {
			start := i
			for i < len(path) && path[i] != '{' {
				i++
			}
			parts = append(parts, TemplatePart{
				Type:  StaticPart,
				Value: path[start:i],
			})
		}
	}

	return parts
}

// Placeholders returns the placeholder names in template order, duplicates
// included
func (p TemplatePath) Placeholders() []string {
	var names []string
	for _, part := range p.Parts() {
		if part.Type == PlaceholderPart {
			names = append(names, part.Value)
		}
	}
	return names
}

// Expand substitutes placeholder values into the template. Placeholders with
// no substitution are left verbatim.
func (p TemplatePath) Expand(substitutions map[string]string) string {
	var b strings.Builder
	for _, part := range p.Parts() {
		switch part.Type {
		case PlaceholderPart:
			if value, ok := substitutions[part.Value]; ok {
				b.WriteString(value)
			} else {
				b.WriteString("{" + part.Value + "}")
			}
		default:
			b.WriteString(part.Value)
		}
	}
	return b.String()
}

// NewTemplatePath creates a new TemplatePath from a string
func NewTemplatePath(path string) TemplatePath {
	return TemplatePath(path)
}
