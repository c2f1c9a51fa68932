package prompt

import (
	"regexp"
)

var fieldPattern = regexp.MustCompile(`\{(\w+)\}`)

// Template is a renderable prompt. Registry-backed templates carry a
// Version and Alias; a degraded raw-content fallback has Version 0
// and no tags but the same rendering contract.
type Template struct {
	Name    string            `json:"name"`
	Version int               `json:"version,omitempty"`
	Alias   string            `json:"alias,omitempty"`
	Body    string            `json:"body"`
	Tags    map[string]string `json:"tags,omitempty"`
}

// Managed reports whether the template came from the registry.
func (t *Template) Managed() bool {
	return t.Version > 0
}

// Render substitutes each {field} placeholder with the matching value.
// Every placeholder in the body must be present in fields; extra
// unused fields are ignored. The first unresolved placeholder, in
// order of appearance, is reported as a MissingFieldError.
func (t *Template) Render(fields map[string]string) (string, error) {
	for _, name := range t.Fields() {
		if _, ok := fields[name]; !ok {
			return "", &MissingFieldError{Field: name}
		}
	}

	return fieldPattern.ReplaceAllStringFunc(t.Body, func(match string) string {
		return fields[match[1:len(match)-1]]
	}), nil
}

// Fields returns the distinct placeholder names in order of first
// appearance.
func (t *Template) Fields() []string {
	matches := fieldPattern.FindAllStringSubmatch(t.Body, -1)
	seen := make(map[string]bool, len(matches))
	var fields []string
	for _, m := range matches {
		if !seen[m[1]] {
			fields = append(fields, m[1])
			seen[m[1]] = true
		}
	}
	return fields
}
