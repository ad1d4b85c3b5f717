// Package agents contains the orchestration core: the supervisor, the
// router, the two executors, the finalizer and the state graph that wires
// them together.
package agents

import (
	"fmt"
	"strings"
)

// Template is a prompt with {name} placeholders. Literal braces are written
// as {{ and }}; anything else brace-shaped is a template error, which is how
// unescaped JSON baked into a prompt surfaces instead of corrupting it.
type Template struct {
	text string
}

func NewTemplate(text string) Template {
	return Template{text: text}
}

// EscapeBraces prepares literal text for inclusion in a Template source.
func EscapeBraces(s string) string {
	return strings.NewReplacer("{", "{{", "}", "}}").Replace(s)
}

// Render substitutes placeholders in a single pass. Substituted values are
// not rescanned, so only the template source itself needs escaping.
func (t Template) Render(vars map[string]string) (string, error) {
	var b strings.Builder
	s := t.text
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("template: unclosed brace at offset %d", i)
			}
			name := s[i+1 : i+1+end]
			if !validPlaceholder(name) {
				return "", fmt.Errorf("template: invalid placeholder %q", name)
			}
			v, ok := vars[name]
			if !ok {
				return "", fmt.Errorf("template: unknown placeholder %q", name)
			}
			b.WriteString(v)
			i += end + 1
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("template: unescaped '}' at offset %d", i)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), nil
}

func validPlaceholder(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
