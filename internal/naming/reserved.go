package naming

import (
	"contract-generator/internal/diagnostic"
)

// reservedWords are JavaScript and TypeScript keywords, reserved words and
// predefined type names.
var reservedWords = []string{
	"any", "arguments", "as", "async", "await",
	"boolean", "break",
	"case", "catch", "class", "const", "constructor", "continue",
	"debugger", "declare", "default", "delete", "do",
	"else", "enum", "eval", "export", "extends",
	"false", "finally", "for", "from", "function",
	"get",
	"if", "implements", "import", "in", "instanceof", "interface",
	"let",
	"module",
	"never", "new", "null", "number",
	"of",
	"package", "private", "protected", "public",
	"readonly", "require", "return",
	"set", "static", "string", "super", "switch", "symbol",
	"this", "throw", "true", "try", "type", "typeof",
	"undefined", "unknown",
	"var", "void",
	"while", "with",
	"yield",
}

// Validator checks identifiers against the reserved word table.
type Validator struct {
	reserved map[string]struct{}
}

// NewValidator creates a Validator using the built-in table plus extra words.
func NewValidator(extra ...string) *Validator {
	v := &Validator{reserved: make(map[string]struct{}, len(reservedWords)+len(extra))}

	for _, w := range reservedWords {
		v.reserved[w] = struct{}{}
	}

	for _, w := range extra {
		v.reserved[w] = struct{}{}
	}

	return v
}

// IsReserved reports whether id collides with a reserved word. The match is case-sensitive.
func (v *Validator) IsReserved(id string) bool {
	_, ok := v.reserved[id]
	return ok
}

// Validate fails for reserved service and method names, which cannot be escaped
// without changing the path clients call.
func (v *Validator) Validate(what, id string) error {
	if v.IsReserved(id) {
		return diagnostic.Errorf(diagnostic.KindReservedName, id, "%s name %q is a reserved word", what, id)
	}

	return nil
}

// Escape prefixes reserved parameter and property names with an underscore.
func (v *Validator) Escape(id string) string {
	if v.IsReserved(id) {
		return "_" + id
	}

	return id
}

// EscapeAll escapes a set of sibling names. Names that are not reserved keep
// their spelling; an escaped name that lands on a sibling or another reserved
// word gains further underscores until it is unique.
func (v *Validator) EscapeAll(ids []string) []string {
	out := make([]string, len(ids))
	escaped := make([]bool, len(ids))
	taken := make(map[string]struct{}, len(ids))

	for i, id := range ids {
		out[i] = v.Escape(id)
		escaped[i] = out[i] != id

		if !escaped[i] {
			taken[id] = struct{}{}
		}
	}

	for i := range ids {
		if !escaped[i] {
			continue
		}

		name := out[i]
		for {
			_, clash := taken[name]
			if !clash && !v.IsReserved(name) {
				break
			}

			name = "_" + name
		}

		out[i] = name
		taken[name] = struct{}{}
	}

	return out
}
