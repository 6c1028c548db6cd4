package schema

import "strings"

// TypePath builds a readable location for a type nested in a declaration.
// Examples:
//   - "shop.Order" for the declaration itself
//   - "shop.Order.Items" for a field
//   - "shop.Order.Items[]" for the element of a slice field
//   - "shop.Catalog.Index{}" for the value of a map field
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root name.
func NewTypePath(root string) *TypePath {
	return &TypePath{parts: []string{root}}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{parts: append(p.clone(), name)}
}

// Elem marks the element of an array or slice.
func (p *TypePath) Elem() *TypePath {
	return p.suffix("[]")
}

// Value marks the value of a map.
func (p *TypePath) Value() *TypePath {
	return p.suffix("{}")
}

// String returns the full path string.
func (p *TypePath) String() string {
	if p == nil {
		return ""
	}

	return strings.Join(p.parts, ".")
}

func (p *TypePath) clone() []string {
	if p == nil {
		return nil
	}

	return append(make([]string, 0, len(p.parts)+1), p.parts...)
}

func (p *TypePath) suffix(s string) *TypePath {
	parts := p.clone()
	if len(parts) == 0 {
		return &TypePath{parts: []string{s}}
	}

	parts[len(parts)-1] += s

	return &TypePath{parts: parts}
}
