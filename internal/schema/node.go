package schema

import (
	"slices"
	"strings"
)

// Primitive names a scalar wire type.
type Primitive string

const (
	Number  Primitive = "number"
	String  Primitive = "string"
	Boolean Primitive = "boolean"
)

// Node is one schema shape. Which fields are set depends on Kind:
//   - KindPrimitive: Primitive, Enum
//   - KindArray: Elem is the item schema
//   - KindMap: Elem is the value schema; keys are not modeled
//   - KindReference: Ref is the qualified name of the target, never its body
//   - KindObject: Properties sorted by name, Required in declaration order
type Node struct {
	Kind       Kind
	Primitive  Primitive
	Enum       []any
	Elem       *Node
	Ref        string
	Properties []Property
	Required   []string
}

// Property is a named member of an object schema.
type Property struct {
	// Name is the wire name, already escaped.
	Name        string
	Node        *Node
	Description string
}

// Opaque returns a schema that accepts any object.
func Opaque() *Node {
	return &Node{Kind: KindOpaque}
}

// PrimitiveOf returns a scalar schema, optionally restricted to enum values.
func PrimitiveOf(p Primitive, enum ...any) *Node {
	return &Node{Kind: KindPrimitive, Primitive: p, Enum: enum}
}

// ArrayOf returns an array schema with the given items.
func ArrayOf(item *Node) *Node {
	return &Node{Kind: KindArray, Elem: item}
}

// MapOf returns a string-keyed map schema with the given values.
func MapOf(value *Node) *Node {
	return &Node{Kind: KindMap, Elem: value}
}

// Reference returns a pointer to the named schema.
func Reference(qualified string) *Node {
	return &Node{Kind: KindReference, Ref: qualified}
}

// Object returns an object schema; properties are sorted by name.
func Object(props ...Property) *Node {
	sorted := slices.Clone(props)
	slices.SortStableFunc(sorted, func(a, b Property) int {
		return strings.Compare(a.Name, b.Name)
	})

	return &Node{Kind: KindObject, Properties: sorted}
}

// Date returns a calendar-date schema.
func Date() *Node {
	return &Node{Kind: KindDate}
}

// DateTime returns a timestamp schema.
func DateTime() *Node {
	return &Node{Kind: KindDateTime}
}

// Property returns the named property of an object schema.
func (n *Node) Property(name string) (Property, bool) {
	for _, p := range n.Properties {
		if p.Name == name {
			return p, true
		}
	}

	return Property{}, false
}
