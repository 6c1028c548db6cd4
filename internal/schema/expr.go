package schema

// TypeExpression renders a node as a short type expression for tooling
// that consumes the x-parameters side channel. Examples:
//   - "string", "number[]", "Map<string, Item>", "Date", "object"
//
// Reference names are mapped through componentName; unknown references keep
// their qualified name.
func TypeExpression(n *Node, componentName func(qualified string) string) string {
	if n == nil {
		return "void"
	}

	switch n.Kind {
	case KindPrimitive:
		return string(n.Primitive)
	case KindArray:
		return TypeExpression(n.Elem, componentName) + "[]"
	case KindMap:
		return "Map<string, " + TypeExpression(n.Elem, componentName) + ">"
	case KindReference:
		if componentName != nil {
			if name := componentName(n.Ref); name != "" {
				return name
			}
		}

		return n.Ref
	case KindDate:
		return "Date"
	case KindDateTime:
		return "DateTime"
	default:
		return "object"
	}
}
