// Package schema resolves Go types into the fixed set of contract shapes.
//
// Key types:
//   - Node: a tagged union over the shapes a value can take on the wire
//   - Resolver: classifies a types.Type into a Node, registering named structs
//   - Registry: deduplicates named struct schemas by qualified name
//   - TypePath: readable location of a type inside a declaration, for diagnostics
package schema
