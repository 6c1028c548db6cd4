package schema

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind is the shape of a Node.
type Kind int

const (
	KindOpaque Kind = iota
	KindPrimitive
	KindArray
	KindMap
	KindReference
	KindObject
	KindDate
	KindDateTime
)
