package schema

import (
	"fmt"
	"go/types"

	"contract-generator/internal/analyze"
	"contract-generator/internal/diagnostic"
)

// Library types with a fixed mapping, by qualified name.
var (
	numberTypes = map[string]bool{
		"math/big.Int":         true,
		"math/big.Float":       true,
		"math/big.Rat":         true,
		"encoding/json.Number": true,
	}
	opaqueTypes = map[string]bool{
		"encoding/json.RawMessage": true,
	}
	listTypes = map[string]bool{
		"container/list.List": true,
		"container/ring.Ring": true,
	}
	mapTypes = map[string]bool{
		"sync.Map": true,
	}
	dateTypes = []string{
		"cloud.google.com/go/civil.Date",
	}
	dateTimeTypes = map[string]bool{
		"time.Time":                          true,
		"cloud.google.com/go/civil.DateTime": true,
	}
)

// Escaper renames sibling wire names that collide with reserved words. The
// result has one entry per input, in order, with no duplicates.
type Escaper interface {
	EscapeAll(ids []string) []string
}

// Resolver classifies types into schema nodes. Named structs become
// references registered on the Registry and are built by ResolveAll.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	scan     *analyze.Scan
	registry *Registry
	escaper  Escaper
	diags    *diagnostic.Diagnostics
	dates    map[string]bool
}

// NewResolver creates a Resolver over a scan. extraDateTypes are qualified
// names mapped to Date in addition to the built-in ones.
func NewResolver(scan *analyze.Scan, registry *Registry, escaper Escaper, diags *diagnostic.Diagnostics, extraDateTypes ...string) *Resolver {
	dates := make(map[string]bool, len(dateTypes)+len(extraDateTypes))
	for _, d := range dateTypes {
		dates[d] = true
	}

	for _, d := range extraDateTypes {
		dates[d] = true
	}

	return &Resolver{
		scan:     scan,
		registry: registry,
		escaper:  escaper,
		diags:    diags,
		dates:    dates,
	}
}

// Registry returns the registry references are recorded on.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve maps t to a schema node. It never fails: types that cannot be
// mapped degrade to Opaque with a diagnostic. at locates t for diagnostics.
func (r *Resolver) Resolve(t types.Type, at *TypePath) *Node {
	t = deref(t)

	named, _ := t.(*types.Named)
	id := ""

	if named != nil {
		id = analyze.IDOf(named).String()
	}

	if basic, ok := t.(*types.Basic); ok && basic.Kind() == types.Invalid {
		r.diags.AddWarning(diagnostic.CodeUnresolvedType, "type could not be resolved", at.String(), "")
		return Opaque()
	}

	if opaqueTypes[id] {
		return Opaque()
	}

	switch u := t.(type) {
	case *types.Slice:
		if isByte(u.Elem()) {
			return PrimitiveOf(String)
		}

		return ArrayOf(r.Resolve(u.Elem(), at.Elem()))
	case *types.Array:
		return ArrayOf(r.Resolve(u.Elem(), at.Elem()))
	}

	if numberTypes[id] {
		return PrimitiveOf(Number)
	}

	if basic, ok := t.Underlying().(*types.Basic); ok {
		if p, ok := primitiveOf(basic); ok {
			return PrimitiveOf(p, r.enum(named)...)
		}
	}

	if listTypes[id] {
		return ArrayOf(Opaque())
	}

	switch u := t.Underlying().(type) {
	case *types.Slice:
		if isByte(u.Elem()) {
			return PrimitiveOf(String)
		}

		return ArrayOf(r.Resolve(u.Elem(), at.Elem()))
	case *types.Array:
		return ArrayOf(r.Resolve(u.Elem(), at.Elem()))
	case *types.Map:
		return MapOf(r.Resolve(u.Elem(), at.Value()))
	}

	if mapTypes[id] {
		return MapOf(Opaque())
	}

	if r.dates[id] {
		return Date()
	}

	if dateTimeTypes[id] {
		return DateTime()
	}

	if named != nil && r.isStandard(named) {
		return Opaque()
	}

	switch t.Underlying().(type) {
	case *types.Interface, *types.Chan, *types.Signature:
		return Opaque()
	}

	if st, ok := t.Underlying().(*types.Struct); ok {
		if named == nil {
			return r.buildObject(st, nil, at)
		}

		name := types.TypeString(named, nil)
		r.registry.Register(name, named)

		return Reference(name)
	}

	r.diags.AddWarning(diagnostic.CodeUnsupportedType, fmt.Sprintf("type %s cannot be mapped", t), at.String(), "")

	return Opaque()
}

// ResolveAll builds every registered reference. Names whose declaration is
// outside the scanned roots become Opaque.
func (r *Resolver) ResolveAll() map[string]*Node {
	return r.registry.ResolveAll(r.buildReference)
}

func (r *Resolver) buildReference(qualified string, t types.Type) *Node {
	named, ok := t.(*types.Named)
	if !ok {
		return Opaque()
	}

	if _, ok := r.scan.Lookup(analyze.IDOf(named).String()); !ok {
		return Opaque()
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return Opaque()
	}

	return r.buildObject(st, named, NewTypePath(qualified))
}

func (r *Resolver) enum(named *types.Named) []any {
	if named == nil || r.isStandard(named) {
		return nil
	}

	return r.scan.EnumValues(analyze.IDOf(named))
}

func (r *Resolver) isStandard(named *types.Named) bool {
	pkg := named.Obj().Pkg()

	// universe types such as error
	if pkg == nil {
		return true
	}

	return r.scan.IsStandard(pkg.Path())
}

func primitiveOf(b *types.Basic) (Primitive, bool) {
	info := b.Info()

	switch {
	case info&types.IsComplex != 0:
		return "", false
	case info&types.IsNumeric != 0:
		return Number, true
	case info&types.IsString != 0:
		return String, true
	case info&types.IsBoolean != 0:
		return Boolean, true
	default:
		return "", false
	}
}

func isByte(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Kind() == types.Uint8
}

func deref(t types.Type) types.Type {
	t = types.Unalias(t)
	for {
		p, ok := t.(*types.Pointer)
		if !ok {
			return t
		}

		t = types.Unalias(p.Elem())
	}
}
