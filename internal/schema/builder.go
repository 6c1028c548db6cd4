package schema

import (
	"go/types"
	"reflect"
	"strings"

	"contract-generator/internal/analyze"
)

// field is a candidate property found while walking a struct and its embeds.
type field struct {
	name   string
	depth  int
	tagged bool
	v      *types.Var
	doc    string
}

// buildObject produces an object schema from the struct's own fields and the
// fields promoted from embedded structs. owner supplies field docs and may be nil.
func (r *Resolver) buildObject(st *types.Struct, owner *types.Named, at *TypePath) *Node {
	var fields []field

	r.collectFields(st, owner, 0, map[string]bool{}, &fields)

	fields = dominantFields(fields)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}

	var props []Property

	for i, name := range r.escaper.EscapeAll(names) {
		f := fields[i]
		props = append(props, Property{
			Name:        name,
			Node:        r.Resolve(f.v.Type(), at.Field(f.v.Name())),
			Description: f.doc,
		})
	}

	return Object(props...)
}

// collectFields appends the wire fields of st. Embedded structs without a JSON
// name are walked one level deeper; the walk stops at standard library types
// and at types already on the current path.
func (r *Resolver) collectFields(st *types.Struct, owner *types.Named, depth int, visiting map[string]bool, out *[]field) {
	for i := range st.NumFields() {
		v := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		if tag.Get("rpc") == "-" {
			continue
		}

		jsonTag := tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name, _, _ := strings.Cut(jsonTag, ",")

		if v.Embedded() && name == "" {
			if embedded, ok := r.embeddedStruct(v.Type()); ok {
				key := types.TypeString(embedded, nil)
				if visiting[key] {
					continue
				}

				visiting[key] = true
				est, _ := embedded.Underlying().(*types.Struct)
				r.collectFields(est, embedded, depth+1, visiting, out)
				delete(visiting, key)

				continue
			}
		}

		if !v.Exported() {
			continue
		}

		tagged := name != ""
		if !tagged {
			name = v.Name()
		}

		*out = append(*out, field{
			name:   name,
			depth:  depth,
			tagged: tagged,
			v:      v,
			doc:    r.fieldDoc(owner, v.Name()),
		})
	}
}

// embeddedStruct returns the named struct behind an embedded field, unless it
// comes from the standard library.
func (r *Resolver) embeddedStruct(t types.Type) (*types.Named, bool) {
	named, ok := deref(t).(*types.Named)
	if !ok || r.isStandard(named) {
		return nil, false
	}

	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil, false
	}

	return named, true
}

func (r *Resolver) fieldDoc(owner *types.Named, goName string) string {
	if owner == nil {
		return ""
	}

	decl, ok := r.scan.Lookup(analyze.IDOf(owner).String())
	if !ok {
		return ""
	}

	return decl.FieldDocs[goName]
}

// dominantFields keeps, for each wire name, the shallowest field. Ties at the
// same depth go to the only tagged field, or drop the name when there is none,
// the way encoding/json does.
func dominantFields(fields []field) []field {
	byName := make(map[string][]field)

	var order []string

	for _, f := range fields {
		if _, ok := byName[f.name]; !ok {
			order = append(order, f.name)
		}

		byName[f.name] = append(byName[f.name], f)
	}

	var out []field

	for _, name := range order {
		if f, ok := dominant(byName[name]); ok {
			out = append(out, f)
		}
	}

	return out
}

func dominant(candidates []field) (field, bool) {
	minDepth := candidates[0].depth
	for _, f := range candidates[1:] {
		minDepth = min(minDepth, f.depth)
	}

	var shallow []field

	for _, f := range candidates {
		if f.depth == minDepth {
			shallow = append(shallow, f)
		}
	}

	if len(shallow) == 1 {
		return shallow[0], true
	}

	var tagged []field

	for _, f := range shallow {
		if f.tagged {
			tagged = append(tagged, f)
		}
	}

	if len(tagged) == 1 {
		return tagged[0], true
	}

	return field{}, false
}
