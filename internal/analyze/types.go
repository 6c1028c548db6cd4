package analyze

import (
	"go/constant"
	"go/token"
	"go/types"
	"slices"
	"strings"

	"contract-generator/internal/common"
	"contract-generator/internal/diagnostic"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "contract-generator/examples/shop"
	Name    string // e.g., "Order"
}

// String returns the qualified name of the type.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// IDOf returns the TypeID of the declaration behind a named type.
// Instantiations of a generic type share the ID of their origin.
func IDOf(named *types.Named) TypeID {
	obj := named.Origin().Obj()
	if obj.Pkg() == nil {
		return TypeID{Name: obj.Name()}
	}

	return TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
}

// TypeDecl is a named type declared at package scope in a scanned package.
type TypeDecl struct {
	ID  TypeID
	Obj *types.TypeName
	Doc Doc
	Pos token.Position
	// FieldDocs maps Go field names to their doc or trailing line comment.
	FieldDocs map[string]string
}

// Named returns the declared type, or nil for aliases of unnamed types.
func (d *TypeDecl) Named() *types.Named {
	named, _ := types.Unalias(d.Obj.Type()).(*types.Named)
	return named
}

// Service is a type carrying the //rpc:service directive.
type Service struct {
	Decl *TypeDecl
	// Name is the exposed service name: the directive argument or the type name.
	Name    string
	Methods []*Method
}

// QualifiedName returns the qualified name of the service type.
func (s *Service) QualifiedName() string {
	return s.Decl.ID.String()
}

// Method is an exported method of a service type.
type Method struct {
	Name   string
	Params []Param
	// Result is the single non-error result, nil for void methods.
	Result types.Type
	Doc    Doc
	Pos    token.Position
}

// ParamDoc returns the //rpc:param text for the named parameter.
func (m *Method) ParamDoc(name string) string {
	for _, d := range m.Doc.Directives.All(DirectiveParam) {
		if len(d.Args) > 0 && d.Args[0] == name {
			return strings.TrimSpace(strings.TrimPrefix(d.Text, d.Args[0]))
		}
	}

	return ""
}

// ReturnDoc returns the //rpc:returns text.
func (m *Method) ReturnDoc() string {
	if d, ok := m.Doc.Directives.Get(DirectiveReturns); ok {
		return d.Text
	}

	return ""
}

// Param is a method parameter. Unnamed parameters are called argN.
type Param struct {
	Name string
	Type types.Type
}

// Scan is the merged index of every scanned root.
type Scan struct {
	// Types maps qualified names to declarations.
	Types map[string]*TypeDecl
	// Services are sorted by qualified name.
	Services []*Service
	// Modules lists the module paths the scanned packages belong to.
	Modules []string
	// Diagnostics collects degraded findings.
	Diagnostics diagnostic.Diagnostics

	enums map[TypeID][]constant.Value
}

func newScan() *Scan {
	return &Scan{
		Types: make(map[string]*TypeDecl),
		enums: make(map[TypeID][]constant.Value),
	}
}

// Lookup returns the declaration for a qualified name.
func (s *Scan) Lookup(qualified string) (*TypeDecl, bool) {
	d, ok := s.Types[qualified]
	return d, ok
}

// IsStandard reports whether pkgPath belongs to the standard library.
// Module paths without a dot are told apart by the loaded module list.
func (s *Scan) IsStandard(pkgPath string) bool {
	if !common.LooksStandard(pkgPath) {
		return false
	}

	for _, m := range s.Modules {
		if common.WithinModule(pkgPath, m) {
			return false
		}
	}

	return true
}

// EnumValues returns the sorted values of the package-level constants
// declared with the given named type. Strings sort lexically, numbers numerically.
func (s *Scan) EnumValues(id TypeID) []any {
	vals := s.enums[id]
	if len(vals) == 0 {
		return nil
	}

	sorted := slices.Clone(vals)
	slices.SortFunc(sorted, func(a, b constant.Value) int {
		if a.Kind() == constant.String && b.Kind() == constant.String {
			return strings.Compare(constant.StringVal(a), constant.StringVal(b))
		}

		if a.Kind() == constant.Bool || b.Kind() == constant.Bool {
			return strings.Compare(a.ExactString(), b.ExactString())
		}

		switch {
		case constant.Compare(a, token.LSS, b):
			return -1
		case constant.Compare(a, token.GTR, b):
			return 1
		default:
			return 0
		}
	})

	out := make([]any, 0, len(sorted))

	for _, v := range sorted {
		if e, ok := enumValue(v); ok && !slices.Contains(out, e) {
			out = append(out, e)
		}
	}

	return out
}

func enumValue(v constant.Value) (any, bool) {
	switch v.Kind() {
	case constant.String:
		return constant.StringVal(v), true
	case constant.Int:
		if i, exact := constant.Int64Val(v); exact {
			return i, true
		}

		f, _ := constant.Float64Val(v)

		return f, true
	case constant.Float:
		f, _ := constant.Float64Val(v)
		return f, true
	case constant.Bool:
		return constant.BoolVal(v), true
	default:
		return nil, false
	}
}
