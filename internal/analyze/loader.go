package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"slices"
	"strings"

	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"contract-generator/internal/common"
	"contract-generator/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedModule

// Load scans every package below each root. Roots load in parallel and are
// merged in the order given; a package reachable from two roots is indexed once.
func Load(ctx context.Context, roots ...string) (*Scan, error) {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, diagnostic.Errorf(diagnostic.KindInvalidRoot, root, "cannot stat source root: %v", err)
		}

		if !info.IsDir() {
			return nil, diagnostic.Errorf(diagnostic.KindInvalidRoot, root, "source root is not a directory")
		}
	}

	results := make([][]*packages.Package, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			pkgs, err := loadRoot(gctx, root)
			if err != nil {
				return err
			}

			results[i] = pkgs

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix := newIndexer()
	for _, pkgs := range results {
		for _, pkg := range pkgs {
			ix.addPackage(pkg)
		}
	}

	return ix.finish()
}

func loadRoot(ctx context.Context, root string) ([]*packages.Package, error) {
	dir, err := filepath.Abs(root)
	if err != nil {
		return nil, werror.Wrap(err, "failed to resolve source root", werror.SafeParam("root", root))
	}

	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     dir,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, werror.Wrap(err, "failed to load packages", werror.SafeParam("root", root))
	}

	slices.SortFunc(pkgs, func(a, b *packages.Package) int {
		return strings.Compare(a.PkgPath, b.PkgPath)
	})

	svc1log.FromContext(ctx).Debug("Loaded source root",
		svc1log.SafeParam("root", root),
		svc1log.SafeParam("packages", len(pkgs)))

	return pkgs, nil
}

// candidate is a type whose doc carries //rpc:service.
type candidate struct {
	decl *TypeDecl
	fset *token.FileSet
}

// indexer merges loaded packages into a Scan. It is used by a single goroutine.
type indexer struct {
	scan       *Scan
	seen       map[string]bool
	modules    map[string]bool
	candidates []candidate
	// methodDocs maps the position of a method name to its doc comment.
	methodDocs map[string]*ast.CommentGroup
	fatal      error
}

func newIndexer() *indexer {
	return &indexer{
		scan:       newScan(),
		seen:       make(map[string]bool),
		modules:    make(map[string]bool),
		methodDocs: make(map[string]*ast.CommentGroup),
	}
}

func (ix *indexer) addPackage(pkg *packages.Package) {
	if ix.seen[pkg.PkgPath] {
		return
	}

	ix.seen[pkg.PkgPath] = true

	if pkg.Module != nil {
		ix.modules[pkg.Module.Path] = true
	}

	for _, e := range pkg.Errors {
		ix.scan.Diagnostics.AddWarning(diagnostic.CodePackageLoad, e.Msg, pkg.PkgPath, e.Pos)
	}

	if pkg.Types == nil || pkg.TypesInfo == nil {
		return
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				ix.addGenDecl(pkg, d)
			case *ast.FuncDecl:
				ix.addFuncDecl(pkg, d)
			}
		}
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok {
			continue
		}

		if named, ok := types.Unalias(c.Type()).(*types.Named); ok {
			id := IDOf(named)
			ix.scan.enums[id] = append(ix.scan.enums[id], c.Val())
		}
	}
}

func (ix *indexer) addGenDecl(pkg *packages.Package, gd *ast.GenDecl) {
	for _, spec := range gd.Specs {
		group := specDoc(gd, spec)

		switch s := spec.(type) {
		case *ast.TypeSpec:
			ix.addTypeSpec(pkg, s, group)
		case *ast.ValueSpec:
			if hasServiceDirective(group) {
				name := pkg.PkgPath + "." + s.Names[0].Name
				ix.fail(diagnostic.Errorf(diagnostic.KindAnonymousService, name,
					"rpc:service must annotate a named type, found %s declaration", gd.Tok))
			}
		}
	}
}

func specDoc(gd *ast.GenDecl, spec ast.Spec) *ast.CommentGroup {
	var group *ast.CommentGroup

	switch s := spec.(type) {
	case *ast.TypeSpec:
		group = s.Doc
	case *ast.ValueSpec:
		group = s.Doc
	}

	if group == nil && len(gd.Specs) == 1 {
		group = gd.Doc
	}

	return group
}

func (ix *indexer) addTypeSpec(pkg *packages.Package, ts *ast.TypeSpec, group *ast.CommentGroup) {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return
	}

	id := TypeID{PkgPath: pkg.PkgPath, Name: ts.Name.Name}
	decl := &TypeDecl{
		ID:        id,
		Obj:       obj,
		Doc:       parseDoc(pkg.Fset, group, id.String(), &ix.scan.Diagnostics),
		Pos:       pkg.Fset.Position(ts.Pos()),
		FieldDocs: make(map[string]string),
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		for _, f := range t.Fields.List {
			text := fieldDoc(f)
			if len(f.Names) == 0 {
				decl.FieldDocs[embeddedName(f.Type)] = text
			}

			for _, n := range f.Names {
				decl.FieldDocs[n.Name] = text
			}
		}
	case *ast.InterfaceType:
		for _, f := range t.Methods.List {
			for _, n := range f.Names {
				ix.methodDocs[pkg.Fset.Position(n.Pos()).String()] = f.Doc
			}
		}
	}

	ix.scan.Types[id.String()] = decl

	if decl.Doc.Directives.Has(DirectiveService) {
		ix.candidates = append(ix.candidates, candidate{decl: decl, fset: pkg.Fset})
	}
}

func (ix *indexer) addFuncDecl(pkg *packages.Package, fd *ast.FuncDecl) {
	if hasServiceDirective(fd.Doc) {
		ix.fail(diagnostic.Errorf(diagnostic.KindAnonymousService, pkg.PkgPath+"."+fd.Name.Name,
			"rpc:service must annotate a named type, found func declaration"))
	}

	if fd.Recv != nil {
		ix.methodDocs[pkg.Fset.Position(fd.Name.Pos()).String()] = fd.Doc
	}
}

func (ix *indexer) fail(err error) {
	if ix.fatal == nil {
		ix.fatal = err
	}
}

func (ix *indexer) finish() (*Scan, error) {
	if ix.fatal != nil {
		return nil, ix.fatal
	}

	ix.scan.Modules = common.SortedKeys(ix.modules)

	for _, c := range ix.candidates {
		svc, err := ix.buildService(c)
		if err != nil {
			return nil, err
		}

		ix.scan.Services = append(ix.scan.Services, svc)
	}

	slices.SortFunc(ix.scan.Services, func(a, b *Service) int {
		return strings.Compare(a.QualifiedName(), b.QualifiedName())
	})

	return ix.scan, nil
}

func (ix *indexer) buildService(c candidate) (*Service, error) {
	qualified := c.decl.ID.String()

	named := c.decl.Named()
	if named == nil {
		return nil, diagnostic.Errorf(diagnostic.KindAnonymousService, qualified,
			"rpc:service must annotate a named type, found alias of %s", c.decl.Obj.Type())
	}

	if named.TypeParams().Len() > 0 {
		return nil, diagnostic.Errorf(diagnostic.KindGenericService, qualified,
			"service types cannot have type parameters")
	}

	svc := &Service{Decl: c.decl, Name: c.decl.Obj.Name()}
	if d, _ := c.decl.Doc.Directives.Get(DirectiveService); len(d.Args) > 0 {
		svc.Name = d.Args[0]
	}

	var funcs []*types.Func

	if iface, ok := named.Underlying().(*types.Interface); ok {
		for i := range iface.NumMethods() {
			funcs = append(funcs, iface.Method(i))
		}
	} else {
		for i := range named.NumMethods() {
			funcs = append(funcs, named.Method(i))
		}
	}

	slices.SortFunc(funcs, func(a, b *types.Func) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, fn := range funcs {
		if !fn.Exported() {
			continue
		}

		m, err := ix.buildMethod(c.fset, qualified, fn)
		if err != nil {
			return nil, err
		}

		svc.Methods = append(svc.Methods, m)
	}

	return svc, nil
}

func (ix *indexer) buildMethod(fset *token.FileSet, owner string, fn *types.Func) (*Method, error) {
	subject := owner + "." + fn.Name()
	pos := fset.Position(fn.Pos())
	sig := fn.Type().(*types.Signature)

	m := &Method{
		Name: fn.Name(),
		Doc:  parseDoc(fset, ix.methodDocs[pos.String()], subject, &ix.scan.Diagnostics),
		Pos:  pos,
	}

	for i := range sig.Params().Len() {
		v := sig.Params().At(i)
		if isContext(v.Type()) {
			continue
		}

		name := v.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}

		m.Params = append(m.Params, Param{Name: name, Type: v.Type()})
	}

	results := make([]types.Type, 0, sig.Results().Len())
	for i := range sig.Results().Len() {
		results = append(results, sig.Results().At(i).Type())
	}

	if n := len(results); n > 0 && isError(results[n-1]) {
		results = results[:n-1]
	}

	switch len(results) {
	case 0:
	case 1:
		m.Result = results[0]
	default:
		return nil, diagnostic.Errorf(diagnostic.KindUnsupportedSignature, subject,
			"methods may return at most one value besides error, found %d", len(results))
	}

	return m, nil
}

func fieldDoc(f *ast.Field) string {
	if text := strings.TrimSpace(f.Doc.Text()); text != "" {
		return text
	}

	return strings.TrimSpace(f.Comment.Text())
}

// embeddedName returns the field name Go gives an embedded field of type expr.
func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		return ""
	}
}

func isContext(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()

	return obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context"
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}
