package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-generator/internal/diagnostic"
)

func parseComment(t *testing.T, src string) (*token.FileSet, *ast.CommentGroup) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "x.go", "package x\n\n"+src+"\ntype X struct{}\n", parser.ParseComments)
	require.NoError(t, err)

	return fset, file.Decls[0].(*ast.GenDecl).Doc
}

func TestParseDoc(t *testing.T) {
	fset, group := parseComment(t, `// X does things.
// More detail here.
//
//rpc:service Things
//rpc:rolesAllowed admin auditor
//rpc:param id the identifier
//rpc:returns the thing`)

	var diags diagnostic.Diagnostics
	doc := parseDoc(fset, group, "x.X", &diags)

	assert.Equal(t, "X does things.\nMore detail here.", doc.Text)
	assert.Equal(t, "X does things.", doc.Summary())
	assert.Empty(t, diags.Warnings)

	require.Len(t, doc.Directives, 4)

	svc, ok := doc.Directives.Get(DirectiveService)
	require.True(t, ok)
	assert.Equal(t, []string{"Things"}, svc.Args)
	assert.Equal(t, 6, svc.Pos.Line)

	roles := doc.Directives.All(DirectiveRolesAllowed)
	require.Len(t, roles, 1)
	assert.Equal(t, []string{"admin", "auditor"}, roles[0].Args)

	param, _ := doc.Directives.Get(DirectiveParam)
	assert.Equal(t, "id the identifier", param.Text)

	ret, _ := doc.Directives.Get(DirectiveReturns)
	assert.Equal(t, "the thing", ret.Text)
}

func TestParseDoc_Malformed(t *testing.T) {
	fset, group := parseComment(t, `// X.
//
//rpc:param
//rpc:denyal`)

	var diags diagnostic.Diagnostics
	doc := parseDoc(fset, group, "x.X", &diags)

	assert.Empty(t, doc.Directives)
	require.Len(t, diags.Warnings, 2)
	assert.Equal(t, diagnostic.CodeMalformedDirective, diags.Warnings[0].Code)
	assert.Equal(t, diagnostic.CodeUnknownDirective, diags.Warnings[1].Code)
	assert.Equal(t, []string{DirectiveDenyAll}, diags.Warnings[1].Suggestions)
}

func TestParseDoc_Nil(t *testing.T) {
	var diags diagnostic.Diagnostics
	doc := parseDoc(token.NewFileSet(), nil, "x.X", &diags)

	assert.Empty(t, doc.Text)
	assert.Empty(t, doc.Summary())
	assert.False(t, doc.Directives.Has(DirectiveService))
}

func TestMethod_ParamDoc(t *testing.T) {
	m := &Method{Doc: Doc{Directives: Directives{
		{Name: DirectiveParam, Args: []string{"class", "the", "class"}, Text: "class the class"},
		{Name: DirectiveParam, Args: []string{"query"}, Text: "query"},
	}}}

	assert.Equal(t, "the class", m.ParamDoc("class"))
	assert.Empty(t, m.ParamDoc("query"))
	assert.Empty(t, m.ParamDoc("missing"))
	assert.Empty(t, m.ReturnDoc())
}
