package analyze

import (
	"go/ast"
	"go/doc"
	"go/token"
	"slices"
	"strings"

	"contract-generator/internal/diagnostic"
	"contract-generator/internal/match"
)

// DirectivePrefix starts every generator directive comment.
const DirectivePrefix = "//rpc:"

// Directive names.
const (
	DirectiveService      = "service"
	DirectiveAnonymous    = "anonymous"
	DirectivePermitAll    = "permitAll"
	DirectiveDenyAll      = "denyAll"
	DirectiveRolesAllowed = "rolesAllowed"
	DirectiveMethod       = "method"
	DirectiveTags         = "tags"
	DirectiveParam        = "param"
	DirectiveReturns      = "returns"
)

var knownDirectives = []string{
	DirectiveService,
	DirectiveAnonymous,
	DirectivePermitAll,
	DirectiveDenyAll,
	DirectiveRolesAllowed,
	DirectiveMethod,
	DirectiveTags,
	DirectiveParam,
	DirectiveReturns,
}

// Directive is one //rpc:name args... comment line.
type Directive struct {
	Name string
	Args []string
	// Text is everything after the name, trimmed.
	Text string
	Pos  token.Position
}

// Directives is the ordered list of directives found in one comment group.
type Directives []Directive

// Has reports whether a directive with the given name is present.
func (ds Directives) Has(name string) bool {
	_, ok := ds.Get(name)
	return ok
}

// Get returns the first directive with the given name.
func (ds Directives) Get(name string) (Directive, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d, true
		}
	}

	return Directive{}, false
}

// All returns every directive with the given name.
func (ds Directives) All(name string) []Directive {
	var out []Directive

	for _, d := range ds {
		if d.Name == name {
			out = append(out, d)
		}
	}

	return out
}

// Doc is a doc comment split into human text and directives.
type Doc struct {
	Text       string
	Directives Directives
}

// Summary returns the first sentence of the doc text.
func (d Doc) Summary() string {
	if d.Text == "" {
		return ""
	}

	return new(doc.Package).Synopsis(d.Text)
}

// parseDoc splits a comment group. Unknown directives are reported on diags
// and dropped; go/ast already leaves directive lines out of Text().
func parseDoc(fset *token.FileSet, group *ast.CommentGroup, subject string, diags *diagnostic.Diagnostics) Doc {
	if group == nil {
		return Doc{}
	}

	out := Doc{Text: strings.TrimSpace(group.Text())}

	for _, c := range group.List {
		if !strings.HasPrefix(c.Text, DirectivePrefix) {
			continue
		}

		pos := fset.Position(c.Slash)
		rest := strings.TrimPrefix(c.Text, DirectivePrefix)
		name, text, _ := strings.Cut(rest, " ")
		text = strings.TrimSpace(text)

		if !slices.Contains(knownDirectives, name) {
			diags.AddWarning(diagnostic.CodeUnknownDirective,
				"unknown directive rpc:"+name, subject, pos.String(),
				match.Suggest(name, knownDirectives, 3)...)

			continue
		}

		d := Directive{
			Name: name,
			Args: strings.Fields(text),
			Text: text,
			Pos:  pos,
		}

		if d.Name == DirectiveParam && len(d.Args) == 0 {
			diags.AddWarning(diagnostic.CodeMalformedDirective,
				"rpc:param needs a parameter name", subject, pos.String())

			continue
		}

		out.Directives = append(out.Directives, d)
	}

	return out
}

// hasServiceDirective reports whether a comment group marks a service,
// without validating anything else in it.
func hasServiceDirective(group *ast.CommentGroup) bool {
	if group == nil {
		return false
	}

	for _, c := range group.List {
		rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
		if !ok {
			continue
		}

		if name, _, _ := strings.Cut(rest, " "); name == DirectiveService {
			return true
		}
	}

	return false
}
