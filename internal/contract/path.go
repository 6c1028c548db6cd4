package contract

import (
	"fmt"
	"strings"

	"contract-generator/internal/analyze"
	"contract-generator/internal/common"
	"contract-generator/internal/diagnostic"
	"contract-generator/internal/naming"
	"contract-generator/internal/schema"
	"contract-generator/internal/security"
)

// PathBuilder builds one operation per exposed method.
type PathBuilder struct {
	resolver   *schema.Resolver
	validator  *naming.Validator
	classifier security.Classifier
	diags      *diagnostic.Diagnostics
}

// NewPathBuilder creates a PathBuilder.
func NewPathBuilder(resolver *schema.Resolver, validator *naming.Validator, diags *diagnostic.Diagnostics) *PathBuilder {
	return &PathBuilder{
		resolver:  resolver,
		validator: validator,
		diags:     diags,
	}
}

// BuildOperation returns the operation for method m of svc. The boolean is
// false when the method is excluded by its security rule.
func (b *PathBuilder) BuildOperation(svc *analyze.Service, m *analyze.Method) (*Operation, bool, error) {
	subject := svc.QualifiedName() + "." + m.Name

	decision, err := b.classifier.Classify(svc, m)
	if err != nil {
		return nil, false, err
	}

	if decision.Excluded {
		b.diags.AddInfo(diagnostic.CodeExcluded, "method excluded by rpc:denyAll", subject, m.Pos.String())
		return nil, false, nil
	}

	if d, ok := m.Doc.Directives.Get(analyze.DirectiveMethod); ok {
		verb := strings.ToUpper(d.Text)
		if verb != HTTPVerb {
			return nil, false, diagnostic.Errorf(diagnostic.KindUnsupportedVerb, subject,
				"only %s is supported, found rpc:method %q", HTTPVerb, d.Text)
		}
	}

	name := naming.LowerCamel(m.Name)
	if err := b.validator.Validate("method", name); err != nil {
		return nil, false, err
	}

	op := &Operation{
		Path:        "/" + svc.Name + "/" + name,
		ID:          fmt.Sprintf("%s_%s_%s", svc.Name, name, HTTPVerb),
		Service:     svc.Name,
		Method:      name,
		Summary:     m.Doc.Summary(),
		Description: m.Doc.Text,
		Tags:        b.tags(svc, m, subject),
		Security:    decision,
	}

	if len(m.Params) > 0 {
		op.Request, op.Parameters = b.request(m, subject)
	}

	if m.Result != nil {
		op.Response = b.resolver.Resolve(m.Result, schema.NewTypePath(subject).Field("return"))
		op.ResponseDescription = "Return value"

		if doc := m.ReturnDoc(); doc != "" {
			op.ResponseDescription = "Return " + doc
		}
	} else {
		op.ResponseDescription = "No content"
	}

	return op, true, nil
}

func (b *PathBuilder) request(m *analyze.Method, subject string) (*schema.Node, []Parameter) {
	at := schema.NewTypePath(subject)

	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.Name
	}

	props := make([]schema.Property, 0, len(m.Params))
	params := make([]Parameter, 0, len(m.Params))
	required := make([]string, 0, len(m.Params))

	for i, prop := range b.validator.EscapeAll(names) {
		p := m.Params[i]
		node := b.resolver.Resolve(p.Type, at.Field(p.Name))
		doc := m.ParamDoc(p.Name)

		props = append(props, schema.Property{Name: prop, Node: node, Description: doc})
		params = append(params, Parameter{Name: p.Name, Property: prop, Node: node, Description: doc})
		required = append(required, prop)
	}

	request := schema.Object(props...)
	request.Required = required

	return request, params
}

func (b *PathBuilder) tags(svc *analyze.Service, m *analyze.Method, subject string) []string {
	tags := []string{svc.Name}

	for _, d := range m.Doc.Directives.All(analyze.DirectiveTags) {
		tags = append(tags, d.Args...)
	}

	tags = common.Dedupe(tags)

	if len(tags) > 1 {
		b.diags.AddWarning(diagnostic.CodeMultipleTags,
			fmt.Sprintf("operation has %d tags: %s", len(tags), strings.Join(tags, ", ")),
			subject, m.Pos.String())
	}

	return tags
}
