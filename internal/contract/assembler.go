package contract

import (
	"slices"
	"strings"

	"contract-generator/internal/analyze"
	"contract-generator/internal/diagnostic"
	"contract-generator/internal/naming"
	"contract-generator/internal/schema"
)

// Config carries the document settings the assembler needs.
type Config struct {
	Title             string
	Version           string
	ServerURL         string
	ServerDescription string
	EndpointPrefix    string
	// ReservedWords extend the built-in reserved word table.
	ReservedWords []string
	// DateTypes are extra qualified type names mapped to calendar dates.
	DateTypes []string
}

// Assembler composes a Document from a Scan. Each call to Assemble owns its
// registry and lookup tables.
type Assembler struct {
	cfg Config
}

// NewAssembler creates an Assembler.
func NewAssembler(cfg Config) *Assembler {
	return &Assembler{cfg: cfg}
}

// Assemble builds the contract of every service in scan. Degraded findings are
// added to diags; fatal ones are returned as *diagnostic.Error.
func (a *Assembler) Assemble(scan *analyze.Scan, diags *diagnostic.Diagnostics) (*Document, error) {
	validator := naming.NewValidator(a.cfg.ReservedWords...)
	resolver := schema.NewResolver(scan, schema.NewRegistry(), validator, diags, a.cfg.DateTypes...)
	builder := NewPathBuilder(resolver, validator, diags)

	doc := &Document{
		Info: Info{
			Title:   a.cfg.Title,
			Version: a.cfg.Version,
		},
		Server: Server{
			URL:         joinURL(a.cfg.ServerURL, a.cfg.EndpointPrefix),
			Description: a.cfg.ServerDescription,
		},
	}

	services := make(map[string]string)
	paths := make(map[string]string)
	ids := make(map[string]string)

	for _, svc := range scan.Services {
		qualified := svc.QualifiedName()

		if err := validator.Validate("service", svc.Name); err != nil {
			return nil, err
		}

		if other, ok := services[svc.Name]; ok {
			return nil, diagnostic.Errorf(diagnostic.KindDuplicateService, svc.Name,
				"declared by %s and %s", other, qualified)
		}

		services[svc.Name] = qualified

		for _, m := range svc.Methods {
			op, ok, err := builder.BuildOperation(svc, m)
			if err != nil {
				return nil, err
			}

			if !ok {
				continue
			}

			owner := qualified + "." + m.Name

			if other, ok := paths[op.Path]; ok {
				return nil, diagnostic.Errorf(diagnostic.KindDuplicatePath, op.Path,
					"declared by %s and %s", other, owner)
			}

			if other, ok := ids[op.ID]; ok {
				return nil, diagnostic.Errorf(diagnostic.KindDuplicateOperation, op.ID,
					"declared by %s and %s", other, owner)
			}

			paths[op.Path] = owner
			ids[op.ID] = owner
			doc.Paths = append(doc.Paths, op)
		}

		doc.Tags = append(doc.Tags, Tag{Name: svc.Name, Description: svc.Decl.Doc.Summary()})
	}

	built := resolver.ResolveAll()
	doc.ComponentNames = schema.ComponentNames(resolver.Registry().Types())

	for qualified, node := range built {
		doc.Components = append(doc.Components, Component{
			Name:      doc.ComponentNames[qualified],
			Qualified: qualified,
			Schema:    node,
		})
	}

	slices.SortFunc(doc.Paths, func(x, y *Operation) int {
		return strings.Compare(x.Path, y.Path)
	})
	slices.SortFunc(doc.Components, func(x, y Component) int {
		return strings.Compare(x.Name, y.Name)
	})
	slices.SortFunc(doc.Tags, func(x, y Tag) int {
		return strings.Compare(x.Name, y.Name)
	})

	return doc, nil
}

// joinURL appends prefix to base with exactly one slash between them.
func joinURL(base, prefix string) string {
	base = strings.TrimRight(base, "/")

	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return base
	}

	return base + "/" + prefix
}
