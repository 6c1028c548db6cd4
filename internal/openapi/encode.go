package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"contract-generator/internal/contract"
	"contract-generator/internal/schema"
	"contract-generator/internal/security"
)

// Version is the OpenAPI version of generated documents.
const Version = "3.0.3"

// Extension keys.
const (
	ExtParameters   = "x-parameters"
	ExtRolesAllowed = "x-roles-allowed"
)

const componentPrefix = "#/components/schemas/"

// parameter is one entry of the x-parameters extension.
type parameter struct {
	Name        string `json:"name"`
	Property    string `json:"property"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type encoder struct {
	doc *contract.Document
	// components holds one schema per component name; every $ref to a name
	// points at the same value.
	components map[string]*openapi3.Schema
}

// Encode converts doc into an OpenAPI document.
func Encode(doc *contract.Document) *openapi3.T {
	e := &encoder{
		doc:        doc,
		components: make(map[string]*openapi3.Schema, len(doc.Components)),
	}

	for _, c := range doc.Components {
		e.components[c.Name] = &openapi3.Schema{}
	}

	components := openapi3.NewComponents()
	components.Schemas = make(openapi3.Schemas, len(doc.Components))
	components.SecuritySchemes = openapi3.SecuritySchemes{
		contract.SecuritySchemeName: &openapi3.SecuritySchemeRef{
			Value: openapi3.NewJWTSecurityScheme().WithDescription("OAuth2 access token sent as a bearer token"),
		},
	}

	for _, c := range doc.Components {
		shared := e.components[c.Name]
		*shared = *e.schema(c.Schema)
		components.Schemas[c.Name] = &openapi3.SchemaRef{Value: shared}
	}

	out := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   doc.Info.Title,
			Version: doc.Info.Version,
		},
		Servers: openapi3.Servers{
			&openapi3.Server{URL: doc.Server.URL, Description: doc.Server.Description},
		},
		Components: &components,
		Paths:      make(openapi3.Paths, len(doc.Paths)),
	}

	for _, op := range doc.Paths {
		out.Paths[op.Path] = &openapi3.PathItem{Post: e.operation(op)}
	}

	for _, tag := range doc.Tags {
		out.Tags = append(out.Tags, &openapi3.Tag{Name: tag.Name, Description: tag.Description})
	}

	return out
}

func (e *encoder) operation(op *contract.Operation) *openapi3.Operation {
	response := openapi3.NewResponse().WithDescription(op.ResponseDescription)
	if op.Response != nil {
		response = response.WithJSONSchemaRef(e.ref(op.Response))
	}

	out := &openapi3.Operation{
		OperationID: op.ID,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Responses: openapi3.Responses{
			"200": &openapi3.ResponseRef{Value: response},
		},
		Extensions: make(map[string]interface{}),
	}

	if op.Request != nil {
		out.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(e.ref(op.Request)),
		}
	}

	if len(op.Parameters) > 0 {
		params := make([]parameter, 0, len(op.Parameters))
		for _, p := range op.Parameters {
			params = append(params, parameter{
				Name:        p.Name,
				Property:    p.Property,
				Type:        schema.TypeExpression(p.Node, e.doc.ComponentName),
				Description: p.Description,
			})
		}

		out.Extensions[ExtParameters] = params
	}

	if op.Security.Access == security.Authenticated {
		out.Security = openapi3.NewSecurityRequirements().
			With(openapi3.NewSecurityRequirement().Authenticate(contract.SecuritySchemeName))

		if len(op.Security.Roles) > 0 {
			out.Extensions[ExtRolesAllowed] = op.Security.Roles
		}
	}

	return out
}

// ref returns a $ref for references and an inline schema for everything else.
func (e *encoder) ref(n *schema.Node) *openapi3.SchemaRef {
	if n.Kind == schema.KindReference {
		name := e.doc.ComponentName(n.Ref)
		if shared, ok := e.components[name]; ok {
			return openapi3.NewSchemaRef(componentPrefix+name, shared)
		}

		return openapi3.NewSchemaRef("", openapi3.NewObjectSchema())
	}

	return openapi3.NewSchemaRef("", e.schema(n))
}

func (e *encoder) schema(n *schema.Node) *openapi3.Schema {
	switch n.Kind {
	case schema.KindPrimitive:
		s := &openapi3.Schema{Type: string(n.Primitive)}
		if len(n.Enum) > 0 {
			s.Enum = n.Enum
		}

		return s
	case schema.KindArray:
		return &openapi3.Schema{Type: openapi3.TypeArray, Items: e.ref(n.Elem)}
	case schema.KindMap:
		return &openapi3.Schema{
			Type:                 openapi3.TypeObject,
			AdditionalProperties: openapi3.AdditionalProperties{Schema: e.ref(n.Elem)},
		}
	case schema.KindObject:
		s := openapi3.NewObjectSchema()
		s.Required = n.Required

		for _, p := range n.Properties {
			ref := e.ref(p.Node)
			if ref.Ref == "" && p.Description != "" {
				ref.Value.Description = p.Description
			}

			s.Properties[p.Name] = ref
		}

		return s
	case schema.KindDate:
		return openapi3.NewStringSchema().WithFormat("date")
	case schema.KindDateTime:
		return openapi3.NewDateTimeSchema()
	case schema.KindReference:
		return e.ref(n).Value
	default:
		return openapi3.NewObjectSchema()
	}
}
