package contract

import (
	"contract-generator/internal/schema"
	"contract-generator/internal/security"
)

// HTTPVerb is the only verb operations are exposed under.
const HTTPVerb = "POST"

// SecuritySchemeName names the single bearer scheme of the document.
const SecuritySchemeName = "oauth2"

// Document is the contract of every scanned service.
type Document struct {
	Info   Info
	Server Server
	// Paths are sorted by path.
	Paths []*Operation
	// Components are sorted by name.
	Components []Component
	// Tags are sorted by name.
	Tags []Tag
	// ComponentNames maps qualified type names to component names.
	ComponentNames map[string]string
}

// Info identifies the API.
type Info struct {
	Title   string
	Version string
}

// Server is where the dispatch runtime listens.
type Server struct {
	URL         string
	Description string
}

// Tag groups the operations of one service.
type Tag struct {
	Name        string
	Description string
}

// Component is a named, shared data schema.
type Component struct {
	Name      string
	Qualified string
	Schema    *schema.Node
}

// Operation is one exposed service method.
type Operation struct {
	Path        string
	ID          string
	Service     string
	Method      string
	Summary     string
	Description string
	Tags        []string
	// Request is an object with one required property per parameter, nil without parameters.
	// Its properties are sorted by name. Request.Required and Parameters keep
	// declaration order, the positional order the dispatch runtime binds.
	Request    *schema.Node
	Parameters []Parameter
	// Response is nil for void methods.
	Response            *schema.Node
	ResponseDescription string
	Security            security.Decision
}

// Parameter describes one method parameter for the x-parameters side channel.
type Parameter struct {
	// Name is the parameter name in source.
	Name string
	// Property is the escaped request property carrying it.
	Property    string
	Node        *schema.Node
	Description string
}

// ComponentName returns the component name of a qualified type name.
func (d *Document) ComponentName(qualified string) string {
	return d.ComponentNames[qualified]
}
