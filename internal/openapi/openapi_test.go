package openapi

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-generator/internal/analyze"
	"contract-generator/internal/contract"
	"contract-generator/internal/diagnostic"
	"contract-generator/internal/schema"
	"contract-generator/internal/security"
)

var testConfig = contract.Config{
	Title:             "RPC API",
	Version:           "1.0.0",
	ServerURL:         "http://localhost:8080",
	ServerDescription: "Default server",
	EndpointPrefix:    "/rpc",
}

func encode(t *testing.T, roots ...string) *openapi3.T {
	t.Helper()

	scan, err := analyze.Load(context.Background(), roots...)
	require.NoError(t, err)

	var diags diagnostic.Diagnostics
	doc, err := contract.NewAssembler(testConfig).Assemble(scan, &diags)
	require.NoError(t, err)

	return Encode(doc)
}

func TestEncode_Greeter(t *testing.T) {
	out := encode(t, "../../examples/greeter")
	require.NoError(t, Validate(context.Background(), out))

	data, err := Marshal(out)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "3.0.3", raw["openapi"])
	assert.Equal(t, map[string]any{"title": "RPC API", "version": "1.0.0"}, raw["info"])
	assert.Equal(t, []any{map[string]any{"url": "http://localhost:8080/rpc", "description": "Default server"}}, raw["servers"])

	paths := raw["paths"].(map[string]any)
	require.Len(t, paths, 1)

	post := paths["/Greeter/hello"].(map[string]any)["post"].(map[string]any)
	assert.Equal(t, "Greeter_hello_POST", post["operationId"])
	assert.Equal(t, []any{"Greeter"}, post["tags"])
	assert.Equal(t, []any{map[string]any{"oauth2": []any{}}}, post["security"])
	assert.Equal(t, []any{map[string]any{
		"name":        "name",
		"property":    "name",
		"type":        "string",
		"description": "the name to greet",
	}}, post[ExtParameters])

	body := post["requestBody"].(map[string]any)
	assert.Equal(t, true, body["required"])

	ok := post["responses"].(map[string]any)["200"].(map[string]any)
	assert.Equal(t, "Return the greeting", ok["description"])

	scheme := raw["components"].(map[string]any)["securitySchemes"].(map[string]any)["oauth2"].(map[string]any)
	assert.Equal(t, "http", scheme["type"])
	assert.Equal(t, "bearer", scheme["scheme"])
}

func TestEncode_Shop(t *testing.T) {
	out := encode(t, "../../examples/shop")
	require.NoError(t, Validate(context.Background(), out))

	assert.Len(t, out.Paths, 7)
	assert.Len(t, out.Components.Schemas, 6)
	assert.Len(t, out.Tags, 3)

	item := out.Components.Schemas["Item"].Value
	require.NotNil(t, item)
	assert.Equal(t, openapi3.TypeObject, item.Type)

	related := item.Properties["related"].Value
	assert.Equal(t, openapi3.TypeArray, related.Type)
	assert.Equal(t, "#/components/schemas/Item", related.Items.Ref)
	assert.Same(t, item, related.Items.Value, "references share the component schema")

	priority := item.Properties["priority"].Value
	assert.Equal(t, "number", priority.Type)
	assert.Equal(t, []any{int64(1), int64(5), int64(10)}, priority.Enum)

	assert.Equal(t, "Price in the store currency.", item.Properties["price"].Value.Description)

	attributes := item.Properties["attributes"].Value
	assert.Equal(t, openapi3.TypeObject, attributes.Type)
	assert.Equal(t, "number", attributes.AdditionalProperties.Schema.Value.Type)

	catalog := out.Components.Schemas["Catalog"].Value
	assert.Equal(t, "date-time", catalog.Properties["updated"].Value.Format)
	assert.Equal(t, "#/components/schemas/Day", catalog.Properties["opened"].Ref)
	assert.Equal(t, openapi3.TypeObject, catalog.Properties["payload"].Value.Type)
	assert.Equal(t, "string", catalog.Properties["raw"].Value.Type)
}

func TestEncode_EscapedNamesKeepEveryProperty(t *testing.T) {
	out := encode(t, "../../examples/clash")
	require.NoError(t, Validate(context.Background(), out))

	apply := out.Paths["/Tagger/apply"].Post
	require.NotNil(t, apply)

	body := apply.RequestBody.Value.Content["application/json"].Schema.Value
	assert.Len(t, body.Properties, 2)
	assert.Equal(t, "string", body.Properties["__class"].Value.Type)
	assert.Equal(t, "number", body.Properties["_class"].Value.Type)
	assert.Equal(t, []string{"__class", "_class"}, body.Required)

	label := out.Components.Schemas["Label"].Value
	assert.Len(t, label.Properties, 2)
}

func TestEncode_Security(t *testing.T) {
	out := encode(t, "../../examples/shop")

	find := out.Paths["/CatalogService/find"].Post
	require.NotNil(t, find)
	assert.Nil(t, find.Security, "anonymous operations carry no requirement")
	assert.Equal(t, "#/components/schemas/PageItem", find.Responses["200"].Value.Content["application/json"].Schema.Ref)

	place := out.Paths["/Orders/place"].Post
	require.NotNil(t, place)
	require.NotNil(t, place.Security)
	assert.Equal(t, []string{"customer", "admin"}, place.Extensions[ExtRolesAllowed])

	lookup := out.Paths["/Orders/lookup"].Post
	require.NotNil(t, lookup)
	assert.NotContains(t, lookup.Extensions, ExtRolesAllowed)
}

func TestEncode_VoidAndParameterless(t *testing.T) {
	doc := &contract.Document{
		Info:   contract.Info{Title: "t", Version: "1"},
		Server: contract.Server{URL: "http://localhost/rpc"},
		Paths: []*contract.Operation{{
			Path:                "/Jobs/run",
			ID:                  "Jobs_run_POST",
			Tags:                []string{"Jobs"},
			ResponseDescription: "No content",
			Security:            security.Decision{Access: security.Authenticated},
		}},
	}

	out := Encode(doc)
	require.NoError(t, Validate(context.Background(), out))

	run := out.Paths["/Jobs/run"].Post
	assert.Nil(t, run.RequestBody)
	assert.NotContains(t, run.Extensions, ExtParameters)

	ok := run.Responses["200"].Value
	assert.Equal(t, "No content", *ok.Description)
	assert.Empty(t, ok.Content)
}

func TestEncode_UnknownReference(t *testing.T) {
	doc := &contract.Document{
		Info:   contract.Info{Title: "t", Version: "1"},
		Server: contract.Server{URL: "http://localhost/rpc"},
		Paths: []*contract.Operation{{
			Path:                "/Jobs/get",
			ID:                  "Jobs_get_POST",
			Response:            schema.Reference("example.com/jobs.Job"),
			ResponseDescription: "Return value",
		}},
	}

	out := Encode(doc)
	require.NoError(t, Validate(context.Background(), out))

	ref := out.Paths["/Jobs/get"].Post.Responses["200"].Value.Content["application/json"].Schema
	assert.Empty(t, ref.Ref)
	assert.Equal(t, openapi3.TypeObject, ref.Value.Type)
}

func TestMarshal_Deterministic(t *testing.T) {
	first, err := Marshal(encode(t, "../../examples/shop"))
	require.NoError(t, err)

	second, err := Marshal(encode(t, "../../examples/shop"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
