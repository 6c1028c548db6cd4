package openapi

import (
	"bytes"
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/palantir/pkg/safejson"
	werror "github.com/palantir/witchcraft-go-error"
)

// Validate checks t against the OpenAPI structural rules.
func Validate(ctx context.Context, t *openapi3.T) error {
	if err := t.Validate(ctx); err != nil {
		return werror.WrapWithContextParams(ctx, err, "generated document is not valid OpenAPI")
	}

	return nil
}

// Marshal renders t as indented JSON. Object keys are sorted, so equal
// documents produce identical bytes.
func Marshal(t *openapi3.T) ([]byte, error) {
	var buf bytes.Buffer

	enc := safejson.Encoder(&buf)
	enc.SetIndent("", "  ")

	if err := enc.Encode(t); err != nil {
		return nil, werror.Wrap(err, "failed to encode document")
	}

	return buf.Bytes(), nil
}
