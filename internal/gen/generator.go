package gen

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"

	"contract-generator/internal/analyze"
	"contract-generator/internal/config"
	"contract-generator/internal/contract"
	"contract-generator/internal/diagnostic"
	"contract-generator/internal/openapi"
)

// Result describes one generator run.
type Result struct {
	// Document is the encoded contract.
	Document *openapi3.T
	// Content is the serialized document.
	Content []byte
	// Output is the path written, empty for dry runs.
	Output string
	// Diagnostics collects the degraded findings of the run.
	Diagnostics diagnostic.Diagnostics
}

// Generator produces contract documents.
type Generator struct {
	opts config.Options
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts config.Options) *Generator {
	return &Generator{opts: opts}
}

// Build scans the roots and returns the encoded document without writing it.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	if len(g.opts.Roots) == 0 {
		return nil, werror.ErrorWithContextParams(ctx, "no source roots configured")
	}

	scan, err := analyze.Load(ctx, g.opts.Roots...)
	if err != nil {
		return nil, err
	}

	res := &Result{Diagnostics: scan.Diagnostics}

	doc, err := contract.NewAssembler(g.opts.Contract()).Assemble(scan, &res.Diagnostics)
	res.Diagnostics.Log(ctx)

	if err != nil {
		return nil, err
	}

	res.Document = openapi.Encode(doc)
	if err := openapi.Validate(ctx, res.Document); err != nil {
		return nil, err
	}

	res.Content, err = openapi.Marshal(res.Document)
	if err != nil {
		return nil, err
	}

	svc1log.FromContext(ctx).Debug("Assembled contract",
		svc1log.SafeParam("services", len(scan.Services)),
		svc1log.SafeParam("operations", len(doc.Paths)),
		svc1log.SafeParam("components", len(doc.Components)))

	return res, nil
}

// Generate builds the document and writes it to the configured output.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	res, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}

	if err := WriteFile(g.opts.Output, res.Content); err != nil {
		return nil, err
	}

	res.Output = g.opts.Output

	svc1log.FromContext(ctx).Info("Wrote contract",
		svc1log.SafeParam("output", res.Output),
		svc1log.SafeParam("warnings", len(res.Diagnostics.Warnings)))

	return res, nil
}
