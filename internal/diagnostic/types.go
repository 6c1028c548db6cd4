package diagnostic

import (
	"context"
	"fmt"
	"strings"

	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"

	"contract-generator/internal/common"
)

// Diagnostic codes emitted by the generator.
const (
	CodeUnresolvedType     = "unresolved-type"
	CodeUnsupportedType    = "unsupported-type"
	CodePackageLoad        = "package-load"
	CodeUnknownDirective   = "unknown-directive"
	CodeMalformedDirective = "malformed-directive"
	CodeMultipleTags       = "multiple-tags"
	CodeExcluded           = "excluded"
)

// Diagnostics holds the degraded findings of a generation run. Failures that
// abort a run are returned as *Error instead.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Subject is the qualified name of the declaration concerned (if any).
	Subject string
	// Position is the source position, "file:line:col" (if known).
	Position string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	default:
		return common.UnknownStr
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, subject, position string, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		Subject:     subject,
		Position:    position,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, subject, position string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Subject:  subject,
		Position: position,
	})
}

// WithCode returns every diagnostic of any severity carrying the given code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, group := range [][]Diagnostic{d.Warnings, d.Infos} {
		for _, diag := range group {
			if diag.Code == code {
				out = append(out, diag)
			}
		}
	}

	return out
}

// Log forwards every collected diagnostic to the logger carried by ctx.
func (d *Diagnostics) Log(ctx context.Context) {
	logger := svc1log.FromContext(ctx)

	for _, diag := range d.Warnings {
		logger.Warn(diag.Message, diag.params())
	}

	for _, diag := range d.Infos {
		logger.Debug(diag.Message, diag.params())
	}
}

func (d Diagnostic) params() svc1log.Param {
	params := map[string]interface{}{
		"code":     d.Code,
		"severity": d.Severity.String(),
	}

	if d.Subject != "" {
		params["subject"] = d.Subject
	}

	if d.Position != "" {
		params["position"] = d.Position
	}

	if len(d.Suggestions) > 0 {
		params["suggestions"] = d.Suggestions
	}

	return svc1log.SafeParams(params)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Position != "" {
		prefix = append(prefix, d.Position)
	}

	if d.Subject != "" {
		prefix = append(prefix, "["+d.Subject+"]")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
