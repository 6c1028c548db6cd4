// Package diagnostic provides structured warnings and fatal generation
// failures for the contract generator.
//
// Key capabilities:
//   - Degraded findings (unresolved types, package load errors, unknown directives)
//   - Nearest-match suggestions for misspelled directives
//   - Typed fatal errors classified by Kind
//   - Forwarding of collected findings to the context logger
package diagnostic
