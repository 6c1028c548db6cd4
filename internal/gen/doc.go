// Package gen runs the whole pipeline: it scans the configured roots,
// assembles the contract, encodes it as OpenAPI and writes the result.
//
// Output is written to a temporary file next to the target and renamed into
// place, so a failed run leaves any previous document untouched.
package gen
