// Package naming keeps exposed identifiers usable by generated JavaScript
// and TypeScript clients.
package naming
