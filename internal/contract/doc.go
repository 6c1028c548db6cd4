// Package contract assembles the API contract of scanned services.
//
// Key types:
//   - Document: info, server, operations, tags and component schemas, all sorted
//   - Operation: one callable method with its request and response shapes
//   - PathBuilder: turns one service method into an Operation
//   - Assembler: runs the PathBuilder over every service and drains the schema registry
package contract
