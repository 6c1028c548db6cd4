// Package analyze loads source roots and indexes the declarations the
// contract generator works from.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to find service types, their exported methods and the data types they use,
// together with doc comments and //rpc: directives.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeDecl: a named type declared at package scope, with its docs
//   - Service: a type carrying the //rpc:service directive, with its methods
//   - Scan: the merged, sorted index produced by Load
package analyze
