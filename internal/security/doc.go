// Package security resolves the access requirement of each exposed method
// from //rpc: security directives on the method and on its service.
//
// The precedence table lives in Decide so that the runtime dispatching calls
// can share it with the generator.
package security
