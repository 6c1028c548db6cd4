// Package broken imports a package that cannot be found.
package broken

import "example.invalid/missing"

// Mirror reflects values.
//
//rpc:service
type Mirror struct{}

// Reflect returns its argument.
func (Mirror) Reflect(v missing.Thing) missing.Thing {
	return v
}
