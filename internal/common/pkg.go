package common

import (
	"path"
	"strings"
)

// UnknownStr is the String() fallback for enum values outside their range.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// WithinModule reports whether pkgPath is modPath itself or one of its subpackages.
func WithinModule(pkgPath, modPath string) bool {
	if modPath == "" {
		return false
	}

	return pkgPath == modPath || strings.HasPrefix(pkgPath, modPath+"/")
}

// LooksStandard reports whether pkgPath has the shape of a standard library
// import path: the first path element carries no dot.
func LooksStandard(pkgPath string) bool {
	if pkgPath == "" {
		return false
	}

	first, _, _ := strings.Cut(pkgPath, "/")

	return !strings.Contains(first, ".")
}
