package schema

import (
	"go/types"
	"regexp"
	"strconv"
	"strings"

	"contract-generator/internal/common"
)

var invalidComponentChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ComponentNames assigns a component key to each qualified name. The key is
// the simple type name; when it is taken, the capitalized package name is
// prepended, then a number appended. Names are handed out in sorted
// qualified-name order so the result does not depend on scan order.
func ComponentNames(refs map[string]types.Type) map[string]string {
	out := make(map[string]string, len(refs))
	taken := make(map[string]bool, len(refs))

	for _, qualified := range common.SortedKeys(refs) {
		simple, pkgPath := simpleName(refs[qualified], qualified)

		name := simple
		if taken[name] {
			name = pkgPrefix(pkgPath) + simple
		}

		if taken[name] {
			base := name
			for i := 2; ; i++ {
				candidate := base + strconv.Itoa(i)
				if !taken[candidate] {
					name = candidate
					break
				}
			}
		}

		taken[name] = true
		out[qualified] = name
	}

	return out
}

// simpleName returns the component base name and package path of a type.
// Generic instantiations concatenate their argument names: Page[shop.Item]
// becomes PageItem, Page[[]shop.Item] becomes PageItemList.
func simpleName(t types.Type, qualified string) (string, string) {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		pkgPath, name := splitQualified(qualified)
		return sanitize(name), pkgPath
	}

	pkgPath := ""
	if pkg := named.Obj().Pkg(); pkg != nil {
		pkgPath = pkg.Path()
	}

	return sanitize(argName(named)), pkgPath
}

func argName(t types.Type) string {
	switch tt := types.Unalias(t).(type) {
	case *types.Pointer:
		return argName(tt.Elem())
	case *types.Named:
		name := tt.Obj().Name()
		if args := tt.TypeArgs(); args != nil {
			for i := range args.Len() {
				name += argName(args.At(i))
			}
		}

		return name
	case *types.Slice:
		return argName(tt.Elem()) + "List"
	case *types.Array:
		return argName(tt.Elem()) + "List"
	case *types.Map:
		return argName(tt.Elem()) + "Map"
	case *types.Basic:
		return capitalize(tt.Name())
	default:
		return "Any"
	}
}

// splitQualified splits "path/to/pkg.Name[args]" at the last dot before any bracket.
func splitQualified(qualified string) (string, string) {
	head := qualified
	if i := strings.IndexByte(head, '['); i >= 0 {
		head = head[:i]
	}

	dot := strings.LastIndexByte(head, '.')
	if dot < 0 {
		return "", qualified
	}

	return qualified[:dot], qualified[dot+1:]
}

// pkgPrefix capitalizes the last element of a package path: "net/http" -> "Http".
func pkgPrefix(pkgPath string) string {
	alias := common.PkgAlias(pkgPath)
	alias = strings.NewReplacer("-", "_", ".", "_").Replace(alias)

	return capitalize(alias)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func sanitize(name string) string {
	return invalidComponentChars.ReplaceAllString(name, "_")
}
