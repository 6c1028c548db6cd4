package naming

import (
	"strings"

	"contract-generator/internal/match"
)

// LowerCamel lower-cases the leading word of an identifier:
// "Hello" -> "hello", "GetURL" -> "getURL", "URLParser" -> "urlParser".
// The rest of the identifier is kept as written.
func LowerCamel(s string) string {
	tokens := match.Tokenize(s)
	if len(tokens) == 0 {
		return s
	}

	first := tokens[0]
	if !strings.HasPrefix(s, first) {
		return s
	}

	return strings.ToLower(first) + s[len(first):]
}
