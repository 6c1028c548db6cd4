// Package match provides identifier tokenization and edit-distance helpers.
//
// Key functions:
//   - Tokenize: splits CamelCase and separated identifiers into words
//   - Levenshtein: computes edit distance between strings
//   - Suggest: picks the nearest known names for a misspelled one
package match
