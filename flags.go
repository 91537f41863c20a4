package pyext

import "strings"

// Flag markers recognised in pkg-config output.
const (
	IncludeMarker    = "-I"
	LibraryDirMarker = "-L"
	LibraryMarker    = "-l"
)

// SplitFlags splits pkg-config output into flag tokens.
//
// Any run of whitespace separates tokens, so trailing newlines and doubled
// spaces never produce empty tokens. Empty output yields an empty slice.
func SplitFlags(output string) []string {
	fields := strings.Fields(output)
	if fields == nil {
		return []string{}
	}
	return fields
}

// FilterPrefix returns the tokens starting with prefix, with the prefix removed.
//
// Order and duplicates are preserved exactly as they appear in tokens.
// The result is never nil.
func FilterPrefix(tokens []string, prefix string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.HasPrefix(tok, prefix) {
			out = append(out, tok[len(prefix):])
		}
	}
	return out
}

// IncludeDirs extracts include directories from compile flags.
func IncludeDirs(cflags []string) []string {
	return FilterPrefix(cflags, IncludeMarker)
}

// LibraryDirs extracts library search paths from link flags.
func LibraryDirs(libs []string) []string {
	return FilterPrefix(libs, LibraryDirMarker)
}

// Libraries extracts library names from link flags.
func Libraries(libs []string) []string {
	return FilterPrefix(libs, LibraryMarker)
}

// Unrecognized returns the tokens that start with none of the given prefixes.
func Unrecognized(tokens []string, prefixes ...string) []string {
	out := make([]string, 0)
	for _, tok := range tokens {
		matched := false
		for _, p := range prefixes {
			if strings.HasPrefix(tok, p) {
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, tok)
		}
	}
	return out
}
