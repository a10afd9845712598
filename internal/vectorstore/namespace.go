package vectorstore

import "strings"

// NormalizeNamespace strips non-ASCII characters from a namespace key so it
// is safe to use as a partition identifier. Chapter tags come from file names
// and evaluation data that may carry accented or non-Latin characters.
func NormalizeNamespace(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r <= 127 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
