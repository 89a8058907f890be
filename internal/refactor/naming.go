package refactor

import (
	"strconv"
	"unicode"

	"github.com/ludo-technologies/godscn/domain"
)

// uniqueName returns base, or base2, base3, ... until taken reports false.
// It gives up with a naming conflict after attempts tries.
func uniqueName(base string, attempts int, taken func(string) bool) (string, error) {
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		name := base
		if i > 1 {
			name = base + strconv.Itoa(i)
		}
		if !taken(name) {
			return name, nil
		}
	}
	return "", domain.NewNamingConflictError(base, attempts)
}

// lowerCamel lowers the leading run of upper-case letters, keeping the last
// one when it starts the next word: TestProduct -> testProduct, HTTPClient -> httpClient.
func lowerCamel(name string) string {
	runes := []rune(name)
	for i := 0; i < len(runes) && unicode.IsUpper(runes[i]); i++ {
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
