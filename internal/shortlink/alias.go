package shortlink

import "regexp"

// Generator produces random aliases. nanoid in production, deterministic
// funcs in tests.
type Generator func() string

// Custom aliases share the URL-safe alphabet generated aliases use.
var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// ValidAlias reports whether a custom alias is well-formed.
func ValidAlias(alias Alias) bool {
	return aliasPattern.MatchString(string(alias))
}
