// Package address resolves the MPD endpoint from CLI, environment, and
// config sources, and expands tilde/$VAR placeholders in path-like strings.
package address

import (
	"os"
	"strings"
)

// TildeExpand replaces a leading "~" with $HOME. A bare "~" becomes HOME
// with its trailing separator stripped; "~/rest" becomes "HOME/rest".
// Anything else ("~other", no HOME set) is returned unchanged.
func TildeExpand(input string) string {
	home, ok := os.LookupEnv("HOME")
	if !ok || home == "" {
		return input
	}
	home = strings.TrimSuffix(home, string(os.PathSeparator))

	rest, found := strings.CutPrefix(input, "~")
	if !found {
		return input
	}
	if rest == "" {
		return home
	}
	if strings.HasPrefix(rest, string(os.PathSeparator)) {
		return home + rest
	}
	return input
}

// EnvVarExpand splits input on the OS path separator and replaces any
// component that is exactly "$NAME" with the value of the NAME environment
// variable. Components that aren't a whole "$NAME" are left untouched, and
// an unset variable leaves its "$NAME" component unchanged.
func EnvVarExpand(input string) string {
	parts := strings.Split(input, string(os.PathSeparator))
	for i, part := range parts {
		name, found := strings.CutPrefix(part, "$")
		if !found {
			continue
		}
		if val, ok := os.LookupEnv(name); ok {
			parts[i] = val
		}
	}
	return strings.Join(parts, string(os.PathSeparator))
}

// ExpandPath applies env-var expansion followed by tilde expansion, the
// order config-sourced socket paths are expanded in.
func ExpandPath(input string) string {
	return TildeExpand(EnvVarExpand(input))
}
