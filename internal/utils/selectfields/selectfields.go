// Package selectfields parses the "fields" query parameter into a selection
// map. A selection is either purely inclusive ("name,category") or purely
// exclusive ("-description,-images"); mixing both kinds in one request is
// rejected.
package selectfields

import (
	"strings"

	"github.com/feastly/feastly_backend/internal/apperrors"
)

const (
	// Include marks a field that should be present in the result.
	Include = 1
	// Exclude marks a field that should be stripped from the result.
	Exclude = 0
)

// ErrMixedSelection is raised when include and exclude flags appear together.
var ErrMixedSelection = apperrors.NewValidationError(
	"inconsistent fields selection: cannot include and exclude fields at the same time")

// Parse converts a comma-separated fields string ("a,b,-c" style) into a
// selection map. An empty string yields an empty map.
func Parse(fields string) (map[string]int, error) {
	result := map[string]int{}
	if fields == "" {
		return result, nil
	}

	mode := 0
	for _, field := range strings.Split(fields, ",") {
		if name, ok := strings.CutPrefix(field, "-"); ok {
			if mode == Include {
				return nil, ErrMixedSelection
			}
			mode = -1
			result[name] = Exclude
		} else {
			if mode == -1 {
				return nil, ErrMixedSelection
			}
			mode = Include
			result[field] = Include
		}
	}

	return result, nil
}

// Validate re-checks that an already-parsed selection map is purely inclusive
// or purely exclusive. Services apply it defensively to maps they receive
// directly.
func Validate(fields map[string]int) error {
	seen := map[int]bool{}
	for _, flag := range fields {
		seen[flag] = true
	}
	if len(seen) > 1 {
		return ErrMixedSelection
	}
	return nil
}

// IsExclusive reports whether the selection map excludes fields. An empty map
// is treated as inclusive of everything.
func IsExclusive(fields map[string]int) bool {
	for _, flag := range fields {
		return flag == Exclude
	}
	return false
}

// Selected reports whether a field survives the selection map.
func Selected(fields map[string]int, name string) bool {
	if len(fields) == 0 {
		return true
	}
	flag, ok := fields[name]
	if IsExclusive(fields) {
		return !ok || flag == Include
	}
	return ok && flag == Include
}
