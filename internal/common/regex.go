package common

import (
	"fmt"
	"regexp"
)

// CompilePatterns compiles user-supplied filename patterns case-insensitively.
// Returns an error naming the first pattern that fails to compile.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidConfig, p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// MatchAny reports whether text matches at least one of the patterns.
func MatchAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
