// Package classification provides a rule-based filename classifier that needs no network.
package classification

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/Veraticus/homework-heap/internal/common"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultKeywords are the filename words that mark school work.
var DefaultKeywords = []string{
	"essay", "homework", "lecture", "exam", "assignment", "project", "notes",
	"study", "quiz", "test", "report", "paper", "syllabus", "midterm", "final",
	"lab", "worksheet", "thesis", "hw",
}

// fuzzyMinLength is the shortest keyword allowed one edit of slack.
// Below it, one edit turns "notes" into "votes" and "study" into "sturdy".
const fuzzyMinLength = 8

// KeywordClassifier matches filename tokens against school keywords.
type KeywordClassifier struct {
	keywords []string
	patterns []*regexp.Regexp
}

// NewKeywordClassifier creates a classifier. Nil keywords selects DefaultKeywords;
// patterns are extra case-insensitive regular expressions matched against the whole name.
func NewKeywordClassifier(keywords, patterns []string) (*KeywordClassifier, error) {
	if keywords == nil {
		keywords = DefaultKeywords
	}

	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		normalized = append(normalized, kw)
	}

	compiled, err := common.CompilePatterns(patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to compile classification patterns: %w", err)
	}

	if len(normalized) == 0 && len(compiled) == 0 {
		return nil, fmt.Errorf("%w: keyword classifier needs at least one keyword or pattern", common.ErrInvalidConfig)
	}

	return &KeywordClassifier{
		keywords: normalized,
		patterns: compiled,
	}, nil
}

// ClassifyFilenames returns the matching filenames in input order.
func (k *KeywordClassifier) ClassifyFilenames(ctx context.Context, filenames []string) ([]string, error) {
	matched := make([]string, 0, len(filenames))
	for _, name := range filenames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if k.Match(name) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// Match reports whether a single filename looks like school work.
func (k *KeywordClassifier) Match(filename string) bool {
	if common.MatchAny(k.patterns, filename) {
		return true
	}

	stem := strings.TrimSuffix(filename, extensionOf(filename))
	for _, token := range Tokenize(stem) {
		for _, kw := range k.keywords {
			if tokenMatches(token, kw) {
				return true
			}
		}
	}
	return false
}

func tokenMatches(token, keyword string) bool {
	if token == keyword {
		return true
	}
	if len(token) > len(keyword) && strings.TrimSuffix(token, "s") == keyword {
		return true
	}
	if len(keyword) < fuzzyMinLength || token[0] != keyword[0] {
		return false
	}
	return fuzzy.LevenshteinDistance(token, keyword) <= 1
}

// Tokenize splits a name into lowercase letter runs, breaking on digits, punctuation,
// and camelCase boundaries: "MidtermReview_v2" yields [midterm review v].
func Tokenize(name string) []string {
	var tokens []string
	var current strings.Builder
	var prev rune

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for _, r := range name {
		if !unicode.IsLetter(r) {
			flush()
			prev = r
			continue
		}
		if unicode.IsUpper(r) && unicode.IsLower(prev) {
			flush()
		}
		current.WriteRune(r)
		prev = r
	}
	flush()

	return tokens
}

func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return ""
	}
	return name[idx:]
}
