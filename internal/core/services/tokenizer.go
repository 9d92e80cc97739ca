package services

import (
	"regexp"
	"strings"
)

// minTokenLength is the shortest token kept; shorter ones carry no signal.
const minTokenLength = 3

var nonWord = regexp.MustCompile(`\W+`)

// stopWords lists common English words excluded from indexing and queries.
var stopWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "all": {},
	"also": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {},
	"at": {}, "be": {}, "been": {}, "before": {}, "being": {}, "but": {},
	"by": {}, "can": {}, "could": {}, "did": {}, "do": {}, "does": {},
	"for": {}, "from": {}, "had": {}, "has": {}, "have": {}, "he": {},
	"her": {}, "his": {}, "how": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "its": {}, "just": {}, "more": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "our": {}, "she": {}, "should": {}, "so": {},
	"than": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "to": {}, "was": {},
	"were": {}, "what": {}, "when": {}, "which": {}, "who": {}, "will": {},
	"with": {}, "would": {}, "you": {}, "your": {},
}

// Tokenize lowercases text, splits it on runs of non-word characters and
// drops short tokens and stop words. Order is preserved and duplicates kept.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	normalised := nonWord.ReplaceAllString(strings.ToLower(text), " ")
	fields := strings.Fields(normalised)

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLength {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// tokenSet collapses tokens into a set.
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// uniqueTokens returns tokens with duplicates removed, first occurrence kept.
func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
