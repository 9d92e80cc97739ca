package services

import "github.com/custodia-labs/taskdex/internal/core/domain"

// similarityFunc scores two strings in [0, 1].
type similarityFunc func(a, b string) float64

// similarityFor returns the token similarity for a fuzzy strategy.
func similarityFor(strategy domain.FuzzyStrategy) similarityFunc {
	if strategy == domain.FuzzyTrigram {
		return trigramSimilarity
	}
	return jaccardSimilarity
}

// jaccardSimilarity is |A∩B| / |A∪B| over the token sets of a and b.
// Two strings without tokens score 0.
func jaccardSimilarity(a, b string) float64 {
	return jaccard(tokenSet(Tokenize(a)), tokenSet(Tokenize(b)))
}

// trigramSimilarity is the Jaccard index of the padded character trigrams
// of a and b.
func trigramSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	return jaccard(trigrams(a), trigrams(b))
}

func trigrams(s string) map[string]struct{} {
	runes := []rune("  " + s + " ")
	set := make(map[string]struct{}, len(runes))
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for k := range small {
		if _, ok := large[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
