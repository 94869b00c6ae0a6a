// Package trends extracts the most frequent title terms from a scored
// batch.
package trends

import (
	"regexp"
	"sort"
	"strings"

	"github.com/avelines/newspulse/internal/models"
)

const DefaultTopK = 10

var wordPattern = regexp.MustCompile(`[a-z][a-z'-]+`)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {},
	"from": {}, "after": {}, "over": {}, "who": {}, "what": {}, "why": {},
	"how": {}, "his": {}, "her": {}, "its": {}, "their": {}, "are": {},
	"was": {}, "were": {}, "has": {}, "have": {}, "but": {}, "not": {},
	"you": {}, "your": {}, "says": {}, "say": {}, "said": {}, "will": {},
	"could": {}, "would": {}, "into": {}, "out": {}, "about": {}, "more": {},
	"new": {}, "amid": {}, "as": {}, "in": {}, "on": {}, "of": {}, "to": {},
}

// TermCount is one trending term with its occurrence count.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// TopTerms counts word frequency across titles and returns the k most
// frequent terms, ties broken alphabetically.
func TopTerms(articles []models.ScoredArticle, k int) []TermCount {
	if k <= 0 {
		k = DefaultTopK
	}

	counts := make(map[string]int)
	for _, a := range articles {
		for _, word := range wordPattern.FindAllString(strings.ToLower(a.Title), -1) {
			if len(word) < 3 {
				continue
			}
			if _, skip := stopwords[word]; skip {
				continue
			}
			counts[word]++
		}
	}

	terms := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, TermCount{Term: term, Count: count})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})

	if len(terms) > k {
		terms = terms[:k]
	}
	return terms
}
