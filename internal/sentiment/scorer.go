package sentiment

import (
	"math"
	"regexp"
	"strings"
)

// Scoring constants. NegativeWeight makes a negative lexicon hit count for
// more than a positive one; the phrase weights are additive per matched
// phrase; the contrast factor dampens the positive count when a contrast
// term follows positive framing.
const (
	NegativeWeight        = 1.2
	PhrasePenaltyPerMatch = 1.2
	PhraseBonusPerMatch   = 1.2
	ContrastPenaltyFactor = 0.2

	signalScale = 10.0
	lengthNorm  = 200.0
)

var (
	positivePatterns       = compileTerms(positiveWords)
	negativePatterns       = compileTerms(negativeWords)
	contrastPatterns       = compileTerms(contrastWords)
	negativePhrasePatterns = compileTerms(negativePhrases)
	positivePhrasePatterns = compileTerms(positivePhrases)
)

// compileTerms builds whole-word matchers so that "warfare" never counts as
// a hit for "war". Terms are matched case-insensitively against the
// case-folded input.
func compileTerms(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		p := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(term)) + `\b`)
		patterns = append(patterns, p)
	}
	return patterns
}

// countMatches counts how many terms occur in text. Each term contributes
// at most 1 regardless of how often it repeats.
func countMatches(text string, patterns []*regexp.Regexp) int {
	count := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			count++
		}
	}
	return count
}

func anyMatch(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Score rates text on a signed [-1,1] scale and derives a [0,1] confidence.
// Pure and deterministic; empty or signal-free text scores 0 with
// confidence 0.
func Score(text string) (float64, float64) {
	lower := strings.ToLower(text)

	positiveCount := countMatches(lower, positivePatterns)
	negativeCount := countMatches(lower, negativePatterns)

	// A contrast term undercuts any positive framing that precedes its
	// first occurrence. Each contrast term dampens at most once; several
	// contrast terms compound.
	for _, p := range contrastPatterns {
		loc := p.FindStringIndex(lower)
		if loc == nil {
			continue
		}
		if anyMatch(lower[:loc[0]], positivePatterns) {
			positiveCount = int(math.Ceil(float64(positiveCount) * ContrastPenaltyFactor))
		}
	}

	phrasePenalty := float64(countMatches(lower, negativePhrasePatterns)) * PhrasePenaltyPerMatch
	phraseBonus := float64(countMatches(lower, positivePhrasePatterns)) * PhraseBonusPerMatch

	weightedPositive := float64(positiveCount) + phraseBonus
	weightedNegative := float64(negativeCount)*NegativeWeight + phrasePenalty

	total := weightedPositive + weightedNegative
	if total == 0 {
		return 0, 0
	}

	score := (weightedPositive - weightedNegative) / total

	confidence := (total / signalScale) *
		math.Abs(score) *
		math.Min(1, float64(len(text))/lengthNorm)

	return score, clamp01(confidence)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
