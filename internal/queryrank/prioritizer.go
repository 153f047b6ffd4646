// Package queryrank tokenizes a raw shopping query and weights each term so
// the most meaningful words lead the refined search string sent downstream.
package queryrank

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/similarity"
)

// refinedTermCount is how many top-scored tokens form the refined query.
const refinedTermCount = 5

// ScoredTerm is one token with its final priority score.
type ScoredTerm struct {
	Token    string  `json:"token"`
	Score    float64 `json:"score"`
	position int
}

// Result is the prioritizer output: every term scored and ordered, plus the
// refined query built from the top terms.
type Result struct {
	Terms   []ScoredTerm `json:"terms"`
	Refined string       `json:"refined"`
}

// Prioritize scores each whitespace token of the query and returns the terms
// sorted by descending score, ties broken by original left-to-right order.
func Prioritize(query string) Result {
	fields := strings.Fields(query)
	terms := make([]ScoredTerm, 0, len(fields))
	for i, field := range fields {
		token := strings.TrimFunc(field, func(r rune) bool {
			return unicode.IsPunct(r) && r != '-' && r != '$'
		})
		if token == "" {
			continue
		}
		terms = append(terms, ScoredTerm{
			Token:    token,
			Score:    scoreToken(token),
			position: i,
		})
	}

	sort.SliceStable(terms, func(a, b int) bool {
		if terms[a].Score != terms[b].Score {
			return terms[a].Score > terms[b].Score
		}
		return terms[a].position < terms[b].position
	})

	top := refinedTermCount
	if len(terms) < top {
		top = len(terms)
	}
	refined := make([]string, 0, top)
	for _, term := range terms[:top] {
		refined = append(refined, term.Token)
	}

	return Result{Terms: terms, Refined: strings.Join(refined, " ")}
}

// scoreToken walks the rule ladder top to bottom; the first matching rule
// sets the base weight, then the length and digit bonuses apply.
func scoreToken(token string) float64 {
	lowered := strings.ToLower(token)

	var base float64
	switch {
	case isDietaryTerm(lowered):
		base = weightDietary
	case contains(productNouns, lowered):
		base = weightProduct
	case contains(brandNames, lowered):
		base = weightBrand
	case contains(attributeWords, lowered):
		base = weightAttribute
	case contains(urgencyWords, lowered):
		base = weightUrgency
	case contains(qualityPriceWords, lowered):
		base = weightQuality
	case contains(stopWords, lowered):
		base = weightStopWord
	default:
		base = weightGeneric
	}

	score := base
	if len(lowered) > 4 {
		score += bonusMediumToken
	}
	if len(lowered) > 7 {
		score += bonusLongToken
	}
	if containsDigit(lowered) {
		score += bonusDigit
	}
	return score
}

// isDietaryTerm accepts exact dietary vocabulary plus fuzzy matches, so
// "glutenfree" and "diabetik" still rank at full dietary weight.
func isDietaryTerm(token string) bool {
	for _, term := range dietaryTerms {
		if token == term {
			return true
		}
	}
	for _, term := range dietaryTerms {
		if similarity.Ratio(token, term) > fuzzyDietaryThreshold {
			return true
		}
	}
	return false
}

func contains(set map[string]struct{}, token string) bool {
	_, ok := set[token]
	return ok
}

func containsDigit(token string) bool {
	for _, r := range token {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
