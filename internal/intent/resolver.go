// Package intent classifies free-text shopping requests. The resolver is a
// pure function: it never errors, a missing match only lowers confidence.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/enums"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

const (
	matchedConfidence  = 0.9
	priceConfidence    = 0.85
	orderConfidence    = 0.85
	viewCartConfidence = 0.9
	searchConfidence   = 0.8
	vocabConfidence    = 0.6
	generalConfidence  = 0.4
)

// pattern pairs an intent type with its recognizer. Patterns are evaluated in
// order, most specific first; the first match wins.
type pattern struct {
	intentType enums.IntentType
	re         *regexp.Regexp
	confidence float64
	extract    func(matches []string) types.IntentEntities
}

var patterns = []pattern{
	{
		intentType: enums.IntentAddToCart,
		re:         regexp.MustCompile(`(?i)\badd\s+(?:(\d+)\s+)?(.+?)\s+to\s+(?:my\s+|the\s+)?cart\b`),
		confidence: matchedConfidence,
		extract: func(matches []string) types.IntentEntities {
			entities := types.IntentEntities{Product: cleanPhrase(matches[2])}
			if matches[1] != "" {
				if qty, err := strconv.Atoi(matches[1]); err == nil {
					entities.Quantity = qty
				}
			}
			if entities.Quantity == 0 {
				entities.Quantity = 1
			}
			return entities
		},
	},
	{
		intentType: enums.IntentCheckPrice,
		re:         regexp.MustCompile(`(?i)\b(?:how\s+much\s+(?:is|are|does|do)|price\s+(?:of|for)|cost\s+of|check\s+(?:the\s+)?price\s+(?:of|for)?)\s*(.+)`),
		confidence: priceConfidence,
		extract: func(matches []string) types.IntentEntities {
			return types.IntentEntities{Product: cleanPhrase(matches[1])}
		},
	},
	{
		intentType: enums.IntentPlaceOrder,
		re:         regexp.MustCompile(`(?i)\b(?:place\s+(?:my\s+|the\s+)?order|complete\s+(?:my\s+|the\s+)?(?:order|purchase)|checkout|check\s+out|buy\s+now)\b`),
		confidence: orderConfidence,
		extract: func([]string) types.IntentEntities {
			return types.IntentEntities{}
		},
	},
	{
		intentType: enums.IntentViewCart,
		re:         regexp.MustCompile(`(?i)\b(?:(?:view|show|see|open|display)\s+(?:me\s+)?(?:my\s+|the\s+)?cart|what(?:'s|\s+is)\s+in\s+my\s+cart)\b`),
		confidence: viewCartConfidence,
		extract: func([]string) types.IntentEntities {
			return types.IntentEntities{}
		},
	},
	{
		intentType: enums.IntentSearchProduct,
		re:         regexp.MustCompile(`(?i)\b(?:find|search\s+for|search|look\s+for|looking\s+for|show\s+me|i\s+need|i\s+want|need\s+to\s+buy|get\s+me|buy)\s+(.+)`),
		confidence: searchConfidence,
		extract: func(matches []string) types.IntentEntities {
			return types.IntentEntities{Product: cleanPhrase(matches[1])}
		},
	},
}

// shoppingVocabulary marks text as shopping-related even when no pattern hits.
var shoppingVocabulary = []string{
	"buy", "price", "cheap", "deal", "discount", "order", "cart", "shop",
	"store", "product", "brand", "grocery", "groceries", "delivery",
	"purchase", "sale", "stock",
}

// Resolve classifies the raw text into an intent with extracted entities.
func Resolve(text string) types.Intent {
	trimmed := strings.TrimSpace(text)
	resolved := types.Intent{
		Type:          enums.IntentGeneralQuery,
		Confidence:    generalConfidence,
		OriginalQuery: text,
	}
	if trimmed == "" {
		return resolved
	}

	for _, p := range patterns {
		matches := p.re.FindStringSubmatch(trimmed)
		if matches == nil {
			continue
		}
		resolved.Type = p.intentType
		resolved.Confidence = p.confidence
		resolved.Entities = p.extract(matches)
		enrichEntities(&resolved.Entities, trimmed)
		return resolved
	}

	if containsShoppingVocabulary(trimmed) {
		resolved.Type = enums.IntentSearchProduct
		resolved.Confidence = vocabConfidence
		resolved.Entities = types.IntentEntities{Product: cleanPhrase(trimmed)}
		enrichEntities(&resolved.Entities, trimmed)
	}

	return resolved
}

func containsShoppingVocabulary(text string) bool {
	lowered := strings.ToLower(text)
	for _, word := range shoppingVocabulary {
		if containsWord(lowered, word) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	for _, token := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '?' || r == '!'
	}) {
		if token == word {
			return true
		}
	}
	return false
}

// cleanPhrase strips trailing punctuation and filler the capture groups drag in.
func cleanPhrase(phrase string) string {
	cleaned := strings.TrimSpace(phrase)
	cleaned = strings.TrimRight(cleaned, ".?!,;")
	for _, suffix := range []string{" please", " for me", " asap", " now"} {
		lowered := strings.ToLower(cleaned)
		if strings.HasSuffix(lowered, suffix) {
			cleaned = strings.TrimSpace(cleaned[:len(cleaned)-len(suffix)])
		}
	}
	return cleaned
}
