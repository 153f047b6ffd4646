package intent

import (
	"regexp"
	"strings"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// categoryKeywords maps well-known product words to a canonical category.
var categoryKeywords = map[string]string{
	"milk": "dairy", "cheese": "dairy", "yogurt": "dairy", "butter": "dairy",
	"eggs": "dairy", "bread": "bakery", "bagel": "bakery", "cereal": "pantry",
	"pasta": "pantry", "rice": "pantry", "flour": "pantry", "sugar": "pantry",
	"apple": "produce", "banana": "produce", "lettuce": "produce",
	"tomato": "produce", "chicken": "meat", "beef": "meat", "salmon": "seafood",
	"headphones": "electronics", "laptop": "electronics", "charger": "electronics",
	"television": "electronics", "tv": "electronics", "phone": "electronics",
	"detergent": "household", "soap": "household", "shampoo": "personal care",
	"toothpaste": "personal care", "vitamins": "health", "insulin": "health",
}

// knownBrands is the brand vocabulary recognized during entity extraction.
var knownBrands = []string{
	"great value", "organic valley", "horizon", "fairlife", "lactaid",
	"kellogg's", "kellogg", "general mills", "quaker", "heinz", "kraft",
	"sony", "samsung", "lg", "anker", "apple", "dove", "tide", "colgate",
}

var priceRangePattern = regexp.MustCompile(`(?i)\b(?:under|below|less\s+than|up\s+to)\s+\$?(\d+(?:\.\d{1,2})?)\b`)

// enrichEntities derives category, brand, and price range from the raw text
// when the matched pattern did not capture them.
func enrichEntities(entities *types.IntentEntities, text string) {
	lowered := strings.ToLower(text)

	if entities.Category == "" {
		// Scan tokens left to right so the first recognized product word wins
		// and resolution stays deterministic.
		for _, token := range strings.Fields(lowered) {
			token = strings.Trim(token, ".,?!;")
			if category, ok := categoryKeywords[token]; ok {
				entities.Category = category
				break
			}
		}
	}

	if entities.Brand == "" {
		for _, brand := range knownBrands {
			if strings.Contains(lowered, brand) {
				entities.Brand = brand
				break
			}
		}
	}

	if entities.PriceRange == "" {
		if matches := priceRangePattern.FindStringSubmatch(text); matches != nil {
			entities.PriceRange = "under $" + matches[1]
		}
	}
}
