package queryrank

// Term vocabularies for the scoring ladder. Kept in one place so tests can
// assert on weights without touching control flow.

// Weights, highest rule first. A token takes the first rule that matches.
const (
	weightDietary   = 5.0
	weightProduct   = 4.5
	weightBrand     = 4.0
	weightAttribute = 3.5
	weightUrgency   = 3.0
	weightQuality   = 2.5
	weightGeneric   = 1.0
	weightStopWord  = 0.1

	bonusMediumToken = 0.5 // length > 4
	bonusLongToken   = 0.5 // length > 7, on top of the medium bonus
	bonusDigit       = 1.0

	// fuzzyDietaryThreshold admits misspelled dietary terms; matches the
	// candidate-dedup similarity bar.
	fuzzyDietaryThreshold = 0.7
)

var dietaryTerms = []string{
	"diabetic", "diabetes", "gluten-free", "gluten", "vegan", "vegetarian",
	"keto", "paleo", "kosher", "halal", "lactose-free", "dairy-free",
	"sugar-free", "low-sodium", "low-carb", "low-fat", "whole-grain",
	"nut-free", "soy-free",
}

var productNouns = map[string]struct{}{
	"milk": {}, "bread": {}, "eggs": {}, "cheese": {}, "yogurt": {},
	"butter": {}, "cereal": {}, "pasta": {}, "rice": {}, "flour": {},
	"sugar": {}, "coffee": {}, "tea": {}, "water": {}, "juice": {},
	"chicken": {}, "beef": {}, "salmon": {}, "apples": {}, "apple": {},
	"bananas": {}, "lettuce": {}, "tomatoes": {}, "headphones": {},
	"laptop": {}, "charger": {}, "television": {}, "tv": {}, "phone": {},
	"tablet": {}, "speaker": {}, "detergent": {}, "soap": {}, "shampoo": {},
	"toothpaste": {}, "vitamins": {}, "insulin": {}, "snacks": {},
	"chocolate": {}, "cookies": {}, "diapers": {}, "towels": {},
}

var brandNames = map[string]struct{}{
	"sony": {}, "samsung": {}, "lg": {}, "anker": {}, "bose": {},
	"fairlife": {}, "lactaid": {}, "horizon": {}, "quaker": {},
	"kellogg's": {}, "kelloggs": {}, "heinz": {}, "kraft": {}, "tide": {},
	"dove": {}, "colgate": {}, "pampers": {}, "nestle": {},
}

var attributeWords = map[string]struct{}{
	"organic": {}, "wireless": {}, "bluetooth": {}, "rechargeable": {},
	"fresh": {}, "frozen": {}, "whole": {}, "skim": {}, "unsalted": {},
	"large": {}, "small": {}, "medium": {}, "extra": {}, "jumbo": {},
	"red": {}, "blue": {}, "black": {}, "white": {}, "green": {},
	"stainless": {}, "portable": {}, "digital": {}, "smart": {},
}

var urgencyWords = map[string]struct{}{
	"asap": {}, "urgent": {}, "urgently": {}, "today": {}, "tonight": {},
	"now": {}, "immediately": {}, "express": {}, "quickly": {}, "fast": {},
	"soon": {},
}

var qualityPriceWords = map[string]struct{}{
	"cheap": {}, "cheapest": {}, "affordable": {}, "budget": {},
	"premium": {}, "quality": {}, "deal": {}, "deals": {}, "discount": {},
	"discounted": {}, "sale": {}, "best": {}, "top": {}, "value": {},
}

var stopWords = map[string]struct{}{
	"i": {}, "me": {}, "my": {}, "we": {}, "you": {}, "your": {}, "it": {},
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "so": {},
	"for": {}, "to": {}, "of": {}, "in": {}, "on": {}, "at": {}, "by": {},
	"with": {}, "from": {}, "is": {}, "are": {}, "was": {}, "be": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "do": {}, "does": {},
	"can": {}, "could": {}, "would": {}, "please": {},
}
