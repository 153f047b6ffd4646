package types

import "github.com/shopsmart-labs/shopsmart-backend/pkg/enums"

// IntentEntities holds values captured from the raw request text.
type IntentEntities struct {
	Product    string `json:"product,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
	Category   string `json:"category,omitempty"`
	Brand      string `json:"brand,omitempty"`
	PriceRange string `json:"price_range,omitempty"`
}

// Intent is the classified shopping action for a free-text request. It is
// immutable once produced by the resolver.
type Intent struct {
	Type          enums.IntentType `json:"type"`
	Entities      IntentEntities   `json:"entities"`
	Confidence    float64          `json:"confidence"`
	OriginalQuery string           `json:"original_query"`
}
