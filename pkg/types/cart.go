package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/enums"
)

// CartItem is one line of the shopper's cart.
type CartItem struct {
	ID       string    `json:"id"`
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// LineTotal returns price × quantity for the line.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// ProductSubstitution proposes swapping one cart line for a cheaper or
// greener alternative.
type ProductSubstitution struct {
	OriginalProduct  Product                `json:"original_product"`
	SuggestedProduct Product                `json:"suggested_product"`
	SubstitutionType enums.SubstitutionType `json:"substitution_type"`
	Reason           string                 `json:"reason"`
	Savings          decimal.Decimal        `json:"savings"`
	Confidence       float64                `json:"confidence"`
}

// RollbackOpportunity is a time-boxed discount applicable to a cart line.
type RollbackOpportunity struct {
	Product       Product                `json:"product"`
	RollbackPrice decimal.Decimal        `json:"rollback_price"`
	OriginalPrice decimal.Decimal        `json:"original_price"`
	Savings       decimal.Decimal        `json:"savings"`
	Priority      enums.RollbackPriority `json:"priority"`
	TimeRemaining string                 `json:"time_remaining"`
}

// GreatValueRecommendation is a store-brand alternative to a named-brand line.
type GreatValueRecommendation struct {
	OriginalProduct   Product         `json:"original_product"`
	GreatValueProduct Product         `json:"great_value_product"`
	Savings           decimal.Decimal `json:"savings"`
	QualityComparison string          `json:"quality_comparison"`
}

// BundleDeal is a flat discount unlocked when enough cart lines share the
// bundle's categories.
type BundleDeal struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Categories []string        `json:"categories"`
	MinItems   int             `json:"min_items"`
	Discount   float64         `json:"discount"`
	Savings    decimal.Decimal `json:"savings"`
}

// CartPreferences are caller-supplied flags steering substitution choices.
type CartPreferences struct {
	PreferGreatValue    bool `json:"prefer_great_value"`
	PreferNameBrands    bool `json:"prefer_name_brands"`
	SustainabilityFocus bool `json:"sustainability_focus"`
	BudgetConscious     bool `json:"budget_conscious"`
	NutritionFocus      bool `json:"nutrition_focus"`
}

// CartOptimization aggregates every savings opportunity found for a cart.
// TotalOptimizedPrice is always TotalOriginalPrice minus the recommended
// substitution savings, clamped at zero.
type CartOptimization struct {
	OriginalCart              []CartItem                 `json:"original_cart"`
	RecommendedSubstitutions  []ProductSubstitution      `json:"recommended_substitutions"`
	RollbackOpportunities     []RollbackOpportunity      `json:"rollback_opportunities"`
	GreatValueRecommendations []GreatValueRecommendation `json:"great_value_recommendations"`
	BundleDeals               []BundleDeal               `json:"bundle_deals"`
	TotalOriginalPrice        decimal.Decimal            `json:"total_original_price"`
	TotalOptimizedPrice       decimal.Decimal            `json:"total_optimized_price"`
	TotalSavings              decimal.Decimal            `json:"total_savings"`
	SavingsPercentage         float64                    `json:"savings_percentage"`
	SustainabilityScore       int                        `json:"sustainability_score"`
	NutritionScore            int                        `json:"nutrition_score,omitempty"`
}
