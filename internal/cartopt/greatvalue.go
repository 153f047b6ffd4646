package cartopt

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// storeBrands are brands already treated as store-brand; their lines are
// never offered a great-value swap.
var storeBrands = []string{"great value", "equate", "onn.", "shopsmart"}

type greatValueEntry struct {
	category    string
	productName string
	price       float64
	quality     string
}

// greatValueTable maps categories to their store-brand equivalent.
var greatValueTable = []greatValueEntry{
	{category: "dairy", productName: "Great Value 2% Reduced Fat Milk, 1 Gallon", price: 2.92, quality: "same"},
	{category: "bakery", productName: "Great Value Wheat Sandwich Bread", price: 1.92, quality: "same"},
	{category: "beverages", productName: "Great Value Purified Water, 24 Pack", price: 3.98, quality: "same"},
	{category: "pantry", productName: "Great Value Creamy Peanut Butter, 40 oz", price: 4.48, quality: "better"},
	{category: "snacks", productName: "Great Value Tortilla Chips, 13 oz", price: 2.12, quality: "good"},
	{category: "personal care", productName: "Equate Daily Moisturizing Lotion", price: 3.88, quality: "same"},
	{category: "health", productName: "Equate Sugar Free Nutritional Shake, 6 Pack", price: 8.98, quality: "good"},
}

// findGreatValue returns a store-brand swap for the line, or false when the
// line is already store-brand or the swap would not save money.
func findGreatValue(item types.CartItem) (types.GreatValueRecommendation, bool) {
	if isStoreBrand(item.Product.Brand) {
		return types.GreatValueRecommendation{}, false
	}

	category := strings.ToLower(item.Product.Category)
	for _, entry := range greatValueTable {
		if entry.category != category {
			continue
		}
		price := decimal.NewFromFloat(entry.price)
		if !price.LessThan(item.Product.Price) {
			continue
		}

		savings := item.Product.Price.Sub(price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		return types.GreatValueRecommendation{
			OriginalProduct:   item.Product,
			GreatValueProduct: greatValueProduct(entry, item.Product),
			Savings:           savings,
			QualityComparison: entry.quality,
		}, true
	}
	return types.GreatValueRecommendation{}, false
}

func isStoreBrand(brand string) bool {
	lowered := strings.ToLower(strings.TrimSpace(brand))
	for _, candidate := range storeBrands {
		if lowered == candidate {
			return true
		}
	}
	return false
}

func greatValueProduct(entry greatValueEntry, original types.Product) types.Product {
	brand := "Great Value"
	if strings.HasPrefix(entry.productName, "Equate") {
		brand = "Equate"
	}
	return types.Product{
		ID:           "great-value-" + strings.ReplaceAll(entry.category, " ", "-"),
		Name:         entry.productName,
		Description:  "Store-brand alternative to " + original.Name,
		Price:        decimal.NewFromFloat(entry.price),
		Brand:        brand,
		Category:     original.Category,
		InStock:      true,
		Quantity:     100,
		Warehouse:    original.Warehouse,
		Supplier:     original.Supplier,
		IsGreatValue: true,
	}
}
