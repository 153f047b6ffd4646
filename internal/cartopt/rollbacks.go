package cartopt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/enums"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// Rollback priority thresholds in dollars of line savings.
var (
	highPriorityThreshold   = decimal.NewFromInt(2)
	mediumPriorityThreshold = decimal.NewFromInt(1)
)

func rollbackPriority(savings decimal.Decimal) enums.RollbackPriority {
	switch {
	case savings.GreaterThan(highPriorityThreshold):
		return enums.RollbackPriorityHigh
	case savings.GreaterThan(mediumPriorityThreshold):
		return enums.RollbackPriorityMedium
	default:
		return enums.RollbackPriorityLow
	}
}

// rollbackEntry is a time-boxed discounted product matched against cart lines
// by category or by name keyword.
type rollbackEntry struct {
	category    string
	keywords    []string
	productName string
	brand       string
	price       float64
	daysLeft    int
}

// rollbackTable is the active rollback campaign set.
var rollbackTable = []rollbackEntry{
	{category: "dairy", keywords: []string{"milk"}, productName: "Great Value Whole Milk, 1 Gallon", brand: "Great Value", price: 1.98, daysLeft: 3},
	{category: "bakery", keywords: []string{"bread", "loaf"}, productName: "Great Value White Bread, 20 oz", brand: "Great Value", price: 1.48, daysLeft: 5},
	{category: "beverages", keywords: []string{"coffee"}, productName: "Great Value Classic Roast Coffee, 30.5 oz", brand: "Great Value", price: 6.98, daysLeft: 2},
	{category: "pantry", keywords: []string{"cereal", "oats"}, productName: "Great Value Toasted Oats Cereal, 18 oz", brand: "Great Value", price: 2.48, daysLeft: 7},
	{category: "snacks", keywords: []string{"chips", "crackers"}, productName: "Great Value Potato Chips, Party Size", brand: "Great Value", price: 2.50, daysLeft: 1},
	{category: "personal care", keywords: []string{"toothpaste", "shampoo"}, productName: "Equate Fluoride Toothpaste, 2 Pack", brand: "Equate", price: 3.47, daysLeft: 4},
	{category: "electronics", keywords: []string{"headphones", "earbuds"}, productName: "onn. Wireless Headphones", brand: "onn.", price: 24.00, daysLeft: 6},
}

// findRollback returns the best rollback for the line, or false when no
// campaign undercuts the line's current price.
func findRollback(item types.CartItem) (types.RollbackOpportunity, bool) {
	name := strings.ToLower(item.Product.Name)
	category := strings.ToLower(item.Product.Category)

	for _, entry := range rollbackTable {
		if !matchesEntry(entry, name, category) {
			continue
		}
		rollbackPrice := decimal.NewFromFloat(entry.price)
		if !rollbackPrice.LessThan(item.Product.Price) {
			continue
		}

		savings := item.Product.Price.Sub(rollbackPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		return types.RollbackOpportunity{
			Product:       rollbackProduct(entry, item.Product),
			RollbackPrice: rollbackPrice,
			OriginalPrice: item.Product.Price,
			Savings:       savings,
			Priority:      rollbackPriority(savings),
			TimeRemaining: timeRemainingText(entry.daysLeft),
		}, true
	}
	return types.RollbackOpportunity{}, false
}

func matchesEntry(entry rollbackEntry, name, category string) bool {
	if entry.category == category {
		return true
	}
	for _, keyword := range entry.keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

// rollbackProduct builds the suggested item, inheriting the line's category.
func rollbackProduct(entry rollbackEntry, original types.Product) types.Product {
	originalPrice := original.Price
	discount := 0.0
	if originalPrice.IsPositive() {
		discount, _ = originalPrice.Sub(decimal.NewFromFloat(entry.price)).
			Div(originalPrice).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	}
	return types.Product{
		ID:            "rollback-" + strings.ToLower(entry.category),
		Name:          entry.productName,
		Description:   fmt.Sprintf("Rollback deal on %s", entry.productName),
		Price:         decimal.NewFromFloat(entry.price),
		OriginalPrice: &originalPrice,
		Discount:      &discount,
		Brand:         entry.brand,
		Category:      original.Category,
		InStock:       true,
		Quantity:      100,
		Warehouse:     original.Warehouse,
		Supplier:      original.Supplier,
	}
}

func timeRemainingText(daysLeft int) string {
	switch {
	case daysLeft <= 0:
		return "Ends today"
	case daysLeft == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", daysLeft)
	}
}
