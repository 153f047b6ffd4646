package cartopt

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// bundleTable is the fixed promotional bundle set. A bundle qualifies when
// enough cart lines fall into its categories; savings apply to those lines.
var bundleTable = []types.BundleDeal{
	{
		ID:         "bundle-breakfast",
		Name:       "Breakfast Bundle",
		Categories: []string{"dairy", "bakery", "pantry"},
		MinItems:   3,
		Discount:   0.10,
	},
	{
		ID:         "bundle-snack",
		Name:       "Snack Pack",
		Categories: []string{"snacks", "beverages"},
		MinItems:   2,
		Discount:   0.05,
	},
	{
		ID:         "bundle-care",
		Name:       "Home Care Combo",
		Categories: []string{"personal care", "household"},
		MinItems:   2,
		Discount:   0.08,
	},
}

// bestBundle evaluates every bundle against the cart and returns the single
// qualifying bundle with the highest savings. Only one bundle is applied even
// when lines qualify for several; overlapping bundles do not stack.
func bestBundle(items []types.CartItem) (types.BundleDeal, bool) {
	var (
		best  types.BundleDeal
		found bool
	)

	for _, bundle := range bundleTable {
		matched := 0
		lineTotal := decimal.Zero
		for _, item := range items {
			if bundleCovers(bundle, item.Product.Category) {
				matched += item.Quantity
				lineTotal = lineTotal.Add(item.LineTotal())
			}
		}
		if matched < bundle.MinItems {
			continue
		}

		bundle.Savings = lineTotal.Mul(decimal.NewFromFloat(bundle.Discount)).Round(2)
		if !found || bundle.Savings.GreaterThan(best.Savings) {
			best = bundle
			found = true
		}
	}
	return best, found
}

func bundleCovers(bundle types.BundleDeal, category string) bool {
	lowered := strings.ToLower(category)
	for _, c := range bundle.Categories {
		if c == lowered {
			return true
		}
	}
	return false
}
