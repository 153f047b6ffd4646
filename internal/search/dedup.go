package search

import (
	"github.com/shopsmart-labs/shopsmart-backend/pkg/similarity"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// dedupe drops candidates whose name is a near duplicate of an earlier one.
// Order is preserved and the first occurrence wins. The second return value is
// the number of dropped candidates.
func dedupe(products []types.Product) ([]types.Product, int) {
	if len(products) < 2 {
		return products, 0
	}

	kept := make([]types.Product, 0, len(products))
	dropped := 0

	for _, candidate := range products {
		duplicate := false
		for _, existing := range kept {
			if similarity.Ratio(candidate.Name, existing.Name) > similarity.DedupThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			dropped++
			continue
		}
		kept = append(kept, candidate)
	}

	return kept, dropped
}
