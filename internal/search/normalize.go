package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/random"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/retail"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// productNamespace makes synthetic ids stable for a given listing name, so
// repeated searches over identical source data yield identical candidates.
var productNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

var deliveryWindows = []string{"Today", "Tomorrow", "2 days", "3 days"}

// normalizeListing maps one raw retail listing into the canonical product
// shape. Missing numeric fields are filled with plausible values drawn from
// the injected source; identity fields are derived deterministically.
func normalizeListing(listing retail.Listing, category string, src random.Source) types.Product {
	name := strings.TrimSpace(listing.Name)
	if name == "" {
		name = "Unnamed Product"
	}

	product := types.Product{
		ID:          listing.ID,
		Name:        name,
		Description: listing.Description,
		Brand:       listing.Brand,
		Category:    firstNonEmpty(listing.Category, category, "general"),
		Image:       listing.Image,
		InStock:     true,
	}

	if product.ID == "" {
		product.ID = uuid.NewSHA1(productNamespace, []byte(name)).String()
	}
	if product.Description == "" {
		product.Description = fmt.Sprintf("%s from a trusted seller", name)
	}
	if product.Image == "" {
		product.Image = "/images/products/placeholder.jpg"
	}
	if listing.InStock != nil {
		product.InStock = *listing.InStock
	}

	price := roundTo(random.FloatBetween(src, 2.99, 49.99), 2)
	if listing.Price != nil && *listing.Price > 0 {
		price = *listing.Price
	}
	product.Price = decimal.NewFromFloat(price)

	if listing.OldPrice != nil && *listing.OldPrice > price {
		old := *listing.OldPrice
		original := decimal.NewFromFloat(old)
		discount := roundTo((old-price)/old*100, 1)
		product.OriginalPrice = &original
		product.Discount = &discount
	}

	product.Rating = roundTo(random.FloatBetween(src, 3.5, 4.9), 1)
	if listing.Rating != nil && *listing.Rating > 0 {
		product.Rating = *listing.Rating
	}

	product.Reviews = random.IntBetween(src, 10, 500)
	if listing.Reviews != nil && *listing.Reviews > 0 {
		product.Reviews = *listing.Reviews
	}

	product.Quantity = random.IntBetween(src, 5, 50)
	if !product.InStock {
		product.Quantity = 0
	}

	product.Warehouse = types.WarehouseRef{
		Location:          "Local Fulfillment Center",
		Distance:          roundTo(random.FloatBetween(src, 2, 15), 1),
		EstimatedDelivery: deliveryWindows[src.IntN(len(deliveryWindows))],
	}

	seller := firstNonEmpty(listing.Seller, listing.Brand, "ShopSmart Marketplace")
	product.Supplier = types.SupplierRef{
		ID:          uuid.NewSHA1(productNamespace, []byte("supplier:"+seller)).String(),
		Name:        seller,
		Reliability: roundTo(random.FloatBetween(src, 0.80, 0.99), 2),
	}

	return product
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
