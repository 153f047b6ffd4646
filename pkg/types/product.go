package types

import "github.com/shopspring/decimal"

// WarehouseRef is the fulfillment summary attached to a product candidate.
type WarehouseRef struct {
	Location          string  `json:"location"`
	Distance          float64 `json:"distance"`
	EstimatedDelivery string  `json:"estimated_delivery"`
}

// SupplierRef identifies the upstream supplier for a candidate listing.
type SupplierRef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Reliability float64 `json:"reliability"`
}

// Product is the normalized candidate shape every search source is mapped
// into. Identity (ID) is stable across pipeline stages; price and stock may be
// re-derived downstream.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Discount      *float64         `json:"discount,omitempty"`
	Brand         string           `json:"brand"`
	Category      string           `json:"category"`
	Image         string           `json:"image"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	InStock       bool             `json:"in_stock"`
	Quantity      int              `json:"quantity"`
	Warehouse     WarehouseRef     `json:"warehouse"`
	Supplier      SupplierRef      `json:"supplier"`
	IsGreatValue  bool             `json:"is_great_value,omitempty"`
}

// DiscountPercent returns the listed discount, or 0 when none is present.
func (p Product) DiscountPercent() float64 {
	if p.Discount == nil {
		return 0
	}
	return *p.Discount
}
