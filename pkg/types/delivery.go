package types

import (
	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/enums"
)

// DeliveryMethod is one fulfillment option offered by a warehouse. Available
// is false whenever the distance or time-of-day cutoff constraint is violated.
type DeliveryMethod struct {
	ID            string                   `json:"id"`
	Type          enums.DeliveryMethodType `json:"type"`
	EstimatedTime string                   `json:"estimated_time"`
	Cost          decimal.Decimal          `json:"cost"`
	Available     bool                     `json:"available"`
	CutoffTime    string                   `json:"cutoff_time,omitempty"`
}

// DeliverySlot is a bookable delivery window.
type DeliverySlot struct {
	Date   string `json:"date"`
	Window string `json:"window"`
}

// DeliveryRoute estimates the trip from the chosen warehouse to the
// destination address.
type DeliveryRoute struct {
	WarehouseID          string         `json:"warehouse_id"`
	DeliveryAddress      string         `json:"delivery_address"`
	EstimatedDistance    float64        `json:"estimated_distance"`
	EstimatedTimeMinutes float64        `json:"estimated_time_minutes"`
	Steps                []string       `json:"steps"`
	LastMilePartner      string         `json:"last_mile_partner"`
	DeliverySlots        []DeliverySlot `json:"delivery_slots"`
}

// DeliveryPreferences are caller-supplied priority flags for method selection.
type DeliveryPreferences struct {
	PrioritySpeed           bool `json:"priority_speed"`
	PriorityCost            bool `json:"priority_cost"`
	EnvironmentallyFriendly bool `json:"environmentally_friendly"`
}
