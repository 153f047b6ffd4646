package types

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// WarehouseLocation is the physical location of a fulfillment warehouse.
type WarehouseLocation struct {
	Address     string      `json:"address"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Zip         string      `json:"zip"`
	Coordinates Coordinates `json:"coordinates"`
}

// Warehouse is a fulfillment candidate scored by the delivery selector.
type Warehouse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Location         WarehouseLocation `json:"location"`
	Distance         float64           `json:"distance"`
	Capacity         int               `json:"capacity"`
	CurrentStock     int               `json:"current_stock"`
	DeliveryRadius   float64           `json:"delivery_radius"`
	OperationalHours string            `json:"operational_hours"`
	DeliveryMethods  []DeliveryMethod  `json:"delivery_methods"`
	LastMilePartners []string          `json:"last_mile_partners"`
}
