package delivery

import (
	"hash/fnv"
	"math"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// Warehouse scoring weights. Distance dominates, insufficient stock is a flat
// penalty, method breadth and capacity nudge the score upward.
const (
	scoreBase           = 100.0
	distancePenalty     = 2.0
	stockShortPenalty   = 30.0
	methodBreadthBonus  = 5.0
	capacityBonusFactor = 2.0
	capacityBonusUnit   = 1000.0
)

// staticWarehouses is the fulfillment network consulted for every request.
// The first entry doubles as the fallback warehouse for degraded responses.
var staticWarehouses = []types.Warehouse{
	{
		ID:   "wh-dallas-01",
		Name: "Dallas Fulfillment Center",
		Location: types.WarehouseLocation{
			Address:     "2400 Logistics Pkwy",
			City:        "Dallas",
			State:       "TX",
			Zip:         "75201",
			Coordinates: types.Coordinates{Lat: 32.7767, Lng: -96.7970},
		},
		Capacity:         50000,
		CurrentStock:     42000,
		DeliveryRadius:   25,
		OperationalHours: "06:00-22:00",
		DeliveryMethods:  methodCatalog(true),
		LastMilePartners: []string{"RoadRunner Express", "CityFleet"},
	},
	{
		ID:   "wh-fortworth-01",
		Name: "Fort Worth Distribution Hub",
		Location: types.WarehouseLocation{
			Address:     "800 Freight Rd",
			City:        "Fort Worth",
			State:       "TX",
			Zip:         "76102",
			Coordinates: types.Coordinates{Lat: 32.7555, Lng: -97.3308},
		},
		Capacity:         35000,
		CurrentStock:     28000,
		DeliveryRadius:   30,
		OperationalHours: "05:00-23:00",
		DeliveryMethods:  methodCatalog(false),
		LastMilePartners: []string{"CityFleet"},
	},
	{
		ID:   "wh-plano-01",
		Name: "Plano Micro-Fulfillment Site",
		Location: types.WarehouseLocation{
			Address:     "150 Commerce Dr",
			City:        "Plano",
			State:       "TX",
			Zip:         "75024",
			Coordinates: types.Coordinates{Lat: 33.0198, Lng: -96.6989},
		},
		Capacity:         8000,
		CurrentStock:     6500,
		DeliveryRadius:   15,
		OperationalHours: "07:00-21:00",
		DeliveryMethods:  methodCatalog(true),
		LastMilePartners: []string{"RoadRunner Express"},
	},
}

// scoreWarehouse rates a warehouse for the request. Higher is better; scores
// never go below zero.
func scoreWarehouse(w types.Warehouse, distance float64, requiredStock int) float64 {
	score := scoreBase - distancePenalty*distance
	if w.CurrentStock < requiredStock {
		score -= stockShortPenalty
	}
	score += methodBreadthBonus * float64(len(w.DeliveryMethods))
	score += capacityBonusFactor * float64(w.Capacity) / capacityBonusUnit
	return math.Max(0, score)
}

const earthRadiusMiles = 3958.8

// haversineMiles is the great-circle distance between two coordinates.
func haversineMiles(a, b types.Coordinates) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

// estimatedDistanceMiles derives a stable pseudo-distance for addresses that
// could not be geocoded, so repeated requests for the same address agree.
func estimatedDistanceMiles(formatted string, warehouseIndex int) float64 {
	digest := fnv.New32a()
	_, _ = digest.Write([]byte(formatted))
	base := 3 + float64(digest.Sum32()%200)/10
	return math.Round((base+float64(warehouseIndex)*1.7)*10) / 10
}
