package delivery

import (
	"fmt"
	"math"
	"time"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// minutesPerMile converts route distance into a drive-time estimate.
const minutesPerMile = 2.5

var slotWindows = []string{"09:00-12:00", "12:00-15:00", "15:00-18:00"}

// buildRoute estimates the trip from the warehouse to the destination with
// ordered textual steps and the next bookable slots.
func buildRoute(warehouse types.Warehouse, address types.Address, distance float64, now time.Time) types.DeliveryRoute {
	destination := address.Formatted()
	partner := "Local Courier"
	if len(warehouse.LastMilePartners) > 0 {
		partner = warehouse.LastMilePartners[0]
	}

	steps := []string{
		fmt.Sprintf("Package picked and packed at %s", warehouse.Name),
		fmt.Sprintf("Departure scan at %s, %s", warehouse.Location.City, warehouse.Location.State),
		fmt.Sprintf("In transit to %s", cityOrDestination(address, destination)),
		fmt.Sprintf("Handed to last-mile partner %s", partner),
		fmt.Sprintf("Out for delivery to %s", destination),
	}

	return types.DeliveryRoute{
		WarehouseID:          warehouse.ID,
		DeliveryAddress:      destination,
		EstimatedDistance:    math.Round(distance*10) / 10,
		EstimatedTimeMinutes: math.Round(distance*minutesPerMile*10) / 10,
		Steps:                steps,
		LastMilePartner:      partner,
		DeliverySlots:        upcomingSlots(now, 3),
	}
}

func cityOrDestination(address types.Address, destination string) string {
	if address.City != "" {
		return address.City
	}
	return destination
}

// upcomingSlots offers every window for the next few days, starting tomorrow.
func upcomingSlots(now time.Time, days int) []types.DeliverySlot {
	slots := make([]types.DeliverySlot, 0, days*len(slotWindows))
	for day := 1; day <= days; day++ {
		date := now.AddDate(0, 0, day).Format("2006-01-02")
		for _, window := range slotWindows {
			slots = append(slots, types.DeliverySlot{Date: date, Window: window})
		}
	}
	return slots
}
