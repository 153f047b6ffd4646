package delivery

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/enums"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/geo"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func newTestService(t *testing.T, now time.Time, geocoder Geocoder) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Geo:    geocoder,
		Logger: testLogger(),
		Now:    func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func coordAddress(lat, lng float64) types.Address {
	return types.Address{
		Line1:      "500 Elm St",
		City:       "Dallas",
		State:      "TX",
		PostalCode: "75201",
		Country:    "US",
		Lat:        &lat,
		Lng:        &lng,
	}
}

func cartProducts(prices ...float64) []types.Product {
	products := make([]types.Product, 0, len(prices))
	for i, price := range prices {
		products = append(products, types.Product{
			ID:       "p" + string(rune('1'+i)),
			Name:     "Product",
			Price:    decimal.NewFromFloat(price),
			InStock:  true,
			Quantity: 5,
		})
	}
	return products
}

// morning is well before the same-day cutoff.
var morning = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

// evening is past the same-day cutoff.
var evening = time.Date(2026, 8, 31, 17, 30, 0, 0, time.UTC)

func TestOptimizePrioritySpeedPicksFastestAvailable(t *testing.T) {
	svc := newTestService(t, morning, nil)

	// On top of the Dallas warehouse: every method is in range.
	result := svc.Optimize(context.Background(), cartProducts(10), coordAddress(32.7767, -96.7970), types.DeliveryPreferences{PrioritySpeed: true})

	if result.RecommendedDelivery.Type != enums.DeliveryExpress {
		t.Fatalf("expected express, got %s", result.RecommendedDelivery.Type)
	}
	for _, method := range result.DeliveryOptions {
		if method.Available && method.Type.SpeedRank() < result.RecommendedDelivery.Type.SpeedRank() {
			t.Fatalf("available method %s is faster than the chosen %s", method.Type, result.RecommendedDelivery.Type)
		}
	}
}

func TestOptimizeSameDayClosedPastCutoffAndBeyondRange(t *testing.T) {
	// Roughly 20 miles due east of the Dallas warehouse and outside every
	// other warehouse's radius.
	address := coordAddress(32.7767, -96.4530)

	svc := newTestService(t, evening, nil)
	result := svc.Optimize(context.Background(), cartProducts(10), address, types.DeliveryPreferences{PrioritySpeed: true})

	if result.Warehouse.ID != "wh-dallas-01" {
		t.Fatalf("expected the Dallas warehouse, got %s", result.Warehouse.ID)
	}
	if result.RecommendedDelivery.Type == enums.DeliverySameDay {
		t.Fatal("same-day must not be recommended past the cutoff")
	}
	for _, method := range result.DeliveryOptions {
		if method.Type == enums.DeliverySameDay && method.Available {
			t.Fatal("same-day should be marked unavailable")
		}
		// 20 miles is also beyond the express band.
		if method.Type == enums.DeliveryExpress && method.Available {
			t.Fatal("express should be marked unavailable at 20 miles")
		}
	}
	if result.RecommendedDelivery.Type != enums.DeliveryNextDay {
		t.Fatalf("fastest remaining tier should be next_day, got %s", result.RecommendedDelivery.Type)
	}
}

func TestOptimizePriorityCostPicksCheapest(t *testing.T) {
	svc := newTestService(t, morning, nil)

	result := svc.Optimize(context.Background(), cartProducts(10), coordAddress(32.7767, -96.7970), types.DeliveryPreferences{PriorityCost: true})
	if result.RecommendedDelivery.Type != enums.DeliveryStandard {
		t.Fatalf("standard is free and should win on cost, got %s", result.RecommendedDelivery.Type)
	}
}

func TestOptimizeEnvironmentallyFriendlyPrefersStandard(t *testing.T) {
	svc := newTestService(t, morning, nil)

	result := svc.Optimize(context.Background(), cartProducts(10), coordAddress(32.7767, -96.7970), types.DeliveryPreferences{EnvironmentallyFriendly: true})
	if result.RecommendedDelivery.Type != enums.DeliveryStandard {
		t.Fatalf("expected standard, got %s", result.RecommendedDelivery.Type)
	}
}

func TestOptimizeDefaultsToNextDay(t *testing.T) {
	svc := newTestService(t, morning, nil)

	result := svc.Optimize(context.Background(), cartProducts(10), coordAddress(32.7767, -96.7970), types.DeliveryPreferences{})
	if result.RecommendedDelivery.Type != enums.DeliveryNextDay {
		t.Fatalf("expected next_day default, got %s", result.RecommendedDelivery.Type)
	}
}

func TestOptimizeTotalsAndRoute(t *testing.T) {
	svc := newTestService(t, morning, nil)

	result := svc.Optimize(context.Background(), cartProducts(3.50, 6.50), coordAddress(32.7767, -96.7970), types.DeliveryPreferences{})

	wantTotal := decimal.NewFromFloat(18.99) // 3.50 + 6.50 + 8.99 next-day fee
	if !result.TotalCost.Equal(wantTotal) {
		t.Fatalf("total = %s, want %s", result.TotalCost, wantTotal)
	}
	if result.Route.WarehouseID != result.Warehouse.ID {
		t.Fatalf("route warehouse %s != chosen warehouse %s", result.Route.WarehouseID, result.Warehouse.ID)
	}
	if len(result.Route.Steps) == 0 || len(result.Route.DeliverySlots) != 9 {
		t.Fatalf("route missing steps or slots: %+v", result.Route)
	}
	wantMinutes := result.Route.EstimatedDistance * minutesPerMile
	if diff := result.Route.EstimatedTimeMinutes - wantMinutes; diff > 0.5 || diff < -0.5 {
		t.Fatalf("route time %v not derived from distance %v", result.Route.EstimatedTimeMinutes, result.Route.EstimatedDistance)
	}
	if !strings.HasPrefix(result.TrackingID, "TRK-") {
		t.Fatalf("unexpected tracking id %q", result.TrackingID)
	}
	if result.EstimatedDelivery == "" {
		t.Fatal("expected an ETA")
	}
}

func TestOptimizeSustainabilityRewardsSlowMethods(t *testing.T) {
	svc := newTestService(t, morning, nil)
	address := coordAddress(32.7767, -96.7970)

	standard := svc.Optimize(context.Background(), cartProducts(10), address, types.DeliveryPreferences{EnvironmentallyFriendly: true})
	express := svc.Optimize(context.Background(), cartProducts(10), address, types.DeliveryPreferences{PrioritySpeed: true})

	if standard.SustainabilityScore <= express.SustainabilityScore {
		t.Fatalf("standard (%v) should outscore express (%v)", standard.SustainabilityScore, express.SustainabilityScore)
	}
	if standard.SustainabilityScore > 100 || express.SustainabilityScore < 0 {
		t.Fatalf("scores out of bounds: %v / %v", standard.SustainabilityScore, express.SustainabilityScore)
	}
}

func TestOptimizeFallsBackWhenNoWarehouseCovers(t *testing.T) {
	svc := newTestService(t, morning, nil)

	// Manhattan is outside every warehouse's delivery radius.
	result := svc.Optimize(context.Background(), cartProducts(10), coordAddress(40.7128, -74.0060), types.DeliveryPreferences{PrioritySpeed: true})

	if !strings.HasPrefix(result.TrackingID, "TRK-FALLBACK-") {
		t.Fatalf("expected fallback tracking id, got %q", result.TrackingID)
	}
	if result.RecommendedDelivery.Type != enums.DeliveryStandard {
		t.Fatalf("fallback must use standard delivery, got %s", result.RecommendedDelivery.Type)
	}
	if len(result.DeliveryOptions) != 1 {
		t.Fatalf("fallback offers standard only, got %d options", len(result.DeliveryOptions))
	}
}

type stubGeocoder struct {
	result *geo.LatLng
	err    error
	calls  int
}

func (s *stubGeocoder) Geocode(_ context.Context, _ string) (*geo.LatLng, error) {
	s.calls++
	return s.result, s.err
}

func TestOptimizeGeocodesAddressesWithoutCoordinates(t *testing.T) {
	geocoder := &stubGeocoder{result: &geo.LatLng{Lat: 32.7767, Lng: -96.7970}}
	svc := newTestService(t, morning, geocoder)

	address := types.Address{Line1: "500 Elm St", City: "Dallas", State: "TX", PostalCode: "75201"}
	result := svc.Optimize(context.Background(), cartProducts(10), address, types.DeliveryPreferences{})

	if geocoder.calls != 1 {
		t.Fatalf("expected one geocode call, got %d", geocoder.calls)
	}
	if result.Warehouse.ID != "wh-dallas-01" {
		t.Fatalf("geocoded address should resolve to Dallas, got %s", result.Warehouse.ID)
	}
}

func TestEstimatedDistanceIsStablePerAddress(t *testing.T) {
	first := estimatedDistanceMiles("500 Elm St, Dallas, TX, 75201", 0)
	second := estimatedDistanceMiles("500 Elm St, Dallas, TX, 75201", 0)
	if first != second {
		t.Fatalf("pseudo-distance must be stable: %v vs %v", first, second)
	}
	if first < 3 || first > 25 {
		t.Fatalf("pseudo-distance out of expected band: %v", first)
	}
}
