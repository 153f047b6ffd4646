// Package delivery selects a fulfillment warehouse and delivery method for a
// chosen product set. Selection is heuristic: warehouses are scored on
// distance, stock, method breadth and capacity, and the method follows the
// caller's priority flags. The stage always answers; any internal failure
// degrades to a fixed standard-delivery fallback.
package delivery

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/enums"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/geo"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/metrics"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// Sustainability weights. Short distances and slow methods score higher.
const (
	sustainabilityBase            = 100.0
	sustainabilityDistancePenalty = 2.0
)

// speedPenaltyByMethod adjusts the sustainability score per method.
var speedPenaltyByMethod = map[enums.DeliveryMethodType]float64{
	enums.DeliveryExpress:  -20,
	enums.DeliverySameDay:  -15,
	enums.DeliveryNextDay:  -5,
	enums.DeliveryTwoDay:   0,
	enums.DeliveryStandard: 5,
}

// Geocoder resolves a formatted address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*geo.LatLng, error)
}

// Result is the full delivery plan for one request.
type Result struct {
	Warehouse           types.Warehouse        `json:"warehouse"`
	Route               types.DeliveryRoute    `json:"route"`
	DeliveryOptions     []types.DeliveryMethod `json:"delivery_options"`
	RecommendedDelivery types.DeliveryMethod   `json:"recommended_delivery"`
	TrackingID          string                 `json:"tracking_id"`
	EstimatedDelivery   string                 `json:"estimated_delivery"`
	TotalCost           decimal.Decimal        `json:"total_cost"`
	SustainabilityScore float64                `json:"sustainability_score"`
}

// Service exposes the warehouse and delivery selection stage.
type Service interface {
	Optimize(ctx context.Context, products []types.Product, address types.Address, prefs types.DeliveryPreferences) *Result
}

// ServiceParams packages the stage dependencies. Geo is optional; Now is
// injectable so cutoff behavior is testable.
type ServiceParams struct {
	Geo     Geocoder
	Logger  *logger.Logger
	Metrics *metrics.PipelineMetrics
	Now     func() time.Time
}

type service struct {
	geo     Geocoder
	logger  *logger.Logger
	metrics *metrics.PipelineMetrics
	now     func() time.Time
}

// NewService builds the delivery stage.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		geo:     params.Geo,
		logger:  params.Logger,
		metrics: params.Metrics,
		now:     params.Now,
	}, nil
}

// Optimize plans fulfillment for the products and destination. It never
// errors; when no viable plan can be built it returns the fixed fallback.
func (s *service) Optimize(ctx context.Context, products []types.Product, address types.Address, prefs types.DeliveryPreferences) *Result {
	start := time.Now()
	defer func() {
		s.metrics.ObserveStageDuration("delivery", time.Since(start))
	}()

	ctx = s.logger.WithStage(ctx, "delivery")
	now := s.now()

	destination := s.resolveCoordinates(ctx, address)
	warehouse, distance, ok := s.pickWarehouse(address, destination, len(products))
	if !ok {
		s.metrics.IncFallback("delivery")
		s.logger.Warn(ctx, "no viable warehouse, serving fallback plan")
		return s.fallbackResult(address, products, now)
	}

	options := enumerateMethods(warehouse, distance, now)
	chosen := chooseMethod(options, prefs)

	return &Result{
		Warehouse:           warehouse,
		Route:               buildRoute(warehouse, address, distance, now),
		DeliveryOptions:     options,
		RecommendedDelivery: chosen,
		TrackingID:          trackingID(),
		EstimatedDelivery:   etaFor(chosen.Type, now),
		TotalCost:           totalCost(products, chosen),
		SustainabilityScore: sustainabilityScore(distance, chosen.Type),
	}
}

// resolveCoordinates prefers caller-supplied coordinates, then the geocoder.
// A nil return means distance falls back to the address-hash estimate.
func (s *service) resolveCoordinates(ctx context.Context, address types.Address) *types.Coordinates {
	if address.HasCoordinates() {
		return &types.Coordinates{Lat: *address.Lat, Lng: *address.Lng}
	}
	if s.geo == nil {
		return nil
	}

	located, err := s.geo.Geocode(ctx, address.Formatted())
	if err != nil {
		s.logger.Warn(ctx, "geocoding unavailable, estimating distance")
		return nil
	}
	return &types.Coordinates{Lat: located.Lat, Lng: located.Lng}
}

// pickWarehouse scores warehouses whose delivery radius covers the
// destination and returns the winner with its distance.
func (s *service) pickWarehouse(address types.Address, destination *types.Coordinates, requiredStock int) (types.Warehouse, float64, bool) {
	var (
		best         types.Warehouse
		bestDistance float64
		bestScore    = -1.0
	)

	for i, warehouse := range staticWarehouses {
		distance := estimatedDistanceMiles(address.Formatted(), i)
		if destination != nil {
			distance = haversineMiles(*destination, warehouse.Location.Coordinates)
		}
		if distance > warehouse.DeliveryRadius {
			continue
		}

		score := scoreWarehouse(warehouse, distance, requiredStock)
		if score > bestScore {
			best = warehouse
			bestDistance = distance
			bestScore = score
		}
	}

	if bestScore < 0 {
		return types.Warehouse{}, 0, false
	}
	return best, bestDistance, true
}

func totalCost(products []types.Product, method types.DeliveryMethod) decimal.Decimal {
	total := method.Cost
	for _, product := range products {
		total = total.Add(product.Price)
	}
	return total
}

func sustainabilityScore(distance float64, methodType enums.DeliveryMethodType) float64 {
	score := sustainabilityBase - sustainabilityDistancePenalty*distance + speedPenaltyByMethod[methodType]
	return math.Max(0, math.Min(100, score))
}

func trackingID() string {
	return "TRK-" + uuid.NewString()
}

// fallbackResult is the degraded plan: the default warehouse, standard
// delivery, and no speed adjustment to the sustainability score.
func (s *service) fallbackResult(address types.Address, products []types.Product, now time.Time) *Result {
	warehouse := staticWarehouses[0]
	distance := warehouse.DeliveryRadius / 2
	method := standardMethod()

	return &Result{
		Warehouse:           warehouse,
		Route:               buildRoute(warehouse, address, distance, now),
		DeliveryOptions:     []types.DeliveryMethod{method},
		RecommendedDelivery: method,
		TrackingID:          "TRK-FALLBACK-" + uuid.NewString()[:8],
		EstimatedDelivery:   etaFor(method.Type, now),
		TotalCost:           totalCost(products, method),
		SustainabilityScore: math.Max(0, math.Min(100, sustainabilityBase-sustainabilityDistancePenalty*distance)),
	}
}
