package delivery

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/enums"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// Availability gates. Same-day holds until the cutoff hour and inside its
// distance band; express needs warehouse support and a tighter band.
const (
	sameDayMaxDistance = 15.0
	sameDayCutoffHour  = 16
	expressMaxDistance = 10.0
)

type methodSpec struct {
	methodType    enums.DeliveryMethodType
	estimatedTime string
	cost          float64
	cutoffTime    string
	etaOffset     time.Duration
}

// methodSpecs is the full delivery menu in speed order.
var methodSpecs = []methodSpec{
	{enums.DeliveryExpress, "2-4 hours", 19.99, "", 4 * time.Hour},
	{enums.DeliverySameDay, "Today by 9 PM", 12.99, "16:00", 8 * time.Hour},
	{enums.DeliveryNextDay, "Tomorrow by 8 PM", 8.99, "", 24 * time.Hour},
	{enums.DeliveryTwoDay, "2 business days", 5.99, "", 48 * time.Hour},
	{enums.DeliveryStandard, "5-7 business days", 0, "", 5 * 24 * time.Hour},
}

// methodCatalog builds the delivery methods a warehouse advertises. Express
// coverage varies by site.
func methodCatalog(hasExpress bool) []types.DeliveryMethod {
	methods := make([]types.DeliveryMethod, 0, len(methodSpecs))
	for _, spec := range methodSpecs {
		if spec.methodType == enums.DeliveryExpress && !hasExpress {
			continue
		}
		methods = append(methods, types.DeliveryMethod{
			ID:            "method-" + string(spec.methodType),
			Type:          spec.methodType,
			EstimatedTime: spec.estimatedTime,
			Cost:          decimal.NewFromFloat(spec.cost),
			Available:     true,
			CutoffTime:    spec.cutoffTime,
		})
	}
	return methods
}

// enumerateMethods lists every delivery method for the chosen warehouse with
// availability resolved against distance and the current clock.
func enumerateMethods(warehouse types.Warehouse, distance float64, now time.Time) []types.DeliveryMethod {
	supportsExpress := false
	for _, method := range warehouse.DeliveryMethods {
		if method.Type == enums.DeliveryExpress {
			supportsExpress = true
		}
	}

	methods := make([]types.DeliveryMethod, 0, len(methodSpecs))
	for _, spec := range methodSpecs {
		method := types.DeliveryMethod{
			ID:            "method-" + string(spec.methodType),
			Type:          spec.methodType,
			EstimatedTime: spec.estimatedTime,
			Cost:          decimal.NewFromFloat(spec.cost),
			CutoffTime:    spec.cutoffTime,
		}
		switch spec.methodType {
		case enums.DeliverySameDay:
			method.Available = distance <= sameDayMaxDistance && now.Hour() < sameDayCutoffHour
		case enums.DeliveryExpress:
			method.Available = distance <= expressMaxDistance && supportsExpress
		default:
			method.Available = true
		}
		methods = append(methods, method)
	}
	return methods
}

// chooseMethod picks one available method by the caller's priority. The
// next-day tier is the default because it is always available.
func chooseMethod(methods []types.DeliveryMethod, prefs types.DeliveryPreferences) types.DeliveryMethod {
	available := make([]types.DeliveryMethod, 0, len(methods))
	for _, method := range methods {
		if method.Available {
			available = append(available, method)
		}
	}
	if len(available) == 0 {
		return standardMethod()
	}

	switch {
	case prefs.PrioritySpeed:
		best := available[0]
		for _, method := range available[1:] {
			if method.Type.SpeedRank() < best.Type.SpeedRank() {
				best = method
			}
		}
		return best
	case prefs.PriorityCost:
		best := available[0]
		for _, method := range available[1:] {
			if method.Cost.LessThan(best.Cost) {
				best = method
			}
		}
		return best
	case prefs.EnvironmentallyFriendly:
		for _, method := range available {
			if method.Type == enums.DeliveryStandard {
				return method
			}
		}
		return available[len(available)-1]
	default:
		for _, method := range available {
			if method.Type == enums.DeliveryNextDay {
				return method
			}
		}
		return available[0]
	}
}

// etaFor derives the delivery estimate from the method's offset from now.
func etaFor(methodType enums.DeliveryMethodType, now time.Time) string {
	for _, spec := range methodSpecs {
		if spec.methodType == methodType {
			return now.Add(spec.etaOffset).Format("Mon, Jan 2 by 3 PM")
		}
	}
	return now.Add(24 * time.Hour).Format("Mon, Jan 2 by 3 PM")
}

func standardMethod() types.DeliveryMethod {
	spec := methodSpecs[len(methodSpecs)-1]
	return types.DeliveryMethod{
		ID:            "method-" + string(spec.methodType),
		Type:          spec.methodType,
		EstimatedTime: spec.estimatedTime,
		Cost:          decimal.NewFromFloat(spec.cost),
		Available:     true,
	}
}
