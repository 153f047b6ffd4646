package enums

import "fmt"

// DeliveryMethodType identifies a fulfillment speed tier.
type DeliveryMethodType string

const (
	DeliverySameDay  DeliveryMethodType = "same_day"
	DeliveryNextDay  DeliveryMethodType = "next_day"
	DeliveryTwoDay   DeliveryMethodType = "two_day"
	DeliveryStandard DeliveryMethodType = "standard"
	DeliveryExpress  DeliveryMethodType = "express"
)

var validDeliveryMethodTypes = []DeliveryMethodType{
	DeliverySameDay,
	DeliveryNextDay,
	DeliveryTwoDay,
	DeliveryStandard,
	DeliveryExpress,
}

// speedRankByMethod orders methods fastest-first. Lower is faster.
var speedRankByMethod = map[DeliveryMethodType]int{
	DeliveryExpress:  0,
	DeliverySameDay:  1,
	DeliveryNextDay:  2,
	DeliveryTwoDay:   3,
	DeliveryStandard: 4,
}

// String implements fmt.Stringer.
func (d DeliveryMethodType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryMethodType.
func (d DeliveryMethodType) IsValid() bool {
	for _, candidate := range validDeliveryMethodTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// SpeedRank returns the fixed speed ordering used when a caller prioritizes
// speed. Unknown methods rank slowest.
func (d DeliveryMethodType) SpeedRank() int {
	if rank, ok := speedRankByMethod[d]; ok {
		return rank
	}
	return len(speedRankByMethod)
}

// ParseDeliveryMethodType converts raw input into a DeliveryMethodType.
func ParseDeliveryMethodType(value string) (DeliveryMethodType, error) {
	for _, candidate := range validDeliveryMethodTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery method type %q", value)
}
