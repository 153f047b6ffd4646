package enums

import "fmt"

// IntentType classifies the shopping action extracted from free text.
type IntentType string

const (
	IntentSearchProduct IntentType = "search_product"
	IntentAddToCart     IntentType = "add_to_cart"
	IntentCheckPrice    IntentType = "check_price"
	IntentPlaceOrder    IntentType = "place_order"
	IntentViewCart      IntentType = "view_cart"
	IntentGeneralQuery  IntentType = "general_query"
)

var validIntentTypes = []IntentType{
	IntentSearchProduct,
	IntentAddToCart,
	IntentCheckPrice,
	IntentPlaceOrder,
	IntentViewCart,
	IntentGeneralQuery,
}

// String implements fmt.Stringer.
func (i IntentType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known IntentType.
func (i IntentType) IsValid() bool {
	for _, candidate := range validIntentTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseIntentType converts raw input into an IntentType.
func ParseIntentType(value string) (IntentType, error) {
	for _, candidate := range validIntentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid intent type %q", value)
}
