package enums

import "fmt"

// SubstitutionType identifies why a cart line swap is being proposed.
type SubstitutionType string

const (
	SubstitutionRollback         SubstitutionType = "rollback"
	SubstitutionGreatValue       SubstitutionType = "great_value"
	SubstitutionBetterPrice      SubstitutionType = "better_price"
	SubstitutionSameBrandVariant SubstitutionType = "same_brand_variant"
)

var validSubstitutionTypes = []SubstitutionType{
	SubstitutionRollback,
	SubstitutionGreatValue,
	SubstitutionBetterPrice,
	SubstitutionSameBrandVariant,
}

// String implements fmt.Stringer.
func (s SubstitutionType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SubstitutionType.
func (s SubstitutionType) IsValid() bool {
	for _, candidate := range validSubstitutionTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSubstitutionType converts raw input into a SubstitutionType.
func ParseSubstitutionType(value string) (SubstitutionType, error) {
	for _, candidate := range validSubstitutionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid substitution type %q", value)
}
