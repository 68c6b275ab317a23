package enums

import "fmt"

// DiscountType selects how a matched discount tier adjusts the unit price.
type DiscountType string

const (
	DiscountTypeRate  DiscountType = "rate"
	DiscountTypePrice DiscountType = "price"
)

var validDiscountTypes = []DiscountType{
	DiscountTypeRate,
	DiscountTypePrice,
}

// String implements fmt.Stringer.
func (d DiscountType) String() string {
	return string(d)
}

// IsValid reports whether the discount type is known.
func (d DiscountType) IsValid() bool {
	for _, candidate := range validDiscountTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDiscountType converts raw input into a DiscountType.
func ParseDiscountType(value string) (DiscountType, error) {
	for _, candidate := range validDiscountTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount type %q", value)
}
