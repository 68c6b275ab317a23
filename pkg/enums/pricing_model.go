package enums

import "fmt"

// PricingModel determines which physical quantity and unit price apply to a material.
type PricingModel string

const (
	PricingModelArea   PricingModel = "area"
	PricingModelWeight PricingModel = "weight"
	PricingModelVolume PricingModel = "volume"
)

var validPricingModels = []PricingModel{
	PricingModelArea,
	PricingModelWeight,
	PricingModelVolume,
}

// String implements fmt.Stringer.
func (p PricingModel) String() string {
	return string(p)
}

// IsValid reports whether the pricing model is recognized.
func (p PricingModel) IsValid() bool {
	for _, candidate := range validPricingModels {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePricingModel converts a raw string into a PricingModel.
func ParsePricingModel(value string) (PricingModel, error) {
	for _, candidate := range validPricingModels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing model %q", value)
}
