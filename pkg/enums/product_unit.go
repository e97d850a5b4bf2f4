package enums

import "fmt"

// ProductUnit is the unit of measure a material is ordered in.
type ProductUnit string

const (
	ProductUnitPiece       ProductUnit = "piece"
	ProductUnitBag         ProductUnit = "bag"
	ProductUnitPallet      ProductUnit = "pallet"
	ProductUnitCubicMeter  ProductUnit = "m3"
	ProductUnitSquareMeter ProductUnit = "m2"
	ProductUnitTon         ProductUnit = "ton"
	ProductUnitLiter       ProductUnit = "liter"
	ProductUnitBundle      ProductUnit = "bundle"
)

var validProductUnits = []ProductUnit{
	ProductUnitPiece,
	ProductUnitBag,
	ProductUnitPallet,
	ProductUnitCubicMeter,
	ProductUnitSquareMeter,
	ProductUnitTon,
	ProductUnitLiter,
	ProductUnitBundle,
}

// String implements fmt.Stringer.
func (p ProductUnit) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductUnit.
func (p ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}
