package enums

import "fmt"

// VehicleType identifies the capacity class requested for a delivery slot.
type VehicleType string

const (
	VehicleTypePickup     VehicleType = "pickup"
	VehicleTypeVan        VehicleType = "van"
	VehicleTypeFlatbed    VehicleType = "flatbed"
	VehicleTypeBoxTruck   VehicleType = "box_truck"
	VehicleTypeDumpTruck  VehicleType = "dump_truck"
	VehicleTypeCraneTruck VehicleType = "crane_truck"
	VehicleTypeMixerTruck VehicleType = "mixer_truck"
)

var validVehicleTypes = []VehicleType{
	VehicleTypePickup,
	VehicleTypeVan,
	VehicleTypeFlatbed,
	VehicleTypeBoxTruck,
	VehicleTypeDumpTruck,
	VehicleTypeCraneTruck,
	VehicleTypeMixerTruck,
}

var vehicleTypeLabels = map[VehicleType]string{
	VehicleTypePickup:     "Pickup",
	VehicleTypeVan:        "Van",
	VehicleTypeFlatbed:    "Flatbed truck",
	VehicleTypeBoxTruck:   "Box truck",
	VehicleTypeDumpTruck:  "Dump truck",
	VehicleTypeCraneTruck: "Crane truck",
	VehicleTypeMixerTruck: "Mixer truck",
}

// String implements fmt.Stringer.
func (v VehicleType) String() string {
	return string(v)
}

// Label returns the display name for the vehicle class.
func (v VehicleType) Label() string {
	if label, ok := vehicleTypeLabels[v]; ok {
		return label
	}
	return string(v)
}

// IsValid reports whether the value is a known VehicleType.
func (v VehicleType) IsValid() bool {
	for _, candidate := range validVehicleTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVehicleType converts raw input into a VehicleType.
func ParseVehicleType(value string) (VehicleType, error) {
	for _, candidate := range validVehicleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vehicle type %q", value)
}
