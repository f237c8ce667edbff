package valueobjects

import (
	"fmt"
	"strings"
)

type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleTruck      VehicleType = "truck"
)

func (v VehicleType) String() string {
	return string(v)
}

func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleCar, VehicleMotorcycle, VehicleTruck:
		return true
	}
	return false
}

// NewVehicleType parses s case-insensitively. Empty input means a car.
func NewVehicleType(s string) (VehicleType, error) {
	if s == "" {
		return VehicleCar, nil
	}
	v := VehicleType(strings.ToLower(s))
	if !v.IsValid() {
		return "", fmt.Errorf("invalid vehicle type: %s", s)
	}
	return v, nil
}
