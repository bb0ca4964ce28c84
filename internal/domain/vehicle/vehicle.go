// Package vehicle implements the fleet aggregate: vehicle lifecycle states,
// the commands that act on them and the events they emit. VIN and owner are
// fixed at creation and propagate unchanged across every transition.
package vehicle

import (
	"errors"
	"fmt"

	"autonomo/internal/domain/value"
)

// ErrIllegalState is returned when an attribute is read from a state variant
// that does not carry it yet.
var ErrIllegalState = errors.New("illegal vehicle state access")

// Vehicle is the closed set of vehicle lifecycle states. The only
// implementations live in this package.
type Vehicle interface {
	// VehicleVin returns the VIN, or ErrIllegalState on InitialVehicleState.
	VehicleVin() (value.Vin, error)

	// VehicleOwner returns the owner, or ErrIllegalState on InitialVehicleState.
	VehicleOwner() (value.UserId, error)

	isVehicle()
}

// InitialVehicleState is the zero state before a vehicle is added, and the
// state a removed vehicle returns to.
type InitialVehicleState struct{}

// InventoryVehicle is an owned vehicle that is not in service.
type InventoryVehicle struct {
	VIN   value.Vin
	Owner value.UserId
}

// AvailableVehicle is in service and can take a ride.
type AvailableVehicle struct {
	VIN   value.Vin
	Owner value.UserId
}

// OccupiedVehicle is in service and currently carrying a rider.
type OccupiedVehicle struct {
	VIN   value.Vin
	Owner value.UserId
}

// OccupiedReturningVehicle is carrying a rider but has been asked to return
// to inventory once the ride ends.
type OccupiedReturningVehicle struct {
	VIN   value.Vin
	Owner value.UserId
}

// ReturningVehicle is empty and on its way back to inventory.
type ReturningVehicle struct {
	VIN   value.Vin
	Owner value.UserId
}

func (InitialVehicleState) isVehicle()      {}
func (InventoryVehicle) isVehicle()         {}
func (AvailableVehicle) isVehicle()         {}
func (OccupiedVehicle) isVehicle()          {}
func (OccupiedReturningVehicle) isVehicle() {}
func (ReturningVehicle) isVehicle()         {}

func (InitialVehicleState) VehicleVin() (value.Vin, error) {
	return value.Vin{}, fmt.Errorf("%w: vehicles don't have a VIN before they're created", ErrIllegalState)
}

func (InitialVehicleState) VehicleOwner() (value.UserId, error) {
	return value.UserId{}, fmt.Errorf("%w: vehicles don't have an owner before they're created", ErrIllegalState)
}

func (v InventoryVehicle) VehicleVin() (value.Vin, error)         { return v.VIN, nil }
func (v AvailableVehicle) VehicleVin() (value.Vin, error)         { return v.VIN, nil }
func (v OccupiedVehicle) VehicleVin() (value.Vin, error)          { return v.VIN, nil }
func (v OccupiedReturningVehicle) VehicleVin() (value.Vin, error) { return v.VIN, nil }
func (v ReturningVehicle) VehicleVin() (value.Vin, error)         { return v.VIN, nil }

func (v InventoryVehicle) VehicleOwner() (value.UserId, error)         { return v.Owner, nil }
func (v AvailableVehicle) VehicleOwner() (value.UserId, error)         { return v.Owner, nil }
func (v OccupiedVehicle) VehicleOwner() (value.UserId, error)          { return v.Owner, nil }
func (v OccupiedReturningVehicle) VehicleOwner() (value.UserId, error) { return v.Owner, nil }
func (v ReturningVehicle) VehicleOwner() (value.UserId, error)         { return v.Owner, nil }
