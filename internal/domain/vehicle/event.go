package vehicle

import (
	"time"

	"autonomo/internal/domain/value"
)

// Event is the closed set of vehicle events, keyed by VIN.
type Event interface {
	// EventVin returns the VIN of the vehicle the event belongs to.
	EventVin() value.Vin

	isVehicleEvent()
}

// VehicleAdded records a vehicle entering the fleet inventory. It is the
// creating event for the aggregate.
type VehicleAdded struct {
	VIN   value.Vin
	Owner value.UserId
}

// VehicleAvailable records a vehicle entering (or re-entering) service.
type VehicleAvailable struct {
	VIN         value.Vin
	AvailableAt time.Time
}

// VehicleOccupied records a rider occupying an available vehicle.
type VehicleOccupied struct {
	VIN        value.Vin
	OccupiedAt time.Time
}

// VehicleReturnRequested records a return request against an occupied vehicle.
type VehicleReturnRequested struct {
	VIN               value.Vin
	ReturnRequestedAt time.Time
}

// VehicleReturning records an empty vehicle heading back to inventory.
type VehicleReturning struct {
	VIN         value.Vin
	ReturningAt time.Time
}

// VehicleReturned records a vehicle arriving back in inventory.
type VehicleReturned struct {
	VIN        value.Vin
	ReturnedAt time.Time
}

// VehicleRemoved records a vehicle leaving the fleet; the aggregate returns
// to its initial state.
type VehicleRemoved struct {
	VIN       value.Vin
	Owner     value.UserId
	RemovedAt time.Time
}

func (VehicleAdded) isVehicleEvent()           {}
func (VehicleAvailable) isVehicleEvent()       {}
func (VehicleOccupied) isVehicleEvent()        {}
func (VehicleReturnRequested) isVehicleEvent() {}
func (VehicleReturning) isVehicleEvent()       {}
func (VehicleReturned) isVehicleEvent()        {}
func (VehicleRemoved) isVehicleEvent()         {}

func (e VehicleAdded) EventVin() value.Vin           { return e.VIN }
func (e VehicleAvailable) EventVin() value.Vin       { return e.VIN }
func (e VehicleOccupied) EventVin() value.Vin        { return e.VIN }
func (e VehicleReturnRequested) EventVin() value.Vin { return e.VIN }
func (e VehicleReturning) EventVin() value.Vin       { return e.VIN }
func (e VehicleReturned) EventVin() value.Vin        { return e.VIN }
func (e VehicleRemoved) EventVin() value.Vin         { return e.VIN }
