package service

import "errors"

var (
	// ErrRideNotFound is returned when a command addresses a ride that has
	// never been created.
	ErrRideNotFound = errors.New("ride not found")

	// ErrVehicleNotFound is returned when a command addresses a VIN that has
	// never been added to the fleet.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrAggregateBusy is returned when another decision is already in
	// flight for the same aggregate id.
	ErrAggregateBusy = errors.New("another command is in flight for this aggregate")
)
