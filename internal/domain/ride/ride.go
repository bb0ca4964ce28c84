// Package ride implements the ride aggregate: a closed set of lifecycle
// states, the commands that act on them and the events they emit. State is
// only ever derived by folding events with Evolve; Decide never mutates.
package ride

import (
	"errors"
	"fmt"
	"time"

	"autonomo/internal/domain/value"
)

// ErrIllegalState is returned when an attribute is read from a state variant
// that does not carry it yet.
var ErrIllegalState = errors.New("illegal ride state access")

// Ride is the closed set of ride lifecycle states. The only implementations
// live in this package.
type Ride interface {
	// RideID returns the aggregate id, or ErrIllegalState on InitialRideState.
	RideID() (value.RideId, error)

	isRide()
}

// InitialRideState is the zero state of every ride before its first event.
type InitialRideState struct{}

// RequestedRide is a ride a rider has asked for but no vehicle is assigned to.
type RequestedRide struct {
	ID                  value.RideId
	Rider               value.UserId
	RequestedPickupTime time.Time
	PickupLocation      value.GeoCoordinates
	DropOffLocation     value.GeoCoordinates
	RequestedAt         time.Time
}

// ScheduledRide is a requested ride with a vehicle assigned.
type ScheduledRide struct {
	ID                  value.RideId
	Rider               value.UserId
	ScheduledPickupTime time.Time
	PickupLocation      value.GeoCoordinates
	DropOffLocation     value.GeoCoordinates
	VIN                 value.Vin
	ScheduledAt         time.Time
}

// InProgressRide is a ride whose rider has been picked up.
type InProgressRide struct {
	ID              value.RideId
	Rider           value.UserId
	PickupTime      time.Time
	PickupLocation  value.GeoCoordinates
	DropOffLocation value.GeoCoordinates
	VIN             value.Vin
	ScheduledAt     time.Time
	PickedUpAt      time.Time
}

// CompletedRide is a terminal state: the rider was dropped off.
type CompletedRide struct {
	ID              value.RideId
	Rider           value.UserId
	PickupTime      time.Time
	PickupLocation  value.GeoCoordinates
	DropOffLocation value.GeoCoordinates
	VIN             value.Vin
	PickedUpAt      time.Time
	DroppedOffAt    time.Time
}

// CancelledRequestedRide is a terminal state: cancelled before scheduling.
type CancelledRequestedRide struct {
	ID                  value.RideId
	Rider               value.UserId
	RequestedPickupTime time.Time
	PickupLocation      value.GeoCoordinates
	DropOffLocation     value.GeoCoordinates
	CancelledAt         time.Time
}

// CancelledScheduledRide is a terminal state: cancelled after a vehicle was
// assigned, so it still carries the VIN that has to be released.
type CancelledScheduledRide struct {
	ID                  value.RideId
	Rider               value.UserId
	ScheduledPickupTime time.Time
	PickupLocation      value.GeoCoordinates
	DropOffLocation     value.GeoCoordinates
	VIN                 value.Vin
	ScheduledAt         time.Time
	CancelledAt         time.Time
}

func (InitialRideState) isRide()       {}
func (RequestedRide) isRide()          {}
func (ScheduledRide) isRide()          {}
func (InProgressRide) isRide()         {}
func (CompletedRide) isRide()          {}
func (CancelledRequestedRide) isRide() {}
func (CancelledScheduledRide) isRide() {}

// RideID on the initial state fails: rides don't have an id before they're
// created.
func (InitialRideState) RideID() (value.RideId, error) {
	return value.RideId{}, fmt.Errorf("%w: rides don't have an id before they're created", ErrIllegalState)
}

func (r RequestedRide) RideID() (value.RideId, error)          { return r.ID, nil }
func (r ScheduledRide) RideID() (value.RideId, error)          { return r.ID, nil }
func (r InProgressRide) RideID() (value.RideId, error)         { return r.ID, nil }
func (r CompletedRide) RideID() (value.RideId, error)          { return r.ID, nil }
func (r CancelledRequestedRide) RideID() (value.RideId, error) { return r.ID, nil }
func (r CancelledScheduledRide) RideID() (value.RideId, error) { return r.ID, nil }
