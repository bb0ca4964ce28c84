package ride

import (
	"time"

	"autonomo/internal/domain/value"
)

// Event is the closed set of ride events. Every event carries the id of the
// ride it belongs to; the type name doubles as the wire discriminator.
type Event interface {
	// EventRideID returns the id of the ride the event belongs to.
	EventRideID() value.RideId

	isRideEvent()
}

// RideRequested records that a rider asked for a ride. It is the creating
// event: folding it into InitialRideState yields a RequestedRide.
type RideRequested struct {
	Ride        value.RideId
	Rider       value.UserId
	Origin      value.GeoCoordinates
	Destination value.GeoCoordinates
	PickupTime  time.Time
	RequestedAt time.Time
}

// RideScheduled records that a vehicle was assigned to a requested ride.
type RideScheduled struct {
	Ride        value.RideId
	VIN         value.Vin
	PickupTime  time.Time
	ScheduledAt time.Time
}

// RequestedRideCancelled records cancellation before a vehicle was assigned.
type RequestedRideCancelled struct {
	Ride        value.RideId
	CancelledAt time.Time
}

// ScheduledRideCancelled records cancellation after a vehicle was assigned;
// it carries the VIN so the vehicle can be released downstream.
type ScheduledRideCancelled struct {
	Ride        value.RideId
	VIN         value.Vin
	CancelledAt time.Time
}

// RiderPickedUp records that the assigned vehicle picked the rider up.
type RiderPickedUp struct {
	Ride           value.RideId
	VIN            value.Vin
	Rider          value.UserId
	PickupLocation value.GeoCoordinates
	PickedUpAt     time.Time
}

// RiderDroppedOff records that the ride ended at the drop-off location.
type RiderDroppedOff struct {
	Ride            value.RideId
	VIN             value.Vin
	DropOffLocation value.GeoCoordinates
	DroppedOffAt    time.Time
}

func (RideRequested) isRideEvent()          {}
func (RideScheduled) isRideEvent()          {}
func (RequestedRideCancelled) isRideEvent() {}
func (ScheduledRideCancelled) isRideEvent() {}
func (RiderPickedUp) isRideEvent()          {}
func (RiderDroppedOff) isRideEvent()        {}

func (e RideRequested) EventRideID() value.RideId          { return e.Ride }
func (e RideScheduled) EventRideID() value.RideId          { return e.Ride }
func (e RequestedRideCancelled) EventRideID() value.RideId { return e.Ride }
func (e ScheduledRideCancelled) EventRideID() value.RideId { return e.Ride }
func (e RiderPickedUp) EventRideID() value.RideId          { return e.Ride }
func (e RiderDroppedOff) EventRideID() value.RideId        { return e.Ride }
