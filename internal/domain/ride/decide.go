package ride

import (
	"time"

	"autonomo/internal/domain/value"
)

// now stamps event times at decision time so a sequentially processed command
// stream yields a monotonic event history. Swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

// newRideId generates ids for accepted RequestRide commands. Swapped in tests.
var newRideId = value.NewRideId

// Decide validates cmd against state and returns the events it produces, or a
// *CommandError when the state does not accept the command. It never mutates
// state and performs no I/O.
func Decide(cmd Command, state Ride) ([]Event, error) {
	switch c := cmd.(type) {
	case RequestRide:
		return decideRequestRide(c, state)
	case ScheduleRide:
		return decideScheduleRide(c, state)
	case ConfirmPickup:
		return decideConfirmPickup(c, state)
	case EndRide:
		return decideEndRide(c, state)
	case CancelRide:
		return decideCancelRide(c, state)
	default:
		return reject(cmd, state, "unknown ride command")
	}
}

func decideRequestRide(c RequestRide, state Ride) ([]Event, error) {
	if _, ok := state.(InitialRideState); !ok {
		return reject(c, state, "ride already exists")
	}
	return []Event{RideRequested{
		Ride:        newRideId(),
		Rider:       c.Rider,
		Origin:      c.Origin,
		Destination: c.Destination,
		PickupTime:  c.PickupTime,
		RequestedAt: now(),
	}}, nil
}

func decideScheduleRide(c ScheduleRide, state Ride) ([]Event, error) {
	s, ok := state.(RequestedRide)
	if !ok {
		return reject(c, state, "only a requested ride can be scheduled")
	}
	return []Event{RideScheduled{
		Ride:        s.ID,
		VIN:         c.VIN,
		PickupTime:  c.PickupTime,
		ScheduledAt: now(),
	}}, nil
}

func decideConfirmPickup(c ConfirmPickup, state Ride) ([]Event, error) {
	s, ok := state.(ScheduledRide)
	if !ok {
		return reject(c, state, "only a scheduled ride can confirm pickup")
	}
	return []Event{RiderPickedUp{
		Ride:           s.ID,
		VIN:            c.VIN,
		Rider:          c.Rider,
		PickupLocation: c.PickupLocation,
		PickedUpAt:     now(),
	}}, nil
}

func decideEndRide(c EndRide, state Ride) ([]Event, error) {
	s, ok := state.(InProgressRide)
	if !ok {
		return reject(c, state, "only an in-progress ride can be ended")
	}
	return []Event{RiderDroppedOff{
		Ride:            s.ID,
		VIN:             s.VIN,
		DropOffLocation: c.DropOffLocation,
		DroppedOffAt:    now(),
	}}, nil
}

func decideCancelRide(c CancelRide, state Ride) ([]Event, error) {
	switch s := state.(type) {
	case RequestedRide:
		return []Event{RequestedRideCancelled{Ride: s.ID, CancelledAt: now()}}, nil
	case ScheduledRide:
		return []Event{ScheduledRideCancelled{Ride: s.ID, VIN: s.VIN, CancelledAt: now()}}, nil
	default:
		return reject(c, state, "can only cancel a requested or scheduled ride")
	}
}
