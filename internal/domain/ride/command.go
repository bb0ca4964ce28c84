package ride

import (
	"fmt"
	"time"

	"autonomo/internal/domain/value"
)

// Command is the closed set of ride commands.
type Command interface {
	isRideCommand()
}

// RequestRide creates a new ride for a rider. It carries no ride id; the id
// is generated when the command is accepted.
type RequestRide struct {
	Rider       value.UserId
	Origin      value.GeoCoordinates
	Destination value.GeoCoordinates
	PickupTime  time.Time
}

// ScheduleRide assigns a vehicle to a requested ride.
type ScheduleRide struct {
	Ride       value.RideId
	VIN        value.Vin
	PickupTime time.Time
}

// ConfirmPickup confirms the assigned vehicle picked up the rider.
type ConfirmPickup struct {
	Ride           value.RideId
	VIN            value.Vin
	Rider          value.UserId
	PickupLocation value.GeoCoordinates
}

// EndRide completes an in-progress ride at the drop-off location.
type EndRide struct {
	Ride            value.RideId
	DropOffLocation value.GeoCoordinates
}

// CancelRide cancels a requested or scheduled ride.
type CancelRide struct {
	Ride value.RideId
}

func (RequestRide) isRideCommand()   {}
func (ScheduleRide) isRideCommand()  {}
func (ConfirmPickup) isRideCommand() {}
func (EndRide) isRideCommand()       {}
func (CancelRide) isRideCommand()    {}

// CommandError reports a command whose precondition on the current state does
// not hold. No events are produced and no state changes.
type CommandError struct {
	Command Command
	State   Ride
	Reason  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to apply ride command %T to %T: %s", e.Command, e.State, e.Reason)
}

func reject(cmd Command, state Ride, reason string) ([]Event, error) {
	return nil, &CommandError{Command: cmd, State: state, Reason: reason}
}
