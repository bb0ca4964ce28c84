// Package dispatch is the uniform entry point over both aggregates. Commands,
// events and states are carried in tagged unions so callers route by
// aggregate without type-switching over domain variants, and all aggregate
// errors are normalized into two stable categories: *CommandError and
// *EvolutionError.
package dispatch

import (
	"errors"
	"fmt"

	"autonomo/internal/domain/ride"
	"autonomo/internal/domain/saga"
	"autonomo/internal/domain/vehicle"
)

var (
	// ErrEmptyUnion is returned when a tagged union carries neither side.
	ErrEmptyUnion = errors.New("dispatch: empty aggregate union")

	// ErrAggregateMismatch is returned when an event is folded into a state
	// that belongs to the other aggregate.
	ErrAggregateMismatch = errors.New("dispatch: event aggregate does not match state aggregate")
)

// Command is a ride or vehicle command; exactly one side is set.
type Command struct {
	Ride    ride.Command
	Vehicle vehicle.Command
}

// RideCommand wraps a ride command for dispatch.
func RideCommand(c ride.Command) Command { return Command{Ride: c} }

// VehicleCommand wraps a vehicle command for dispatch.
func VehicleCommand(c vehicle.Command) Command { return Command{Vehicle: c} }

// Event is a ride or vehicle event; exactly one side is set.
type Event struct {
	Ride    ride.Event
	Vehicle vehicle.Event
}

// RideEvent wraps a ride event for dispatch.
func RideEvent(e ride.Event) Event { return Event{Ride: e} }

// VehicleEvent wraps a vehicle event for dispatch.
func VehicleEvent(e vehicle.Event) Event { return Event{Vehicle: e} }

// State is a ride or vehicle read model; exactly one side is set.
type State struct {
	Ride    ride.Ride
	Vehicle vehicle.Vehicle
}

// RideState wraps a ride read model for dispatch.
func RideState(s ride.Ride) State { return State{Ride: s} }

// VehicleState wraps a vehicle read model for dispatch.
func VehicleState(s vehicle.Vehicle) State { return State{Vehicle: s} }

// CommandError wraps any failure to decide a command, preserving the
// aggregate-specific cause for errors.As.
type CommandError struct {
	Cause error
}

func (e *CommandError) Error() string { return fmt.Sprintf("failed to decide command: %v", e.Cause) }
func (e *CommandError) Unwrap() error { return e.Cause }

// EvolutionError wraps an internal fault during folding. A non-applicable
// event is not a fault; it evolves by identity.
type EvolutionError struct {
	Cause error
}

func (e *EvolutionError) Error() string { return fmt.Sprintf("failed to evolve state: %v", e.Cause) }
func (e *EvolutionError) Unwrap() error { return e.Cause }

// Decide routes the command to its aggregate's decide function. Rejections
// and routing faults come back as *CommandError.
func Decide(cmd Command, state State) ([]Event, error) {
	switch {
	case cmd.Ride != nil:
		current := state.Ride
		if current == nil {
			current = ride.InitialRideState{}
		}
		events, err := ride.Decide(cmd.Ride, current)
		if err != nil {
			return nil, &CommandError{Cause: err}
		}
		out := make([]Event, 0, len(events))
		for _, e := range events {
			out = append(out, RideEvent(e))
		}
		return out, nil

	case cmd.Vehicle != nil:
		current := state.Vehicle
		if current == nil {
			current = vehicle.InitialVehicleState{}
		}
		events, err := vehicle.Decide(cmd.Vehicle, current)
		if err != nil {
			return nil, &CommandError{Cause: err}
		}
		out := make([]Event, 0, len(events))
		for _, e := range events {
			out = append(out, VehicleEvent(e))
		}
		return out, nil

	default:
		return nil, &CommandError{Cause: ErrEmptyUnion}
	}
}

// Evolve routes the event to its aggregate's fold function. Feeding an event
// into the other aggregate's state is a caller routing fault and comes back
// as *EvolutionError.
func Evolve(state State, event Event) (State, error) {
	switch {
	case event.Ride != nil:
		if state.Vehicle != nil {
			return State{}, &EvolutionError{Cause: ErrAggregateMismatch}
		}
		current := state.Ride
		if current == nil {
			current = ride.InitialRideState{}
		}
		return RideState(ride.Evolve(current, event.Ride)), nil

	case event.Vehicle != nil:
		if state.Ride != nil {
			return State{}, &EvolutionError{Cause: ErrAggregateMismatch}
		}
		current := state.Vehicle
		if current == nil {
			current = vehicle.InitialVehicleState{}
		}
		return VehicleState(vehicle.Evolve(current, event.Vehicle)), nil

	default:
		return State{}, &EvolutionError{Cause: ErrEmptyUnion}
	}
}

// React maps a ride event to the vehicle commands the saga implies. Vehicle
// events never produce commands.
func React(event Event) ([]Command, error) {
	switch {
	case event.Ride != nil:
		commands := saga.React(event.Ride)
		out := make([]Command, 0, len(commands))
		for _, c := range commands {
			out = append(out, VehicleCommand(c))
		}
		return out, nil

	case event.Vehicle != nil:
		return nil, nil

	default:
		return nil, &CommandError{Cause: ErrEmptyUnion}
	}
}
