package dispatch

import (
	"errors"
	"testing"
	"time"

	"autonomo/internal/domain/ride"
	"autonomo/internal/domain/value"
	"autonomo/internal/domain/vehicle"
)

var (
	testRideId, _ = value.ParseRideId("b7f9d7a2-1d4e-4d8b-b9b0-2f6c3d1e9c11")
	testVin, _    = value.NewVin("1HGBH41JXMN109186")
	testOwner, _  = value.ParseUserId("3d9f4c1a-6b2e-4f77-9c58-0a1b2c3d4e5f")
)

func TestDecide_RoutesToRideAggregate(t *testing.T) {
	t.Parallel()

	origin, _ := value.NewGeoCoordinates(52.52, 13.405)
	destination, _ := value.NewGeoCoordinates(48.137, 11.575)

	cmd := RideCommand(ride.RequestRide{
		Rider:       testOwner,
		Origin:      origin,
		Destination: destination,
		PickupTime:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	events, err := Decide(cmd, RideState(ride.InitialRideState{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if _, ok := events[0].Ride.(ride.RideRequested); !ok {
		t.Errorf("expected a RideRequested event, got %+v", events[0])
	}
	if events[0].Vehicle != nil {
		t.Error("expected the vehicle side of the union to be empty")
	}
}

func TestDecide_RoutesToVehicleAggregate(t *testing.T) {
	t.Parallel()

	cmd := VehicleCommand(vehicle.AddVehicle{VIN: testVin, Owner: testOwner})

	events, err := Decide(cmd, VehicleState(vehicle.InitialVehicleState{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if _, ok := events[0].Vehicle.(vehicle.VehicleAdded); !ok {
		t.Errorf("expected a VehicleAdded event, got %+v", events[0])
	}
}

func TestDecide_NilStateDefaultsToInitial(t *testing.T) {
	t.Parallel()

	// A zero State means both aggregates are at their initial state, so
	// AddVehicle must succeed without an explicit wrapper.
	events, err := Decide(VehicleCommand(vehicle.AddVehicle{VIN: testVin, Owner: testOwner}), State{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestDecide_WrapsRejections(t *testing.T) {
	t.Parallel()

	cmd := RideCommand(ride.ScheduleRide{Ride: testRideId, VIN: testVin})
	_, err := Decide(cmd, RideState(ride.InitialRideState{}))

	var dispatchErr *CommandError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("expected a *CommandError, got %v", err)
	}

	// The aggregate-specific rejection stays reachable through Unwrap.
	var rideErr *ride.CommandError
	if !errors.As(err, &rideErr) {
		t.Errorf("expected the ride rejection as the cause, got %v", dispatchErr.Cause)
	}
}

func TestDecide_EmptyUnion(t *testing.T) {
	t.Parallel()

	_, err := Decide(Command{}, State{})
	if !errors.Is(err, ErrEmptyUnion) {
		t.Errorf("expected ErrEmptyUnion, got %v", err)
	}
	var dispatchErr *CommandError
	if !errors.As(err, &dispatchErr) {
		t.Errorf("expected the fault wrapped in *CommandError, got %v", err)
	}
}

func TestEvolve_RoutesByAggregate(t *testing.T) {
	t.Parallel()

	state, err := Evolve(
		VehicleState(vehicle.InitialVehicleState{}),
		VehicleEvent(vehicle.VehicleAdded{VIN: testVin, Owner: testOwner}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := state.Vehicle.(vehicle.InventoryVehicle); !ok {
		t.Errorf("expected an InventoryVehicle, got %+v", state)
	}
	if state.Ride != nil {
		t.Error("expected the ride side of the union to be empty")
	}
}

func TestEvolve_AggregateMismatch(t *testing.T) {
	t.Parallel()

	_, err := Evolve(
		VehicleState(vehicle.InventoryVehicle{VIN: testVin, Owner: testOwner}),
		RideEvent(ride.RequestedRideCancelled{Ride: testRideId}),
	)
	if !errors.Is(err, ErrAggregateMismatch) {
		t.Fatalf("expected ErrAggregateMismatch, got %v", err)
	}
	var evolutionErr *EvolutionError
	if !errors.As(err, &evolutionErr) {
		t.Errorf("expected the fault wrapped in *EvolutionError, got %v", err)
	}
}

func TestEvolve_EmptyEventUnion(t *testing.T) {
	t.Parallel()

	_, err := Evolve(State{}, Event{})
	if !errors.Is(err, ErrEmptyUnion) {
		t.Errorf("expected ErrEmptyUnion, got %v", err)
	}
}

func TestReact(t *testing.T) {
	t.Parallel()

	t.Run("ride event maps to vehicle commands", func(t *testing.T) {
		t.Parallel()

		commands, err := React(RideEvent(ride.RideScheduled{Ride: testRideId, VIN: testVin}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(commands) != 1 {
			t.Fatalf("expected 1 command, got %d", len(commands))
		}
		want := vehicle.MarkVehicleOccupied{VIN: testVin}
		if commands[0].Vehicle != vehicle.Command(want) {
			t.Errorf("expected %+v, got %+v", want, commands[0].Vehicle)
		}
	})

	t.Run("vehicle event maps to nothing", func(t *testing.T) {
		t.Parallel()

		commands, err := React(VehicleEvent(vehicle.VehicleOccupied{VIN: testVin}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if commands != nil {
			t.Errorf("expected no commands, got %v", commands)
		}
	})

	t.Run("empty union is a fault", func(t *testing.T) {
		t.Parallel()

		if _, err := React(Event{}); !errors.Is(err, ErrEmptyUnion) {
			t.Errorf("expected ErrEmptyUnion, got %v", err)
		}
	})
}
