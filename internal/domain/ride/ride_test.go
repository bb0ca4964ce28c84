package ride

import (
	"errors"
	"testing"
	"time"

	"autonomo/internal/domain/value"
)

var (
	testRider, _       = value.ParseUserId("7f3c2a44-9a6b-4d24-8f0e-52a1f0a5f0aa")
	testRideId, _      = value.ParseRideId("b7f9d7a2-1d4e-4d8b-b9b0-2f6c3d1e9c11")
	testVin, _         = value.NewVin("1HGBH41JXMN109186")
	testOrigin, _      = value.NewGeoCoordinates(52.52, 13.405)
	testDestination, _ = value.NewGeoCoordinates(48.137, 11.575)
)

var testClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// pin replaces the time and id sources so decisions are deterministic.
func pin(t *testing.T) {
	t.Helper()
	prevNow, prevNewId := now, newRideId
	now = func() time.Time { return testClock }
	newRideId = func() value.RideId { return testRideId }
	t.Cleanup(func() {
		now = prevNow
		newRideId = prevNewId
	})
}

func requestedRide() RequestedRide {
	return RequestedRide{
		ID:                  testRideId,
		Rider:               testRider,
		RequestedPickupTime: testClock.Add(time.Hour),
		PickupLocation:      testOrigin,
		DropOffLocation:     testDestination,
		RequestedAt:         testClock,
	}
}

func scheduledRide() ScheduledRide {
	return ScheduledRide{
		ID:                  testRideId,
		Rider:               testRider,
		ScheduledPickupTime: testClock.Add(time.Hour),
		PickupLocation:      testOrigin,
		DropOffLocation:     testDestination,
		VIN:                 testVin,
		ScheduledAt:         testClock,
	}
}

func inProgressRide() InProgressRide {
	return InProgressRide{
		ID:              testRideId,
		Rider:           testRider,
		PickupTime:      testClock.Add(time.Hour),
		PickupLocation:  testOrigin,
		DropOffLocation: testDestination,
		VIN:             testVin,
		ScheduledAt:     testClock,
		PickedUpAt:      testClock.Add(time.Hour),
	}
}

func TestDecide_RequestRide(t *testing.T) {
	pin(t)

	cmd := RequestRide{
		Rider:       testRider,
		Origin:      testOrigin,
		Destination: testDestination,
		PickupTime:  testClock.Add(time.Hour),
	}

	events, err := Decide(cmd, InitialRideState{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	want := RideRequested{
		Ride:        testRideId,
		Rider:       testRider,
		Origin:      testOrigin,
		Destination: testDestination,
		PickupTime:  testClock.Add(time.Hour),
		RequestedAt: testClock,
	}
	if events[0] != want {
		t.Errorf("expected %+v, got %+v", want, events[0])
	}
}

func TestDecide_RequestRide_RejectedOnExistingRide(t *testing.T) {
	pin(t)

	cmd := RequestRide{Rider: testRider, Origin: testOrigin, Destination: testDestination}

	states := []Ride{
		requestedRide(),
		scheduledRide(),
		inProgressRide(),
		CancelledRequestedRide{ID: testRideId},
	}
	for _, state := range states {
		events, err := Decide(cmd, state)
		if events != nil {
			t.Errorf("expected no events on %T, got %v", state, events)
		}
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Errorf("expected a *CommandError on %T, got %v", state, err)
		}
	}
}

func TestDecide_ScheduleRide(t *testing.T) {
	pin(t)

	pickup := testClock.Add(2 * time.Hour)
	events, err := Decide(ScheduleRide{Ride: testRideId, VIN: testVin, PickupTime: pickup}, requestedRide())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := RideScheduled{Ride: testRideId, VIN: testVin, PickupTime: pickup, ScheduledAt: testClock}
	if len(events) != 1 || events[0] != want {
		t.Errorf("expected [%+v], got %+v", want, events)
	}
}

func TestDecide_ScheduleRide_OnlyFromRequested(t *testing.T) {
	pin(t)

	cmd := ScheduleRide{Ride: testRideId, VIN: testVin}
	for _, state := range []Ride{InitialRideState{}, scheduledRide(), inProgressRide()} {
		if _, err := Decide(cmd, state); err == nil {
			t.Errorf("expected rejection on %T", state)
		}
	}
}

func TestDecide_ConfirmPickup(t *testing.T) {
	pin(t)

	cmd := ConfirmPickup{Ride: testRideId, VIN: testVin, Rider: testRider, PickupLocation: testOrigin}
	events, err := Decide(cmd, scheduledRide())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := RiderPickedUp{
		Ride:           testRideId,
		VIN:            testVin,
		Rider:          testRider,
		PickupLocation: testOrigin,
		PickedUpAt:     testClock,
	}
	if len(events) != 1 || events[0] != want {
		t.Errorf("expected [%+v], got %+v", want, events)
	}
}

func TestDecide_EndRide_UsesVinFromState(t *testing.T) {
	pin(t)

	events, err := Decide(EndRide{Ride: testRideId, DropOffLocation: testDestination}, inProgressRide())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := RiderDroppedOff{
		Ride:            testRideId,
		VIN:             testVin,
		DropOffLocation: testDestination,
		DroppedOffAt:    testClock,
	}
	if len(events) != 1 || events[0] != want {
		t.Errorf("expected [%+v], got %+v", want, events)
	}
}

func TestDecide_CancelRide(t *testing.T) {
	pin(t)

	t.Run("requested ride cancels without a VIN", func(t *testing.T) {
		events, err := Decide(CancelRide{Ride: testRideId}, requestedRide())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := RequestedRideCancelled{Ride: testRideId, CancelledAt: testClock}
		if len(events) != 1 || events[0] != want {
			t.Errorf("expected [%+v], got %+v", want, events)
		}
	})

	t.Run("scheduled ride cancels carrying the VIN", func(t *testing.T) {
		events, err := Decide(CancelRide{Ride: testRideId}, scheduledRide())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := ScheduledRideCancelled{Ride: testRideId, VIN: testVin, CancelledAt: testClock}
		if len(events) != 1 || events[0] != want {
			t.Errorf("expected [%+v], got %+v", want, events)
		}
	})

	t.Run("in-progress and terminal rides cannot cancel", func(t *testing.T) {
		states := []Ride{
			InitialRideState{},
			inProgressRide(),
			CompletedRide{ID: testRideId},
			CancelledRequestedRide{ID: testRideId},
			CancelledScheduledRide{ID: testRideId},
		}
		for _, state := range states {
			if _, err := Decide(CancelRide{Ride: testRideId}, state); err == nil {
				t.Errorf("expected rejection on %T", state)
			}
		}
	})
}

func TestDecide_RejectionReportsCommandAndState(t *testing.T) {
	pin(t)

	_, err := Decide(EndRide{Ride: testRideId}, requestedRide())

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected a *CommandError, got %v", err)
	}
	if _, ok := cmdErr.Command.(EndRide); !ok {
		t.Errorf("expected the rejected command in the error, got %T", cmdErr.Command)
	}
	if _, ok := cmdErr.State.(RequestedRide); !ok {
		t.Errorf("expected the rejecting state in the error, got %T", cmdErr.State)
	}
}

func TestEvolve_FullLifecycle(t *testing.T) {
	pin(t)

	pickedUpAt := testClock.Add(time.Hour)
	droppedOffAt := testClock.Add(2 * time.Hour)

	events := []Event{
		RideRequested{
			Ride:        testRideId,
			Rider:       testRider,
			Origin:      testOrigin,
			Destination: testDestination,
			PickupTime:  testClock.Add(time.Hour),
			RequestedAt: testClock,
		},
		RideScheduled{Ride: testRideId, VIN: testVin, PickupTime: testClock.Add(time.Hour), ScheduledAt: testClock},
		RiderPickedUp{Ride: testRideId, VIN: testVin, Rider: testRider, PickupLocation: testOrigin, PickedUpAt: pickedUpAt},
		RiderDroppedOff{Ride: testRideId, VIN: testVin, DropOffLocation: testDestination, DroppedOffAt: droppedOffAt},
	}

	var state Ride = InitialRideState{}
	for _, event := range events {
		state = Evolve(state, event)
	}

	want := CompletedRide{
		ID:              testRideId,
		Rider:           testRider,
		PickupTime:      testClock.Add(time.Hour),
		PickupLocation:  testOrigin,
		DropOffLocation: testDestination,
		VIN:             testVin,
		PickedUpAt:      pickedUpAt,
		DroppedOffAt:    droppedOffAt,
	}
	if state != want {
		t.Errorf("expected %+v, got %+v", want, state)
	}
}

func TestEvolve_CancellationPaths(t *testing.T) {
	pin(t)

	t.Run("requested ride cancels into CancelledRequestedRide", func(t *testing.T) {
		state := Evolve(requestedRide(), RequestedRideCancelled{Ride: testRideId, CancelledAt: testClock})
		cancelled, ok := state.(CancelledRequestedRide)
		if !ok {
			t.Fatalf("expected CancelledRequestedRide, got %T", state)
		}
		if cancelled.CancelledAt != testClock {
			t.Errorf("expected cancellation time %v, got %v", testClock, cancelled.CancelledAt)
		}
	})

	t.Run("scheduled ride cancels keeping the VIN", func(t *testing.T) {
		state := Evolve(scheduledRide(), ScheduledRideCancelled{Ride: testRideId, VIN: testVin, CancelledAt: testClock})
		cancelled, ok := state.(CancelledScheduledRide)
		if !ok {
			t.Fatalf("expected CancelledScheduledRide, got %T", state)
		}
		if cancelled.VIN != testVin {
			t.Errorf("expected VIN %v, got %v", testVin, cancelled.VIN)
		}
	})
}

func TestEvolve_IgnoresNonApplicableEvents(t *testing.T) {
	pin(t)

	// A scheduling event on the initial state changes nothing.
	state := Evolve(InitialRideState{}, RideScheduled{Ride: testRideId, VIN: testVin})
	if _, ok := state.(InitialRideState); !ok {
		t.Errorf("expected the initial state to be unchanged, got %T", state)
	}

	// A duplicate creation event on a requested ride changes nothing.
	requested := requestedRide()
	if got := Evolve(requested, RideRequested{Ride: testRideId}); got != Ride(requested) {
		t.Errorf("expected the requested state to be unchanged, got %+v", got)
	}
}

func TestEvolve_TerminalStatesAbsorbEverything(t *testing.T) {
	pin(t)

	terminals := []Ride{
		CompletedRide{ID: testRideId, VIN: testVin},
		CancelledRequestedRide{ID: testRideId},
		CancelledScheduledRide{ID: testRideId, VIN: testVin},
	}
	events := []Event{
		RideRequested{Ride: testRideId},
		RideScheduled{Ride: testRideId, VIN: testVin},
		RiderPickedUp{Ride: testRideId, VIN: testVin},
		RiderDroppedOff{Ride: testRideId, VIN: testVin},
		RequestedRideCancelled{Ride: testRideId},
		ScheduledRideCancelled{Ride: testRideId, VIN: testVin},
	}

	for _, terminal := range terminals {
		for _, event := range events {
			if got := Evolve(terminal, event); got != terminal {
				t.Errorf("expected %T to absorb %T, got %+v", terminal, event, got)
			}
		}
	}
}

func TestRideID_IllegalOnInitialState(t *testing.T) {
	t.Parallel()

	_, err := InitialRideState{}.RideID()
	if !errors.Is(err, ErrIllegalState) {
		t.Errorf("expected ErrIllegalState, got %v", err)
	}
}
