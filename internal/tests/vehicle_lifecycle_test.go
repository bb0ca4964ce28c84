package tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"autonomo/internal/broker"
	"autonomo/internal/dispatch"
	"autonomo/internal/domain/value"
	"autonomo/internal/domain/vehicle"
	"autonomo/internal/logger"
	"autonomo/internal/service"
	"autonomo/internal/transfer"
)

func newVehicleService() (*service.VehicleService, *MockVehicleStateStore, *MockLockStore, *MockEventJournal, *MockPublisher) {
	states := NewMockVehicleStateStore()
	locks := NewMockLockStore()
	journal := NewMockEventJournal()
	publisher := NewMockPublisher()
	svc := service.NewVehicleService(states, locks, journal, publisher, logger.NewNop())
	return svc, states, locks, journal, publisher
}

// ──────────────────────────────────────────────
// 1. VEHICLE LIFECYCLE
// ──────────────────────────────────────────────

func TestVehicleLifecycle_AddToRemoval(t *testing.T) {
	t.Parallel()

	svc, _, _, journal, publisher := newVehicleService()
	ctx := context.Background()

	vin := mustVin(t, "5YJSA1E26HF000337")
	owner := value.NewUserId()

	steps := []struct {
		cmd  vehicle.Command
		want vehicle.Vehicle
	}{
		{vehicle.AddVehicle{VIN: vin, Owner: owner}, vehicle.InventoryVehicle{VIN: vin, Owner: owner}},
		{vehicle.MakeVehicleAvailable{VIN: vin}, vehicle.AvailableVehicle{VIN: vin, Owner: owner}},
		{vehicle.MarkVehicleOccupied{VIN: vin}, vehicle.OccupiedVehicle{VIN: vin, Owner: owner}},
		{vehicle.RequestVehicleReturn{VIN: vin}, vehicle.OccupiedReturningVehicle{VIN: vin, Owner: owner}},
		{vehicle.MarkVehicleUnoccupied{VIN: vin}, vehicle.ReturningVehicle{VIN: vin, Owner: owner}},
		{vehicle.ConfirmVehicleReturn{VIN: vin}, vehicle.InventoryVehicle{VIN: vin, Owner: owner}},
		{vehicle.RemoveVehicle{VIN: vin, Owner: owner}, vehicle.InitialVehicleState{}},
	}

	for i, step := range steps {
		state, err := svc.Execute(ctx, step.cmd)
		if err != nil {
			t.Fatalf("step %d (%T): unexpected error: %v", i, step.cmd, err)
		}
		if state != step.want {
			t.Fatalf("step %d (%T): expected %+v, got %+v", i, step.cmd, step.want, state)
		}
	}

	wantHistory := []string{
		transfer.TypeVehicleAdded,
		transfer.TypeVehicleAvailable,
		transfer.TypeVehicleOccupied,
		transfer.TypeVehicleReturnRequested,
		transfer.TypeVehicleReturning,
		transfer.TypeVehicleReturned,
		transfer.TypeVehicleRemoved,
	}
	history := journal.History(vin.String())
	if len(history) != len(wantHistory) {
		t.Fatalf("expected %d journaled events, got %v", len(wantHistory), history)
	}
	for i := range wantHistory {
		if history[i] != wantHistory[i] {
			t.Errorf("journal entry %d: expected %q, got %q", i, wantHistory[i], history[i])
		}
	}

	for _, msg := range publisher.Messages() {
		if msg.Exchange != broker.VehicleEventsExchange {
			t.Errorf("expected exchange %q, got %q", broker.VehicleEventsExchange, msg.Exchange)
		}
		if msg.Key != vin.String() {
			t.Errorf("expected routing key %q, got %q", vin.String(), msg.Key)
		}
	}

	// A removed vehicle looks like it never existed.
	if _, err := svc.GetVehicle(ctx, vin.String()); !errors.Is(err, service.ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound after removal, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 2. VEHICLE COMMAND EDGE CASES
// ──────────────────────────────────────────────

func TestVehicleExecute_UnknownVin(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newVehicleService()

	vin := mustVin(t, "1HGBH41JXMN109186")
	_, err := svc.Execute(context.Background(), vehicle.MakeVehicleAvailable{VIN: vin})
	if !errors.Is(err, service.ErrVehicleNotFound) {
		t.Errorf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestVehicleExecute_DuplicateAddRejected(t *testing.T) {
	t.Parallel()

	svc, states, _, _, _ := newVehicleService()
	ctx := context.Background()

	vin := mustVin(t, "1HGBH41JXMN109186")
	owner := value.NewUserId()
	states.SetState(vin.String(), vehicle.InventoryVehicle{VIN: vin, Owner: owner})

	_, err := svc.Execute(ctx, vehicle.AddVehicle{VIN: vin, Owner: owner})

	var cmdErr *dispatch.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected a *dispatch.CommandError, got %v", err)
	}
	var vehicleErr *vehicle.CommandError
	if !errors.As(err, &vehicleErr) {
		t.Errorf("expected the vehicle rejection as the cause, got %v", err)
	}
}

func TestVehicleExecute_AggregateBusy(t *testing.T) {
	t.Parallel()

	svc, _, locks, _, _ := newVehicleService()
	locks.DenyAcquire = true

	vin := mustVin(t, "1HGBH41JXMN109186")
	_, err := svc.Execute(context.Background(), vehicle.AddVehicle{VIN: vin, Owner: value.NewUserId()})
	if !errors.Is(err, service.ErrAggregateBusy) {
		t.Errorf("expected ErrAggregateBusy, got %v", err)
	}
}

func TestVehicleExecute_RejectionPersistsNothing(t *testing.T) {
	t.Parallel()

	svc, states, _, journal, publisher := newVehicleService()
	ctx := context.Background()

	vin := mustVin(t, "1HGBH41JXMN109186")
	states.SetState(vin.String(), vehicle.InventoryVehicle{VIN: vin, Owner: value.NewUserId()})
	putsBefore := atomic.LoadInt32(&states.PutCallCount)

	// An inventory vehicle cannot be occupied.
	if _, err := svc.Execute(ctx, vehicle.MarkVehicleOccupied{VIN: vin}); err == nil {
		t.Fatal("expected a rejection")
	}
	if atomic.LoadInt32(&journal.AppendCallCount) != 0 {
		t.Error("expected nothing journaled on rejection")
	}
	if atomic.LoadInt32(&publisher.PublishCallCount) != 0 {
		t.Error("expected nothing published on rejection")
	}
	if atomic.LoadInt32(&states.PutCallCount) != putsBefore {
		t.Error("expected no state written on rejection")
	}
}

// ──────────────────────────────────────────────
// 3. READ MODEL REBUILD
// ──────────────────────────────────────────────

func TestRebuildVehicle_RefoldsJournal(t *testing.T) {
	t.Parallel()

	svc, states, _, _, _ := newVehicleService()
	ctx := context.Background()

	vin := mustVin(t, "5YJSA1E26HF000337")
	owner := value.NewUserId()

	commands := []vehicle.Command{
		vehicle.AddVehicle{VIN: vin, Owner: owner},
		vehicle.MakeVehicleAvailable{VIN: vin},
		vehicle.MarkVehicleOccupied{VIN: vin},
	}
	for _, cmd := range commands {
		if _, err := svc.Execute(ctx, cmd); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Corrupt the read model, then rebuild from the journal.
	states.SetState(vin.String(), vehicle.InitialVehicleState{})

	rebuilt, err := svc.RebuildVehicle(ctx, vin.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := vehicle.OccupiedVehicle{VIN: vin, Owner: owner}
	if rebuilt != vehicle.Vehicle(want) {
		t.Errorf("expected %+v after rebuild, got %+v", want, rebuilt)
	}
}
