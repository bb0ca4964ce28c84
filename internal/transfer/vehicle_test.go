package transfer

import (
	"errors"
	"testing"

	"autonomo/internal/domain/value"
	"autonomo/internal/domain/vehicle"
)

var testOwner, _ = value.ParseUserId("3d9f4c1a-6b2e-4f77-9c58-0a1b2c3d4e5f")

func TestVehicleEvent_RoundTrip(t *testing.T) {
	t.Parallel()

	events := []vehicle.Event{
		vehicle.VehicleAdded{VIN: testVin, Owner: testOwner},
		vehicle.VehicleAvailable{VIN: testVin, AvailableAt: testClock},
		vehicle.VehicleOccupied{VIN: testVin, OccupiedAt: testClock},
		vehicle.VehicleReturnRequested{VIN: testVin, ReturnRequestedAt: testClock},
		vehicle.VehicleReturning{VIN: testVin, ReturningAt: testClock},
		vehicle.VehicleReturned{VIN: testVin, ReturnedAt: testClock},
		vehicle.VehicleRemoved{VIN: testVin, Owner: testOwner, RemovedAt: testClock},
	}

	for _, event := range events {
		data, err := EncodeVehicleEvent(event)
		if err != nil {
			t.Fatalf("%T: encode failed: %v", event, err)
		}
		decoded, err := DecodeVehicleEvent(data)
		if err != nil {
			t.Fatalf("%T: decode failed: %v", event, err)
		}
		if decoded != event {
			t.Errorf("%T: expected %+v, got %+v", event, event, decoded)
		}
	}
}

func TestDecodeVehicleEvent_Invalid(t *testing.T) {
	t.Parallel()

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"type":"VehicleLaunched","vin":"1HGBH41JXMN109186"}`)
		if _, err := DecodeVehicleEvent(data); !errors.Is(err, ErrUnknownEventType) {
			t.Errorf("expected ErrUnknownEventType, got %v", err)
		}
	})

	t.Run("bad vin", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"type":"VehicleAvailable","vin":"short"}`)
		if _, err := DecodeVehicleEvent(data); !errors.Is(err, value.ErrInvalidVin) {
			t.Errorf("expected ErrInvalidVin, got %v", err)
		}
	})

	t.Run("added without owner", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"type":"VehicleAdded","vin":"1HGBH41JXMN109186"}`)
		if _, err := DecodeVehicleEvent(data); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestVehicleState_RoundTrip(t *testing.T) {
	t.Parallel()

	states := []vehicle.Vehicle{
		vehicle.InitialVehicleState{},
		vehicle.InventoryVehicle{VIN: testVin, Owner: testOwner},
		vehicle.AvailableVehicle{VIN: testVin, Owner: testOwner},
		vehicle.OccupiedVehicle{VIN: testVin, Owner: testOwner},
		vehicle.OccupiedReturningVehicle{VIN: testVin, Owner: testOwner},
		vehicle.ReturningVehicle{VIN: testVin, Owner: testOwner},
	}

	for _, state := range states {
		data, err := EncodeVehicleState(state)
		if err != nil {
			t.Fatalf("%T: encode failed: %v", state, err)
		}
		decoded, err := DecodeVehicleState(data)
		if err != nil {
			t.Fatalf("%T: decode failed: %v", state, err)
		}
		if decoded != state {
			t.Errorf("%T: expected %+v, got %+v", state, state, decoded)
		}
	}
}

func TestDecodeVehicleState_UnknownStatus(t *testing.T) {
	t.Parallel()

	if _, err := DecodeVehicleState([]byte(`{"status":"Charging"}`)); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}

	// The discriminator is checked before the fields, so an unknown status
	// wins even when the record's fields would not validate either.
	data := []byte(`{"status":"Charging","vin":"short","owner":"not-a-uuid"}`)
	if _, err := DecodeVehicleState(data); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestVehicleEventType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		event vehicle.Event
		want  string
	}{
		{vehicle.VehicleAdded{}, TypeVehicleAdded},
		{vehicle.VehicleAvailable{}, TypeVehicleAvailable},
		{vehicle.VehicleOccupied{}, TypeVehicleOccupied},
		{vehicle.VehicleReturnRequested{}, TypeVehicleReturnRequested},
		{vehicle.VehicleReturning{}, TypeVehicleReturning},
		{vehicle.VehicleReturned{}, TypeVehicleReturned},
		{vehicle.VehicleRemoved{}, TypeVehicleRemoved},
	}
	for _, tc := range testCases {
		if got := VehicleEventType(tc.event); got != tc.want {
			t.Errorf("%T: expected %q, got %q", tc.event, tc.want, got)
		}
	}
}
