package transfer

import (
	"encoding/json"
	"fmt"
	"time"

	"autonomo/internal/domain/value"
	"autonomo/internal/domain/vehicle"
)

// Vehicle event type discriminators.
const (
	TypeVehicleAdded           = "VehicleAdded"
	TypeVehicleAvailable       = "VehicleAvailable"
	TypeVehicleOccupied        = "VehicleOccupied"
	TypeVehicleReturnRequested = "VehicleReturnRequested"
	TypeVehicleReturning       = "VehicleReturning"
	TypeVehicleReturned        = "VehicleReturned"
	TypeVehicleRemoved         = "VehicleRemoved"
)

// Vehicle snapshot status discriminators.
const (
	VehicleStatusInitial           = "Initial"
	VehicleStatusInInventory       = "InInventory"
	VehicleStatusAvailable         = "Available"
	VehicleStatusOccupied          = "Occupied"
	VehicleStatusOccupiedReturning = "OccupiedReturning"
	VehicleStatusReturning         = "Returning"
)

// vehicleEventRecord is the flat wire shape shared by all vehicle events.
type vehicleEventRecord struct {
	Type       string    `json:"type"`
	VIN        string    `json:"vin"`
	Owner      string    `json:"owner,omitempty"`
	OccurredAt time.Time `json:"occurred_at,omitzero"`
}

// VehicleEventType returns the wire discriminator for a vehicle event.
func VehicleEventType(e vehicle.Event) string {
	switch e.(type) {
	case vehicle.VehicleAdded:
		return TypeVehicleAdded
	case vehicle.VehicleAvailable:
		return TypeVehicleAvailable
	case vehicle.VehicleOccupied:
		return TypeVehicleOccupied
	case vehicle.VehicleReturnRequested:
		return TypeVehicleReturnRequested
	case vehicle.VehicleReturning:
		return TypeVehicleReturning
	case vehicle.VehicleReturned:
		return TypeVehicleReturned
	case vehicle.VehicleRemoved:
		return TypeVehicleRemoved
	default:
		return ""
	}
}

// EncodeVehicleEvent marshals a vehicle event into its wire record.
func EncodeVehicleEvent(e vehicle.Event) ([]byte, error) {
	var rec vehicleEventRecord
	switch ev := e.(type) {
	case vehicle.VehicleAdded:
		rec = vehicleEventRecord{Type: TypeVehicleAdded, VIN: ev.VIN.String(), Owner: ev.Owner.String()}
	case vehicle.VehicleAvailable:
		rec = vehicleEventRecord{Type: TypeVehicleAvailable, VIN: ev.VIN.String(), OccurredAt: ev.AvailableAt}
	case vehicle.VehicleOccupied:
		rec = vehicleEventRecord{Type: TypeVehicleOccupied, VIN: ev.VIN.String(), OccurredAt: ev.OccupiedAt}
	case vehicle.VehicleReturnRequested:
		rec = vehicleEventRecord{Type: TypeVehicleReturnRequested, VIN: ev.VIN.String(), OccurredAt: ev.ReturnRequestedAt}
	case vehicle.VehicleReturning:
		rec = vehicleEventRecord{Type: TypeVehicleReturning, VIN: ev.VIN.String(), OccurredAt: ev.ReturningAt}
	case vehicle.VehicleReturned:
		rec = vehicleEventRecord{Type: TypeVehicleReturned, VIN: ev.VIN.String(), OccurredAt: ev.ReturnedAt}
	case vehicle.VehicleRemoved:
		rec = vehicleEventRecord{Type: TypeVehicleRemoved, VIN: ev.VIN.String(), Owner: ev.Owner.String(), OccurredAt: ev.RemovedAt}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEventType, e)
	}
	return json.Marshal(rec)
}

// DecodeVehicleEvent unmarshals a wire record into a typed vehicle event.
func DecodeVehicleEvent(data []byte) (vehicle.Event, error) {
	var rec vehicleEventRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	vin, err := value.NewVin(rec.VIN)
	if err != nil {
		return nil, err
	}

	switch rec.Type {
	case TypeVehicleAdded:
		owner, err := value.ParseUserId(rec.Owner)
		if err != nil {
			return nil, err
		}
		return vehicle.VehicleAdded{VIN: vin, Owner: owner}, nil
	case TypeVehicleAvailable:
		return vehicle.VehicleAvailable{VIN: vin, AvailableAt: rec.OccurredAt}, nil
	case TypeVehicleOccupied:
		return vehicle.VehicleOccupied{VIN: vin, OccupiedAt: rec.OccurredAt}, nil
	case TypeVehicleReturnRequested:
		return vehicle.VehicleReturnRequested{VIN: vin, ReturnRequestedAt: rec.OccurredAt}, nil
	case TypeVehicleReturning:
		return vehicle.VehicleReturning{VIN: vin, ReturningAt: rec.OccurredAt}, nil
	case TypeVehicleReturned:
		return vehicle.VehicleReturned{VIN: vin, ReturnedAt: rec.OccurredAt}, nil
	case TypeVehicleRemoved:
		owner, err := value.ParseUserId(rec.Owner)
		if err != nil {
			return nil, err
		}
		return vehicle.VehicleRemoved{VIN: vin, Owner: owner, RemovedAt: rec.OccurredAt}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, rec.Type)
	}
}

// VehicleSnapshot is the persisted read-model record for a vehicle.
type VehicleSnapshot struct {
	Status string `json:"status"`
	VIN    string `json:"vin,omitempty"`
	Owner  string `json:"owner,omitempty"`
}

// VehicleSnapshotFromState flattens a vehicle read model into its snapshot.
func VehicleSnapshotFromState(state vehicle.Vehicle) (VehicleSnapshot, error) {
	if _, ok := state.(vehicle.InitialVehicleState); ok {
		return VehicleSnapshot{Status: VehicleStatusInitial}, nil
	}

	var status string
	switch state.(type) {
	case vehicle.InventoryVehicle:
		status = VehicleStatusInInventory
	case vehicle.AvailableVehicle:
		status = VehicleStatusAvailable
	case vehicle.OccupiedVehicle:
		status = VehicleStatusOccupied
	case vehicle.OccupiedReturningVehicle:
		status = VehicleStatusOccupiedReturning
	case vehicle.ReturningVehicle:
		status = VehicleStatusReturning
	default:
		return VehicleSnapshot{}, fmt.Errorf("%w: %T", ErrUnknownStatus, state)
	}

	vin, err := state.VehicleVin()
	if err != nil {
		return VehicleSnapshot{}, err
	}
	owner, err := state.VehicleOwner()
	if err != nil {
		return VehicleSnapshot{}, err
	}
	return VehicleSnapshot{Status: status, VIN: vin.String(), Owner: owner.String()}, nil
}

// VehicleStateFromSnapshot reconstructs the typed read model from its snapshot.
func VehicleStateFromSnapshot(snap VehicleSnapshot) (vehicle.Vehicle, error) {
	if snap.Status == VehicleStatusInitial {
		return vehicle.InitialVehicleState{}, nil
	}

	// Check the discriminator before the fields: a record outside the closed
	// status set must be reported as such, not as a field validation error.
	switch snap.Status {
	case VehicleStatusInInventory, VehicleStatusAvailable, VehicleStatusOccupied,
		VehicleStatusOccupiedReturning, VehicleStatusReturning:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, snap.Status)
	}

	vin, err := value.NewVin(snap.VIN)
	if err != nil {
		return nil, err
	}
	owner, err := value.ParseUserId(snap.Owner)
	if err != nil {
		return nil, err
	}

	switch snap.Status {
	case VehicleStatusInInventory:
		return vehicle.InventoryVehicle{VIN: vin, Owner: owner}, nil
	case VehicleStatusAvailable:
		return vehicle.AvailableVehicle{VIN: vin, Owner: owner}, nil
	case VehicleStatusOccupied:
		return vehicle.OccupiedVehicle{VIN: vin, Owner: owner}, nil
	case VehicleStatusOccupiedReturning:
		return vehicle.OccupiedReturningVehicle{VIN: vin, Owner: owner}, nil
	case VehicleStatusReturning:
		return vehicle.ReturningVehicle{VIN: vin, Owner: owner}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, snap.Status)
	}
}

// EncodeVehicleState marshals a vehicle read model into its snapshot record.
func EncodeVehicleState(state vehicle.Vehicle) ([]byte, error) {
	snap, err := VehicleSnapshotFromState(state)
	if err != nil {
		return nil, err
	}
	return json.Marshal(snap)
}

// DecodeVehicleState unmarshals a snapshot record into a typed read model.
func DecodeVehicleState(data []byte) (vehicle.Vehicle, error) {
	var snap VehicleSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return VehicleStateFromSnapshot(snap)
}
