package vehicle

import "time"

// now stamps event times at decision time. Swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

// Decide validates cmd against state and returns the events it produces, or a
// *CommandError when the state does not accept the command. It never mutates
// state and performs no I/O.
func Decide(cmd Command, state Vehicle) ([]Event, error) {
	switch c := cmd.(type) {
	case AddVehicle:
		if _, ok := state.(InitialVehicleState); !ok {
			return reject(c, state, "vehicle already exists")
		}
		return []Event{VehicleAdded{VIN: c.VIN, Owner: c.Owner}}, nil

	case MakeVehicleAvailable:
		if _, ok := state.(InventoryVehicle); !ok {
			return reject(c, state, "only vehicles in the inventory can be made available")
		}
		return []Event{VehicleAvailable{VIN: c.VIN, AvailableAt: now()}}, nil

	case MarkVehicleOccupied:
		if _, ok := state.(AvailableVehicle); !ok {
			return reject(c, state, "only available vehicles can become occupied")
		}
		return []Event{VehicleOccupied{VIN: c.VIN, OccupiedAt: now()}}, nil

	case MarkVehicleUnoccupied:
		switch state.(type) {
		case OccupiedVehicle:
			return []Event{VehicleAvailable{VIN: c.VIN, AvailableAt: now()}}, nil
		case OccupiedReturningVehicle:
			return []Event{VehicleReturning{VIN: c.VIN, ReturningAt: now()}}, nil
		default:
			return reject(c, state, "only occupied or occupied-returning vehicles can be marked as unoccupied")
		}

	case RequestVehicleReturn:
		switch state.(type) {
		case AvailableVehicle:
			return []Event{VehicleReturning{VIN: c.VIN, ReturningAt: now()}}, nil
		case OccupiedVehicle:
			return []Event{VehicleReturnRequested{VIN: c.VIN, ReturnRequestedAt: now()}}, nil
		default:
			return reject(c, state, "only available or occupied vehicles can be requested for return")
		}

	case ConfirmVehicleReturn:
		if _, ok := state.(ReturningVehicle); !ok {
			return reject(c, state, "only vehicles being returned can be confirmed as returned")
		}
		return []Event{VehicleReturned{VIN: c.VIN, ReturnedAt: now()}}, nil

	case RemoveVehicle:
		if _, ok := state.(InventoryVehicle); !ok {
			return reject(c, state, "only vehicles in the inventory can be removed")
		}
		return []Event{VehicleRemoved{VIN: c.VIN, Owner: c.Owner, RemovedAt: now()}}, nil

	default:
		return reject(cmd, state, "unknown vehicle command")
	}
}
