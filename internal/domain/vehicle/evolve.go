package vehicle

// Evolve folds a single event into state and returns the next state. Events
// that don't apply to the current variant leave it unchanged. Evolve is
// total: it never fails.
func Evolve(state Vehicle, event Event) Vehicle {
	switch s := state.(type) {
	case InitialVehicleState:
		if e, ok := event.(VehicleAdded); ok {
			return InventoryVehicle{VIN: e.VIN, Owner: e.Owner}
		}
		return s

	case InventoryVehicle:
		switch event.(type) {
		case VehicleAvailable:
			return AvailableVehicle{VIN: s.VIN, Owner: s.Owner}
		case VehicleRemoved:
			return InitialVehicleState{}
		}
		return s

	case AvailableVehicle:
		switch event.(type) {
		case VehicleOccupied:
			return OccupiedVehicle{VIN: s.VIN, Owner: s.Owner}
		case VehicleReturning:
			return ReturningVehicle{VIN: s.VIN, Owner: s.Owner}
		}
		return s

	case OccupiedVehicle:
		switch event.(type) {
		case VehicleAvailable:
			return AvailableVehicle{VIN: s.VIN, Owner: s.Owner}
		case VehicleReturnRequested:
			return OccupiedReturningVehicle{VIN: s.VIN, Owner: s.Owner}
		}
		return s

	case OccupiedReturningVehicle:
		if _, ok := event.(VehicleReturning); ok {
			return ReturningVehicle{VIN: s.VIN, Owner: s.Owner}
		}
		return s

	case ReturningVehicle:
		if _, ok := event.(VehicleReturned); ok {
			return InventoryVehicle{VIN: s.VIN, Owner: s.Owner}
		}
		return s

	default:
		return state
	}
}
