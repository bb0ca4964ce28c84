package ride

// Evolve folds a single event into state and returns the next state. Events
// that don't apply to the current variant leave it unchanged; terminal states
// absorb everything. Evolve is total: it never fails, so out-of-order or
// duplicate delivery of unrelated events is tolerated.
func Evolve(state Ride, event Event) Ride {
	switch s := state.(type) {
	case InitialRideState:
		if e, ok := event.(RideRequested); ok {
			return RequestedRide{
				ID:                  e.Ride,
				Rider:               e.Rider,
				RequestedPickupTime: e.PickupTime,
				PickupLocation:      e.Origin,
				DropOffLocation:     e.Destination,
				RequestedAt:         e.RequestedAt,
			}
		}
		return s

	case RequestedRide:
		switch e := event.(type) {
		case RideScheduled:
			return ScheduledRide{
				ID:                  s.ID,
				Rider:               s.Rider,
				ScheduledPickupTime: e.PickupTime,
				PickupLocation:      s.PickupLocation,
				DropOffLocation:     s.DropOffLocation,
				VIN:                 e.VIN,
				ScheduledAt:         e.ScheduledAt,
			}
		case RequestedRideCancelled:
			return CancelledRequestedRide{
				ID:                  s.ID,
				Rider:               s.Rider,
				RequestedPickupTime: s.RequestedPickupTime,
				PickupLocation:      s.PickupLocation,
				DropOffLocation:     s.DropOffLocation,
				CancelledAt:         e.CancelledAt,
			}
		}
		return s

	case ScheduledRide:
		switch e := event.(type) {
		case RiderPickedUp:
			return InProgressRide{
				ID:              s.ID,
				Rider:           s.Rider,
				PickupTime:      s.ScheduledPickupTime,
				PickupLocation:  e.PickupLocation,
				DropOffLocation: s.DropOffLocation,
				VIN:             s.VIN,
				ScheduledAt:     s.ScheduledAt,
				PickedUpAt:      e.PickedUpAt,
			}
		case ScheduledRideCancelled:
			return CancelledScheduledRide{
				ID:                  s.ID,
				Rider:               s.Rider,
				ScheduledPickupTime: s.ScheduledPickupTime,
				PickupLocation:      s.PickupLocation,
				DropOffLocation:     s.DropOffLocation,
				VIN:                 s.VIN,
				ScheduledAt:         s.ScheduledAt,
				CancelledAt:         e.CancelledAt,
			}
		}
		return s

	case InProgressRide:
		if e, ok := event.(RiderDroppedOff); ok {
			return CompletedRide{
				ID:              s.ID,
				Rider:           s.Rider,
				PickupTime:      s.PickupTime,
				PickupLocation:  s.PickupLocation,
				DropOffLocation: e.DropOffLocation,
				VIN:             s.VIN,
				PickedUpAt:      s.PickedUpAt,
				DroppedOffAt:    e.DroppedOffAt,
			}
		}
		return s

	case CompletedRide, CancelledRequestedRide, CancelledScheduledRide:
		// Terminal.
		return s

	default:
		return state
	}
}
