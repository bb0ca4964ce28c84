// Package saga translates facts from the ride domain into intentions in the
// vehicle domain. It is stateless: it never inspects vehicle state, so a
// produced command may legitimately be rejected downstream, and such
// rejections signal divergence and must be surfaced by the caller.
package saga

import (
	"autonomo/internal/domain/ride"
	"autonomo/internal/domain/vehicle"
)

// React maps a ride event to the vehicle commands it implies. Scheduling a
// ride occupies the vehicle; cancelling a scheduled ride or dropping the
// rider off frees it. Every other ride event maps to nothing.
func React(event ride.Event) []vehicle.Command {
	switch e := event.(type) {
	case ride.RideScheduled:
		return []vehicle.Command{vehicle.MarkVehicleOccupied{VIN: e.VIN}}
	case ride.ScheduledRideCancelled:
		return []vehicle.Command{vehicle.MarkVehicleUnoccupied{VIN: e.VIN}}
	case ride.RiderDroppedOff:
		return []vehicle.Command{vehicle.MarkVehicleUnoccupied{VIN: e.VIN}}
	default:
		return nil
	}
}
