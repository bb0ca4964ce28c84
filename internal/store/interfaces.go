package store

import (
	"context"
	"time"

	"autonomo/internal/domain/ride"
	"autonomo/internal/domain/vehicle"
)

// RideStateStoreInterface defines read-model access for rides.
type RideStateStoreInterface interface {
	// Get returns the persisted state for the id, or InitialRideState when
	// none has been persisted yet.
	Get(ctx context.Context, id string) (ride.Ride, error)
	Put(ctx context.Context, id string, state ride.Ride) error
}

// VehicleStateStoreInterface defines read-model access for vehicles.
type VehicleStateStoreInterface interface {
	Get(ctx context.Context, vin string) (vehicle.Vehicle, error)
	Put(ctx context.Context, vin string, state vehicle.Vehicle) error
}

// LockStoreInterface serializes decisions per aggregate id: the command path
// must hold the lock while it decides, persists and publishes.
type LockStoreInterface interface {
	AcquireAggregateLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseAggregateLock(ctx context.Context, key string) error
}

// Ensure concrete types implement interfaces.
var (
	_ RideStateStoreInterface    = (*RideStateStore)(nil)
	_ VehicleStateStoreInterface = (*VehicleStateStore)(nil)
	_ LockStoreInterface         = (*LockStore)(nil)
)
