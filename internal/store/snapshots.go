// Package store keeps the materialized read models in Redis. States are
// stored as flat snapshot records (see internal/transfer) with last-writer-
// wins overwrite semantics; ordering is guaranteed by the per-aggregate lock,
// not by the store.
package store

import (
	"context"

	"github.com/redis/go-redis/v9"

	"autonomo/internal/domain/ride"
	"autonomo/internal/domain/vehicle"
	"autonomo/internal/transfer"
)

// Key prefixes
const (
	rideStatePrefix    = "readmodel:ride:"
	vehicleStatePrefix = "readmodel:vehicle:"
)

// RideStateStore persists ride read models keyed by ride id.
type RideStateStore struct {
	client *redis.Client
}

// NewRideStateStore creates a new RideStateStore.
func NewRideStateStore(client *redis.Client) *RideStateStore {
	return &RideStateStore{client: client}
}

// Get retrieves the current ride state. A missing key is not an error: the
// aggregate simply hasn't been created, so the initial state is returned.
func (s *RideStateStore) Get(ctx context.Context, id string) (ride.Ride, error) {
	data, err := s.client.Get(ctx, rideStatePrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ride.InitialRideState{}, nil
		}
		return nil, err
	}
	return transfer.DecodeRideState(data)
}

// Put overwrites the persisted ride state.
func (s *RideStateStore) Put(ctx context.Context, id string, state ride.Ride) error {
	data, err := transfer.EncodeRideState(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, rideStatePrefix+id, data, 0).Err()
}

// VehicleStateStore persists vehicle read models keyed by VIN.
type VehicleStateStore struct {
	client *redis.Client
}

// NewVehicleStateStore creates a new VehicleStateStore.
func NewVehicleStateStore(client *redis.Client) *VehicleStateStore {
	return &VehicleStateStore{client: client}
}

// Get retrieves the current vehicle state, or the initial state when the VIN
// is unknown. A removed vehicle is stored as the initial snapshot, so removal
// and absence read identically.
func (s *VehicleStateStore) Get(ctx context.Context, vin string) (vehicle.Vehicle, error) {
	data, err := s.client.Get(ctx, vehicleStatePrefix+vin).Bytes()
	if err != nil {
		if err == redis.Nil {
			return vehicle.InitialVehicleState{}, nil
		}
		return nil, err
	}
	return transfer.DecodeVehicleState(data)
}

// Put overwrites the persisted vehicle state.
func (s *VehicleStateStore) Put(ctx context.Context, vin string, state vehicle.Vehicle) error {
	data, err := transfer.EncodeVehicleState(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, vehicleStatePrefix+vin, data, 0).Err()
}
