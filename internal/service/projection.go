package service

import (
	"context"

	"autonomo/internal/dispatch"
	"autonomo/internal/logger"
	"autonomo/internal/store"
	"autonomo/internal/transfer"
)

// ProjectionService folds published event streams into the read-model store.
// The command path already persists its own fold, and every transition here
// consumes its event, so re-applying a delivered event is identity and the
// projection stays correct under at-least-once delivery.
type ProjectionService struct {
	rides    store.RideStateStoreInterface
	vehicles store.VehicleStateStoreInterface
	log      *logger.Logger
}

// NewProjectionService creates a new ProjectionService.
func NewProjectionService(
	rides store.RideStateStoreInterface,
	vehicles store.VehicleStateStoreInterface,
	log *logger.Logger,
) *ProjectionService {
	return &ProjectionService{rides: rides, vehicles: vehicles, log: log}
}

// HandleRideEvent folds one delivered ride event into the ride read model.
func (p *ProjectionService) HandleRideEvent(ctx context.Context, key string, payload []byte) error {
	event, err := transfer.DecodeRideEvent(payload)
	if err != nil {
		return err
	}

	current, err := p.rides.Get(ctx, key)
	if err != nil {
		return err
	}

	next, err := dispatch.Evolve(dispatch.RideState(current), dispatch.RideEvent(event))
	if err != nil {
		return err
	}
	if err := p.rides.Put(ctx, key, next.Ride); err != nil {
		return err
	}
	p.log.Debug("ride projection updated", "ride", key, "type", transfer.RideEventType(event))
	return nil
}

// HandleVehicleEvent folds one delivered vehicle event into the vehicle read
// model.
func (p *ProjectionService) HandleVehicleEvent(ctx context.Context, key string, payload []byte) error {
	event, err := transfer.DecodeVehicleEvent(payload)
	if err != nil {
		return err
	}

	current, err := p.vehicles.Get(ctx, key)
	if err != nil {
		return err
	}

	next, err := dispatch.Evolve(dispatch.VehicleState(current), dispatch.VehicleEvent(event))
	if err != nil {
		return err
	}
	if err := p.vehicles.Put(ctx, key, next.Vehicle); err != nil {
		return err
	}
	p.log.Debug("vehicle projection updated", "vin", key, "type", transfer.VehicleEventType(event))
	return nil
}
