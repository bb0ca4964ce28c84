package service

import (
	"context"

	"autonomo/internal/broker"
	"autonomo/internal/dispatch"
	"autonomo/internal/domain/vehicle"
	"autonomo/internal/logger"
	"autonomo/internal/repository"
	"autonomo/internal/store"
	"autonomo/internal/transfer"
)

// VehicleService executes vehicle commands with the same lock-decide-journal-
// publish-fold cycle as RideService, keyed by VIN.
type VehicleService struct {
	states    store.VehicleStateStoreInterface
	locks     store.LockStoreInterface
	journal   repository.EventJournal
	publisher broker.PublisherInterface
	log       *logger.Logger
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(
	states store.VehicleStateStoreInterface,
	locks store.LockStoreInterface,
	journal repository.EventJournal,
	publisher broker.PublisherInterface,
	log *logger.Logger,
) *VehicleService {
	return &VehicleService{
		states:    states,
		locks:     locks,
		journal:   journal,
		publisher: publisher,
		log:       log,
	}
}

// Execute runs a command against the vehicle it addresses. AddVehicle is the
// only command accepted for a VIN with no state yet; every other command on
// an unknown VIN fails with ErrVehicleNotFound before reaching the decider.
func (s *VehicleService) Execute(ctx context.Context, cmd vehicle.Command) (vehicle.Vehicle, error) {
	vin := cmd.CommandVin().String()

	ok, err := s.locks.AcquireAggregateLock(ctx, "vehicle:"+vin, aggregateLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAggregateBusy
	}
	defer func() {
		if err := s.locks.ReleaseAggregateLock(ctx, "vehicle:"+vin); err != nil {
			s.log.Warn("failed to release vehicle lock", "vin", vin, "error", err)
		}
	}()

	state, err := s.states.Get(ctx, vin)
	if err != nil {
		return nil, err
	}
	if _, initial := state.(vehicle.InitialVehicleState); initial {
		if _, adding := cmd.(vehicle.AddVehicle); !adding {
			return nil, ErrVehicleNotFound
		}
	}

	events, err := vehicle.Decide(cmd, state)
	if err != nil {
		return nil, &dispatch.CommandError{Cause: err}
	}

	for _, event := range events {
		payload, err := transfer.EncodeVehicleEvent(event)
		if err != nil {
			return nil, err
		}
		if err := s.journal.Append(ctx, vin, transfer.VehicleEventType(event), payload); err != nil {
			return nil, err
		}
		if err := s.publisher.Publish(ctx, broker.VehicleEventsExchange, vin, payload); err != nil {
			return nil, err
		}

		state = vehicle.Evolve(state, event)
		if err := s.states.Put(ctx, vin, state); err != nil {
			return nil, err
		}
		s.log.Info("vehicle event applied", "vin", vin, "type", transfer.VehicleEventType(event))
	}
	return state, nil
}

// GetVehicle returns the current read model, or ErrVehicleNotFound for a VIN
// that was never added (or has been removed).
func (s *VehicleService) GetVehicle(ctx context.Context, vin string) (vehicle.Vehicle, error) {
	state, err := s.states.Get(ctx, vin)
	if err != nil {
		return nil, err
	}
	if _, initial := state.(vehicle.InitialVehicleState); initial {
		return nil, ErrVehicleNotFound
	}
	return state, nil
}

// RebuildVehicle refolds the vehicle's journaled history into a fresh read
// model and persists it.
func (s *VehicleService) RebuildVehicle(ctx context.Context, vin string) (vehicle.Vehicle, error) {
	stored, err := s.journal.Load(ctx, vin)
	if err != nil {
		return nil, err
	}

	var state vehicle.Vehicle = vehicle.InitialVehicleState{}
	for _, entry := range stored {
		event, err := transfer.DecodeVehicleEvent(entry.Payload)
		if err != nil {
			return nil, &dispatch.EvolutionError{Cause: err}
		}
		state = vehicle.Evolve(state, event)
	}

	if err := s.states.Put(ctx, vin, state); err != nil {
		return nil, err
	}
	return state, nil
}
