package service

import (
	"context"
	"time"

	"autonomo/internal/broker"
	"autonomo/internal/dispatch"
	"autonomo/internal/domain/ride"
	"autonomo/internal/logger"
	"autonomo/internal/repository"
	"autonomo/internal/store"
	"autonomo/internal/transfer"
)

// aggregateLockTTL bounds how long a crashed command handler can keep an
// aggregate locked.
const aggregateLockTTL = 10 * time.Second

// RideService executes ride commands: lock the aggregate, read the current
// state, decide, journal and publish the events, fold them into the new
// state and persist it. On rejection nothing is persisted or published.
type RideService struct {
	states    store.RideStateStoreInterface
	locks     store.LockStoreInterface
	journal   repository.EventJournal
	publisher broker.PublisherInterface
	log       *logger.Logger
}

// NewRideService creates a new RideService.
func NewRideService(
	states store.RideStateStoreInterface,
	locks store.LockStoreInterface,
	journal repository.EventJournal,
	publisher broker.PublisherInterface,
	log *logger.Logger,
) *RideService {
	return &RideService{
		states:    states,
		locks:     locks,
		journal:   journal,
		publisher: publisher,
		log:       log,
	}
}

// RequestRide creates a new ride. The ride id is generated by the decision,
// so the aggregate cannot be locked up front; a fresh id cannot race anyway.
func (s *RideService) RequestRide(ctx context.Context, cmd ride.RequestRide) (ride.Ride, error) {
	events, err := ride.Decide(cmd, ride.InitialRideState{})
	if err != nil {
		return nil, &dispatch.CommandError{Cause: err}
	}
	return s.commit(ctx, ride.InitialRideState{}, events)
}

// Execute runs a command against an existing ride identified by id.
func (s *RideService) Execute(ctx context.Context, id string, cmd ride.Command) (ride.Ride, error) {
	ok, err := s.locks.AcquireAggregateLock(ctx, "ride:"+id, aggregateLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAggregateBusy
	}
	defer func() {
		if err := s.locks.ReleaseAggregateLock(ctx, "ride:"+id); err != nil {
			s.log.Warn("failed to release ride lock", "ride", id, "error", err)
		}
	}()

	state, err := s.states.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, initial := state.(ride.InitialRideState); initial {
		return nil, ErrRideNotFound
	}

	events, err := ride.Decide(cmd, state)
	if err != nil {
		return nil, &dispatch.CommandError{Cause: err}
	}
	return s.commit(ctx, state, events)
}

// GetRide returns the current read model, or ErrRideNotFound for an id that
// was never created.
func (s *RideService) GetRide(ctx context.Context, id string) (ride.Ride, error) {
	state, err := s.states.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, initial := state.(ride.InitialRideState); initial {
		return nil, ErrRideNotFound
	}
	return state, nil
}

// RebuildRide refolds the ride's journaled history into a fresh read model
// and persists it, repairing a lost or corrupted snapshot.
func (s *RideService) RebuildRide(ctx context.Context, id string) (ride.Ride, error) {
	stored, err := s.journal.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	var state ride.Ride = ride.InitialRideState{}
	for _, entry := range stored {
		event, err := transfer.DecodeRideEvent(entry.Payload)
		if err != nil {
			return nil, &dispatch.EvolutionError{Cause: err}
		}
		state = ride.Evolve(state, event)
	}

	if err := s.states.Put(ctx, id, state); err != nil {
		return nil, err
	}
	return state, nil
}

// commit journals, publishes and folds the decided events, then persists the
// resulting state.
func (s *RideService) commit(ctx context.Context, state ride.Ride, events []ride.Event) (ride.Ride, error) {
	for _, event := range events {
		id := event.EventRideID().String()

		payload, err := transfer.EncodeRideEvent(event)
		if err != nil {
			return nil, err
		}
		if err := s.journal.Append(ctx, id, transfer.RideEventType(event), payload); err != nil {
			return nil, err
		}
		if err := s.publisher.Publish(ctx, broker.RideEventsExchange, id, payload); err != nil {
			return nil, err
		}

		state = ride.Evolve(state, event)
		if err := s.states.Put(ctx, id, state); err != nil {
			return nil, err
		}
		s.log.Info("ride event applied", "ride", id, "type", transfer.RideEventType(event))
	}
	return state, nil
}
