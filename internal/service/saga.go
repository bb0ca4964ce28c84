package service

import (
	"context"

	"autonomo/internal/domain/saga"
	"autonomo/internal/logger"
	"autonomo/internal/transfer"
)

// SagaService reacts to published ride events with vehicle commands: a
// scheduled ride occupies its vehicle, a cancelled scheduled ride or a
// drop-off frees it. A rejected command means the two domains have diverged;
// the error is surfaced to the consumer (which redelivers), never swallowed.
type SagaService struct {
	vehicles *VehicleService
	log      *logger.Logger
}

// NewSagaService creates a new SagaService.
func NewSagaService(vehicles *VehicleService, log *logger.Logger) *SagaService {
	return &SagaService{vehicles: vehicles, log: log}
}

// HandleRideEvent is the broker handler for the ride-events stream.
func (s *SagaService) HandleRideEvent(ctx context.Context, key string, payload []byte) error {
	event, err := transfer.DecodeRideEvent(payload)
	if err != nil {
		return err
	}

	for _, cmd := range saga.React(event) {
		if _, err := s.vehicles.Execute(ctx, cmd); err != nil {
			s.log.Error("saga command rejected, ride and vehicle state diverged",
				"ride", key, "vin", cmd.CommandVin().String(), "error", err)
			return err
		}
	}
	return nil
}
