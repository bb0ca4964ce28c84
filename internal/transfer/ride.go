// Package transfer converts domain events and read models to and from their
// flat wire records. The same records are used on the broker, in the Redis
// read-model store and in HTTP responses, so a decoder can reconstruct the
// typed value from the record alone.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"autonomo/internal/domain/ride"
	"autonomo/internal/domain/value"
)

// Ride event type discriminators. Requested- and scheduled-ride cancellations
// share one wire record, told apart by the presence of a vin.
const (
	TypeRideRequested   = "RideRequested"
	TypeRideScheduled   = "RideScheduled"
	TypeRideCancelled   = "RideCancelled"
	TypeRiderPickedUp   = "RiderPickedUp"
	TypeRiderDroppedOff = "RiderDroppedOff"
)

// Ride snapshot status discriminators.
const (
	RideStatusInitial    = "Initial"
	RideStatusRequested  = "Requested"
	RideStatusScheduled  = "Scheduled"
	RideStatusInProgress = "InProgress"
	RideStatusCompleted  = "Completed"
	RideStatusCancelled  = "Cancelled"
)

var (
	// ErrUnknownEventType is returned when a record's type discriminator is
	// not part of the closed event set.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrUnknownStatus is returned when a snapshot's status discriminator is
	// not part of the closed state set.
	ErrUnknownStatus = errors.New("unknown read model status")

	// ErrAmbiguousCancellation is returned when a cancelled-ride record
	// claims scheduled provenance but carries no vin. The state machine never
	// produces that shape.
	ErrAmbiguousCancellation = errors.New("cancelled scheduled ride record without vin")
)

// rideEventRecord is the flat wire shape shared by all ride events.
type rideEventRecord struct {
	Type            string    `json:"type"`
	Ride            string    `json:"ride"`
	Rider           string    `json:"rider,omitempty"`
	VIN             string    `json:"vin,omitempty"`
	OriginLat       float64   `json:"origin_lat,omitempty"`
	OriginLong      float64   `json:"origin_long,omitempty"`
	DestinationLat  float64   `json:"destination_lat,omitempty"`
	DestinationLong float64   `json:"destination_long,omitempty"`
	PickupLat       float64   `json:"pickup_location_lat,omitempty"`
	PickupLong      float64   `json:"pickup_location_long,omitempty"`
	DropOffLat      float64   `json:"drop_off_location_lat,omitempty"`
	DropOffLong     float64   `json:"drop_off_location_long,omitempty"`
	PickupTime      time.Time `json:"pickup_time,omitzero"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// RideEventType returns the wire discriminator for a ride event.
func RideEventType(e ride.Event) string {
	switch e.(type) {
	case ride.RideRequested:
		return TypeRideRequested
	case ride.RideScheduled:
		return TypeRideScheduled
	case ride.RequestedRideCancelled, ride.ScheduledRideCancelled:
		return TypeRideCancelled
	case ride.RiderPickedUp:
		return TypeRiderPickedUp
	case ride.RiderDroppedOff:
		return TypeRiderDroppedOff
	default:
		return ""
	}
}

// EncodeRideEvent marshals a ride event into its wire record.
func EncodeRideEvent(e ride.Event) ([]byte, error) {
	var rec rideEventRecord
	switch ev := e.(type) {
	case ride.RideRequested:
		rec = rideEventRecord{
			Type:            TypeRideRequested,
			Ride:            ev.Ride.String(),
			Rider:           ev.Rider.String(),
			OriginLat:       ev.Origin.Latitude,
			OriginLong:      ev.Origin.Longitude,
			DestinationLat:  ev.Destination.Latitude,
			DestinationLong: ev.Destination.Longitude,
			PickupTime:      ev.PickupTime,
			OccurredAt:      ev.RequestedAt,
		}
	case ride.RideScheduled:
		rec = rideEventRecord{
			Type:       TypeRideScheduled,
			Ride:       ev.Ride.String(),
			VIN:        ev.VIN.String(),
			PickupTime: ev.PickupTime,
			OccurredAt: ev.ScheduledAt,
		}
	case ride.RequestedRideCancelled:
		rec = rideEventRecord{
			Type:       TypeRideCancelled,
			Ride:       ev.Ride.String(),
			OccurredAt: ev.CancelledAt,
		}
	case ride.ScheduledRideCancelled:
		rec = rideEventRecord{
			Type:       TypeRideCancelled,
			Ride:       ev.Ride.String(),
			VIN:        ev.VIN.String(),
			OccurredAt: ev.CancelledAt,
		}
	case ride.RiderPickedUp:
		rec = rideEventRecord{
			Type:       TypeRiderPickedUp,
			Ride:       ev.Ride.String(),
			VIN:        ev.VIN.String(),
			Rider:      ev.Rider.String(),
			PickupLat:  ev.PickupLocation.Latitude,
			PickupLong: ev.PickupLocation.Longitude,
			OccurredAt: ev.PickedUpAt,
		}
	case ride.RiderDroppedOff:
		rec = rideEventRecord{
			Type:        TypeRiderDroppedOff,
			Ride:        ev.Ride.String(),
			VIN:         ev.VIN.String(),
			DropOffLat:  ev.DropOffLocation.Latitude,
			DropOffLong: ev.DropOffLocation.Longitude,
			OccurredAt:  ev.DroppedOffAt,
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEventType, e)
	}
	return json.Marshal(rec)
}

// DecodeRideEvent unmarshals a wire record into a typed ride event.
func DecodeRideEvent(data []byte) (ride.Event, error) {
	var rec rideEventRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	rideID, err := value.ParseRideId(rec.Ride)
	if err != nil {
		return nil, err
	}

	switch rec.Type {
	case TypeRideRequested:
		rider, err := value.ParseUserId(rec.Rider)
		if err != nil {
			return nil, err
		}
		origin, err := value.NewGeoCoordinates(rec.OriginLat, rec.OriginLong)
		if err != nil {
			return nil, err
		}
		destination, err := value.NewGeoCoordinates(rec.DestinationLat, rec.DestinationLong)
		if err != nil {
			return nil, err
		}
		return ride.RideRequested{
			Ride:        rideID,
			Rider:       rider,
			Origin:      origin,
			Destination: destination,
			PickupTime:  rec.PickupTime,
			RequestedAt: rec.OccurredAt,
		}, nil

	case TypeRideScheduled:
		vin, err := value.NewVin(rec.VIN)
		if err != nil {
			return nil, err
		}
		return ride.RideScheduled{
			Ride:        rideID,
			VIN:         vin,
			PickupTime:  rec.PickupTime,
			ScheduledAt: rec.OccurredAt,
		}, nil

	case TypeRideCancelled:
		if rec.VIN == "" {
			return ride.RequestedRideCancelled{Ride: rideID, CancelledAt: rec.OccurredAt}, nil
		}
		vin, err := value.NewVin(rec.VIN)
		if err != nil {
			return nil, err
		}
		return ride.ScheduledRideCancelled{Ride: rideID, VIN: vin, CancelledAt: rec.OccurredAt}, nil

	case TypeRiderPickedUp:
		vin, err := value.NewVin(rec.VIN)
		if err != nil {
			return nil, err
		}
		rider, err := value.ParseUserId(rec.Rider)
		if err != nil {
			return nil, err
		}
		location, err := value.NewGeoCoordinates(rec.PickupLat, rec.PickupLong)
		if err != nil {
			return nil, err
		}
		return ride.RiderPickedUp{
			Ride:           rideID,
			VIN:            vin,
			Rider:          rider,
			PickupLocation: location,
			PickedUpAt:     rec.OccurredAt,
		}, nil

	case TypeRiderDroppedOff:
		vin, err := value.NewVin(rec.VIN)
		if err != nil {
			return nil, err
		}
		location, err := value.NewGeoCoordinates(rec.DropOffLat, rec.DropOffLong)
		if err != nil {
			return nil, err
		}
		return ride.RiderDroppedOff{
			Ride:            rideID,
			VIN:             vin,
			DropOffLocation: location,
			DroppedOffAt:    rec.OccurredAt,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, rec.Type)
	}
}

// RideSnapshot is the persisted read-model record for a ride.
type RideSnapshot struct {
	Status             string     `json:"status"`
	ID                 string     `json:"id,omitempty"`
	Rider              string     `json:"rider,omitempty"`
	PickupTime         time.Time  `json:"pickup_time,omitzero"`
	PickupLocationLat  float64    `json:"pickup_location_lat,omitempty"`
	PickupLocationLong float64    `json:"pickup_location_long,omitempty"`
	DropOffLat         float64    `json:"drop_off_location_lat,omitempty"`
	DropOffLong        float64    `json:"drop_off_location_long,omitempty"`
	VIN                string     `json:"vin,omitempty"`
	RequestedAt        *time.Time `json:"requested_at,omitempty"`
	ScheduledAt        *time.Time `json:"scheduled_at,omitempty"`
	PickedUpAt         *time.Time `json:"picked_up_at,omitempty"`
	DroppedOffAt       *time.Time `json:"dropped_off_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
}

func timePtr(t time.Time) *time.Time { return &t }

// RideSnapshotFromState flattens a ride read model into its snapshot record.
func RideSnapshotFromState(state ride.Ride) (RideSnapshot, error) {
	switch s := state.(type) {
	case ride.InitialRideState:
		return RideSnapshot{Status: RideStatusInitial}, nil
	case ride.RequestedRide:
		return RideSnapshot{
			Status:             RideStatusRequested,
			ID:                 s.ID.String(),
			Rider:              s.Rider.String(),
			PickupTime:         s.RequestedPickupTime,
			PickupLocationLat:  s.PickupLocation.Latitude,
			PickupLocationLong: s.PickupLocation.Longitude,
			DropOffLat:         s.DropOffLocation.Latitude,
			DropOffLong:        s.DropOffLocation.Longitude,
			RequestedAt:        timePtr(s.RequestedAt),
		}, nil
	case ride.ScheduledRide:
		return RideSnapshot{
			Status:             RideStatusScheduled,
			ID:                 s.ID.String(),
			Rider:              s.Rider.String(),
			PickupTime:         s.ScheduledPickupTime,
			PickupLocationLat:  s.PickupLocation.Latitude,
			PickupLocationLong: s.PickupLocation.Longitude,
			DropOffLat:         s.DropOffLocation.Latitude,
			DropOffLong:        s.DropOffLocation.Longitude,
			VIN:                s.VIN.String(),
			ScheduledAt:        timePtr(s.ScheduledAt),
		}, nil
	case ride.InProgressRide:
		return RideSnapshot{
			Status:             RideStatusInProgress,
			ID:                 s.ID.String(),
			Rider:              s.Rider.String(),
			PickupTime:         s.PickupTime,
			PickupLocationLat:  s.PickupLocation.Latitude,
			PickupLocationLong: s.PickupLocation.Longitude,
			DropOffLat:         s.DropOffLocation.Latitude,
			DropOffLong:        s.DropOffLocation.Longitude,
			VIN:                s.VIN.String(),
			ScheduledAt:        timePtr(s.ScheduledAt),
			PickedUpAt:         timePtr(s.PickedUpAt),
		}, nil
	case ride.CompletedRide:
		return RideSnapshot{
			Status:             RideStatusCompleted,
			ID:                 s.ID.String(),
			Rider:              s.Rider.String(),
			PickupTime:         s.PickupTime,
			PickupLocationLat:  s.PickupLocation.Latitude,
			PickupLocationLong: s.PickupLocation.Longitude,
			DropOffLat:         s.DropOffLocation.Latitude,
			DropOffLong:        s.DropOffLocation.Longitude,
			VIN:                s.VIN.String(),
			PickedUpAt:         timePtr(s.PickedUpAt),
			DroppedOffAt:       timePtr(s.DroppedOffAt),
		}, nil
	case ride.CancelledRequestedRide:
		return RideSnapshot{
			Status:             RideStatusCancelled,
			ID:                 s.ID.String(),
			Rider:              s.Rider.String(),
			PickupTime:         s.RequestedPickupTime,
			PickupLocationLat:  s.PickupLocation.Latitude,
			PickupLocationLong: s.PickupLocation.Longitude,
			DropOffLat:         s.DropOffLocation.Latitude,
			DropOffLong:        s.DropOffLocation.Longitude,
			CancelledAt:        timePtr(s.CancelledAt),
		}, nil
	case ride.CancelledScheduledRide:
		return RideSnapshot{
			Status:             RideStatusCancelled,
			ID:                 s.ID.String(),
			Rider:              s.Rider.String(),
			PickupTime:         s.ScheduledPickupTime,
			PickupLocationLat:  s.PickupLocation.Latitude,
			PickupLocationLong: s.PickupLocation.Longitude,
			DropOffLat:         s.DropOffLocation.Latitude,
			DropOffLong:        s.DropOffLocation.Longitude,
			VIN:                s.VIN.String(),
			ScheduledAt:        timePtr(s.ScheduledAt),
			CancelledAt:        timePtr(s.CancelledAt),
		}, nil
	default:
		return RideSnapshot{}, fmt.Errorf("%w: %T", ErrUnknownStatus, state)
	}
}

// RideStateFromSnapshot reconstructs the typed read model from its snapshot.
func RideStateFromSnapshot(snap RideSnapshot) (ride.Ride, error) {
	if snap.Status == RideStatusInitial {
		return ride.InitialRideState{}, nil
	}

	// Check the discriminator before the fields: a record outside the closed
	// status set must be reported as such, not as a field validation error.
	switch snap.Status {
	case RideStatusRequested, RideStatusScheduled, RideStatusInProgress,
		RideStatusCompleted, RideStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, snap.Status)
	}

	id, err := value.ParseRideId(snap.ID)
	if err != nil {
		return nil, err
	}
	rider, err := value.ParseUserId(snap.Rider)
	if err != nil {
		return nil, err
	}
	pickup, err := value.NewGeoCoordinates(snap.PickupLocationLat, snap.PickupLocationLong)
	if err != nil {
		return nil, err
	}
	dropOff, err := value.NewGeoCoordinates(snap.DropOffLat, snap.DropOffLong)
	if err != nil {
		return nil, err
	}

	parseVin := func() (value.Vin, error) { return value.NewVin(snap.VIN) }
	at := func(t *time.Time) time.Time {
		if t == nil {
			return time.Time{}
		}
		return *t
	}

	switch snap.Status {
	case RideStatusRequested:
		return ride.RequestedRide{
			ID:                  id,
			Rider:               rider,
			RequestedPickupTime: snap.PickupTime,
			PickupLocation:      pickup,
			DropOffLocation:     dropOff,
			RequestedAt:         at(snap.RequestedAt),
		}, nil

	case RideStatusScheduled:
		vin, err := parseVin()
		if err != nil {
			return nil, err
		}
		return ride.ScheduledRide{
			ID:                  id,
			Rider:               rider,
			ScheduledPickupTime: snap.PickupTime,
			PickupLocation:      pickup,
			DropOffLocation:     dropOff,
			VIN:                 vin,
			ScheduledAt:         at(snap.ScheduledAt),
		}, nil

	case RideStatusInProgress:
		vin, err := parseVin()
		if err != nil {
			return nil, err
		}
		return ride.InProgressRide{
			ID:              id,
			Rider:           rider,
			PickupTime:      snap.PickupTime,
			PickupLocation:  pickup,
			DropOffLocation: dropOff,
			VIN:             vin,
			ScheduledAt:     at(snap.ScheduledAt),
			PickedUpAt:      at(snap.PickedUpAt),
		}, nil

	case RideStatusCompleted:
		vin, err := parseVin()
		if err != nil {
			return nil, err
		}
		return ride.CompletedRide{
			ID:              id,
			Rider:           rider,
			PickupTime:      snap.PickupTime,
			PickupLocation:  pickup,
			DropOffLocation: dropOff,
			VIN:             vin,
			PickedUpAt:      at(snap.PickedUpAt),
			DroppedOffAt:    at(snap.DroppedOffAt),
		}, nil

	case RideStatusCancelled:
		// Scheduled provenance is marked by scheduled_at; such a record must
		// carry the vin that was assigned.
		if snap.ScheduledAt == nil {
			return ride.CancelledRequestedRide{
				ID:                  id,
				Rider:               rider,
				RequestedPickupTime: snap.PickupTime,
				PickupLocation:      pickup,
				DropOffLocation:     dropOff,
				CancelledAt:         at(snap.CancelledAt),
			}, nil
		}
		if snap.VIN == "" {
			return nil, ErrAmbiguousCancellation
		}
		vin, err := parseVin()
		if err != nil {
			return nil, err
		}
		return ride.CancelledScheduledRide{
			ID:                  id,
			Rider:               rider,
			ScheduledPickupTime: snap.PickupTime,
			PickupLocation:      pickup,
			DropOffLocation:     dropOff,
			VIN:                 vin,
			ScheduledAt:         at(snap.ScheduledAt),
			CancelledAt:         at(snap.CancelledAt),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, snap.Status)
	}
}

// EncodeRideState marshals a ride read model into its snapshot record.
func EncodeRideState(state ride.Ride) ([]byte, error) {
	snap, err := RideSnapshotFromState(state)
	if err != nil {
		return nil, err
	}
	return json.Marshal(snap)
}

// DecodeRideState unmarshals a snapshot record into a typed read model.
func DecodeRideState(data []byte) (ride.Ride, error) {
	var snap RideSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return RideStateFromSnapshot(snap)
}
