// Package value holds the immutable, self-validating primitives shared by the
// ride and vehicle domains. Values are compared by value and can only be
// constructed through their validating constructors.
package value

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

var (
	// ErrInvalidLatitude is returned when a latitude is outside [-90, 90].
	ErrInvalidLatitude = errors.New("latitude out of range")

	// ErrInvalidLongitude is returned when a longitude is outside [-180, 180].
	ErrInvalidLongitude = errors.New("longitude out of range")

	// ErrInvalidVin is returned when a VIN string does not satisfy the VIN format.
	ErrInvalidVin = errors.New("invalid VIN string")
)

// UserId identifies a rider or vehicle owner.
type UserId struct {
	id uuid.UUID
}

// NewUserId generates a random UserId.
func NewUserId() UserId {
	return UserId{id: uuid.New()}
}

// ParseUserId parses a UserId from its string form.
func ParseUserId(s string) (UserId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserId{}, fmt.Errorf("invalid user id %q: %w", s, err)
	}
	return UserId{id: id}, nil
}

func (u UserId) String() string { return u.id.String() }

// IsZero reports whether the id is the uninitialized zero value.
func (u UserId) IsZero() bool { return u.id == uuid.Nil }

// RideId identifies a ride aggregate.
type RideId struct {
	id uuid.UUID
}

// NewRideId generates a random RideId.
func NewRideId() RideId {
	return RideId{id: uuid.New()}
}

// ParseRideId parses a RideId from its string form.
func ParseRideId(s string) (RideId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RideId{}, fmt.Errorf("invalid ride id %q: %w", s, err)
	}
	return RideId{id: id}, nil
}

func (r RideId) String() string { return r.id.String() }

// IsZero reports whether the id is the uninitialized zero value.
func (r RideId) IsZero() bool { return r.id == uuid.Nil }

// GeoCoordinates is a validated latitude/longitude pair.
type GeoCoordinates struct {
	Latitude  float64
	Longitude float64
}

// NewGeoCoordinates validates the pair and returns it.
func NewGeoCoordinates(latitude, longitude float64) (GeoCoordinates, error) {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return GeoCoordinates{}, fmt.Errorf("%w: must be between %g and %g, but was given %g",
			ErrInvalidLatitude, MinLatitude, MaxLatitude, latitude)
	}
	if longitude < MinLongitude || longitude > MaxLongitude {
		return GeoCoordinates{}, fmt.Errorf("%w: must be between %g and %g, but was given %g",
			ErrInvalidLongitude, MinLongitude, MaxLongitude, longitude)
	}
	return GeoCoordinates{Latitude: latitude, Longitude: longitude}, nil
}

func (g GeoCoordinates) String() string {
	return fmt.Sprintf("(%g, %g)", g.Latitude, g.Longitude)
}

// Vin is a vehicle identification number: exactly 17 alphanumeric characters
// containing at least one digit and at least one letter.
type Vin struct {
	value string
}

// NewVin validates and wraps a VIN string.
func NewVin(s string) (Vin, error) {
	if len(s) != 17 {
		return Vin{}, fmt.Errorf("%w: %q", ErrInvalidVin, s)
	}
	var hasDigit, hasLetter bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			hasLetter = true
		default:
			return Vin{}, fmt.Errorf("%w: %q", ErrInvalidVin, s)
		}
	}
	if !hasDigit || !hasLetter {
		return Vin{}, fmt.Errorf("%w: %q", ErrInvalidVin, s)
	}
	return Vin{value: s}, nil
}

func (v Vin) String() string { return v.value }

// IsZero reports whether the Vin is the uninitialized zero value.
func (v Vin) IsZero() bool { return v.value == "" }
