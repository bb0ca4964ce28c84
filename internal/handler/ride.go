package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"autonomo/internal/domain/ride"
	"autonomo/internal/domain/value"
	"autonomo/internal/service"
	"autonomo/internal/transfer"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rides *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rides *service.RideService) *RideHandler {
	return &RideHandler{rides: rides}
}

// RequestRideRequest is the HTTP request body for requesting a ride.
type RequestRideRequest struct {
	Rider           string    `json:"rider"`
	OriginLat       float64   `json:"origin_lat"`
	OriginLong      float64   `json:"origin_long"`
	DestinationLat  float64   `json:"destination_lat"`
	DestinationLong float64   `json:"destination_long"`
	PickupTime      time.Time `json:"pickup_time"`
}

// ScheduleRideRequest is the HTTP request body for scheduling a ride.
type ScheduleRideRequest struct {
	VIN        string    `json:"vin"`
	PickupTime time.Time `json:"pickup_time"`
}

// ConfirmPickupRequest is the HTTP request body for confirming a pickup.
type ConfirmPickupRequest struct {
	VIN                string  `json:"vin"`
	Rider              string  `json:"rider"`
	PickupLocationLat  float64 `json:"pickup_location_lat"`
	PickupLocationLong float64 `json:"pickup_location_long"`
}

// EndRideRequest is the HTTP request body for ending a ride.
type EndRideRequest struct {
	DropOffLocationLat  float64 `json:"drop_off_location_lat"`
	DropOffLocationLong float64 `json:"drop_off_location_long"`
}

// RequestRide handles POST /v1/rides
func (h *RideHandler) RequestRide(c *gin.Context) {
	var req RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rider, err := value.ParseUserId(req.Rider)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	origin, err := value.NewGeoCoordinates(req.OriginLat, req.OriginLong)
	if err != nil {
		respondError(c, err)
		return
	}
	destination, err := value.NewGeoCoordinates(req.DestinationLat, req.DestinationLong)
	if err != nil {
		respondError(c, err)
		return
	}

	state, err := h.rides.RequestRide(c.Request.Context(), ride.RequestRide{
		Rider:       rider,
		Origin:      origin,
		Destination: destination,
		PickupTime:  req.PickupTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondState(c, http.StatusAccepted, state)
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	state, err := h.rides.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, state)
}

// ScheduleRide handles POST /v1/rides/:id/schedule
func (h *RideHandler) ScheduleRide(c *gin.Context) {
	var req ScheduleRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	id, vin, ok := h.parseIDAndVin(c, req.VIN)
	if !ok {
		return
	}

	state, err := h.rides.Execute(c.Request.Context(), c.Param("id"), ride.ScheduleRide{
		Ride:       id,
		VIN:        vin,
		PickupTime: req.PickupTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusAccepted, state)
}

// ConfirmPickup handles POST /v1/rides/:id/pickup
func (h *RideHandler) ConfirmPickup(c *gin.Context) {
	var req ConfirmPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	id, vin, ok := h.parseIDAndVin(c, req.VIN)
	if !ok {
		return
	}
	rider, err := value.ParseUserId(req.Rider)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	location, err := value.NewGeoCoordinates(req.PickupLocationLat, req.PickupLocationLong)
	if err != nil {
		respondError(c, err)
		return
	}

	state, err := h.rides.Execute(c.Request.Context(), c.Param("id"), ride.ConfirmPickup{
		Ride:           id,
		VIN:            vin,
		Rider:          rider,
		PickupLocation: location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusAccepted, state)
}

// EndRide handles POST /v1/rides/:id/dropoff
func (h *RideHandler) EndRide(c *gin.Context) {
	var req EndRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	id, err := value.ParseRideId(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	location, err := value.NewGeoCoordinates(req.DropOffLocationLat, req.DropOffLocationLong)
	if err != nil {
		respondError(c, err)
		return
	}

	state, err := h.rides.Execute(c.Request.Context(), c.Param("id"), ride.EndRide{
		Ride:            id,
		DropOffLocation: location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusAccepted, state)
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	id, err := value.ParseRideId(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.rides.Execute(c.Request.Context(), c.Param("id"), ride.CancelRide{Ride: id})
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusAccepted, state)
}

// RebuildRide handles POST /v1/rides/:id/rebuild
func (h *RideHandler) RebuildRide(c *gin.Context) {
	state, err := h.rides.RebuildRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, state)
}

func (h *RideHandler) parseIDAndVin(c *gin.Context, rawVin string) (value.RideId, value.Vin, bool) {
	id, err := value.ParseRideId(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return value.RideId{}, value.Vin{}, false
	}
	vin, err := value.NewVin(rawVin)
	if err != nil {
		respondError(c, err)
		return value.RideId{}, value.Vin{}, false
	}
	return id, vin, true
}

func (h *RideHandler) respondState(c *gin.Context, code int, state ride.Ride) {
	snap, err := transfer.RideSnapshotFromState(state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(code, snap)
}
