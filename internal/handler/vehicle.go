package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autonomo/internal/domain/value"
	"autonomo/internal/domain/vehicle"
	"autonomo/internal/service"
	"autonomo/internal/transfer"
)

// VehicleHandler handles HTTP requests for the fleet.
type VehicleHandler struct {
	vehicles *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicles *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// AddVehicleRequest is the HTTP request body for adding a vehicle.
type AddVehicleRequest struct {
	VIN   string `json:"vin"`
	Owner string `json:"owner"`
}

// RemoveVehicleRequest is the HTTP request body for removing a vehicle.
type RemoveVehicleRequest struct {
	Owner string `json:"owner"`
}

// AddVehicle handles POST /v1/vehicles
func (h *VehicleHandler) AddVehicle(c *gin.Context) {
	var req AddVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vin, err := value.NewVin(req.VIN)
	if err != nil {
		respondError(c, err)
		return
	}
	owner, err := value.ParseUserId(req.Owner)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.execute(c, http.StatusCreated, vehicle.AddVehicle{VIN: vin, Owner: owner})
}

// GetVehicle handles GET /v1/vehicles/:vin
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	state, err := h.vehicles.GetVehicle(c.Request.Context(), c.Param("vin"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, state)
}

// MakeAvailable handles POST /v1/vehicles/:vin/available
func (h *VehicleHandler) MakeAvailable(c *gin.Context) {
	vin, ok := h.parseVin(c)
	if !ok {
		return
	}
	h.execute(c, http.StatusAccepted, vehicle.MakeVehicleAvailable{VIN: vin})
}

// MarkOccupied handles POST /v1/vehicles/:vin/occupy
func (h *VehicleHandler) MarkOccupied(c *gin.Context) {
	vin, ok := h.parseVin(c)
	if !ok {
		return
	}
	h.execute(c, http.StatusAccepted, vehicle.MarkVehicleOccupied{VIN: vin})
}

// MarkUnoccupied handles POST /v1/vehicles/:vin/unoccupy
func (h *VehicleHandler) MarkUnoccupied(c *gin.Context) {
	vin, ok := h.parseVin(c)
	if !ok {
		return
	}
	h.execute(c, http.StatusAccepted, vehicle.MarkVehicleUnoccupied{VIN: vin})
}

// RequestReturn handles POST /v1/vehicles/:vin/request-return
func (h *VehicleHandler) RequestReturn(c *gin.Context) {
	vin, ok := h.parseVin(c)
	if !ok {
		return
	}
	h.execute(c, http.StatusAccepted, vehicle.RequestVehicleReturn{VIN: vin})
}

// ConfirmReturn handles POST /v1/vehicles/:vin/confirm-return
func (h *VehicleHandler) ConfirmReturn(c *gin.Context) {
	vin, ok := h.parseVin(c)
	if !ok {
		return
	}
	h.execute(c, http.StatusAccepted, vehicle.ConfirmVehicleReturn{VIN: vin})
}

// RemoveVehicle handles DELETE /v1/vehicles/:vin
func (h *VehicleHandler) RemoveVehicle(c *gin.Context) {
	var req RemoveVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vin, ok := h.parseVin(c)
	if !ok {
		return
	}
	owner, err := value.ParseUserId(req.Owner)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.execute(c, http.StatusAccepted, vehicle.RemoveVehicle{VIN: vin, Owner: owner})
}

// RebuildVehicle handles POST /v1/vehicles/:vin/rebuild
func (h *VehicleHandler) RebuildVehicle(c *gin.Context) {
	state, err := h.vehicles.RebuildVehicle(c.Request.Context(), c.Param("vin"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, http.StatusOK, state)
}

func (h *VehicleHandler) parseVin(c *gin.Context) (value.Vin, bool) {
	vin, err := value.NewVin(c.Param("vin"))
	if err != nil {
		respondError(c, err)
		return value.Vin{}, false
	}
	return vin, true
}

func (h *VehicleHandler) execute(c *gin.Context, code int, cmd vehicle.Command) {
	state, err := h.vehicles.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondState(c, code, state)
}

func (h *VehicleHandler) respondState(c *gin.Context, code int, state vehicle.Vehicle) {
	snap, err := transfer.VehicleSnapshotFromState(state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(code, snap)
}
