package vehicle

import (
	"fmt"

	"autonomo/internal/domain/value"
)

// Command is the closed set of vehicle commands. Every command addresses the
// aggregate by VIN.
type Command interface {
	// CommandVin returns the VIN of the vehicle the command addresses.
	CommandVin() value.Vin

	isVehicleCommand()
}

// AddVehicle registers a vehicle in the fleet inventory.
type AddVehicle struct {
	VIN   value.Vin
	Owner value.UserId
}

// MakeVehicleAvailable puts an inventory vehicle into service.
type MakeVehicleAvailable struct {
	VIN value.Vin
}

// MarkVehicleOccupied marks an available vehicle as carrying a rider.
type MarkVehicleOccupied struct {
	VIN value.Vin
}

// MarkVehicleUnoccupied marks an occupied vehicle as empty again.
type MarkVehicleUnoccupied struct {
	VIN value.Vin
}

// RequestVehicleReturn asks an in-service vehicle to head back to inventory.
type RequestVehicleReturn struct {
	VIN value.Vin
}

// ConfirmVehicleReturn confirms a returning vehicle arrived in inventory.
type ConfirmVehicleReturn struct {
	VIN value.Vin
}

// RemoveVehicle takes an inventory vehicle out of the fleet.
type RemoveVehicle struct {
	VIN   value.Vin
	Owner value.UserId
}

func (AddVehicle) isVehicleCommand()            {}
func (MakeVehicleAvailable) isVehicleCommand()  {}
func (MarkVehicleOccupied) isVehicleCommand()   {}
func (MarkVehicleUnoccupied) isVehicleCommand() {}
func (RequestVehicleReturn) isVehicleCommand()  {}
func (ConfirmVehicleReturn) isVehicleCommand()  {}
func (RemoveVehicle) isVehicleCommand()         {}

func (c AddVehicle) CommandVin() value.Vin            { return c.VIN }
func (c MakeVehicleAvailable) CommandVin() value.Vin  { return c.VIN }
func (c MarkVehicleOccupied) CommandVin() value.Vin   { return c.VIN }
func (c MarkVehicleUnoccupied) CommandVin() value.Vin { return c.VIN }
func (c RequestVehicleReturn) CommandVin() value.Vin  { return c.VIN }
func (c ConfirmVehicleReturn) CommandVin() value.Vin  { return c.VIN }
func (c RemoveVehicle) CommandVin() value.Vin         { return c.VIN }

// CommandError reports a command whose precondition on the current state does
// not hold. No events are produced and no state changes.
type CommandError struct {
	Command Command
	State   Vehicle
	Reason  string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to apply vehicle command %T to %T: %s", e.Command, e.State, e.Reason)
}

func reject(cmd Command, state Vehicle, reason string) ([]Event, error) {
	return nil, &CommandError{Command: cmd, State: state, Reason: reason}
}
