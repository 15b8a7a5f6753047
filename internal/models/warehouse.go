package models

import "time"

// WarehouseState represents the run-state of the remote SQL warehouse.
type WarehouseState string

const (
	WarehouseStateStopped  WarehouseState = "STOPPED"
	WarehouseStateStarting WarehouseState = "STARTING"
	WarehouseStateRunning  WarehouseState = "RUNNING"
	WarehouseStateStopping WarehouseState = "STOPPING"
	WarehouseStateUnknown  WarehouseState = "UNKNOWN"
)

func ParseWarehouseState(s string) WarehouseState {
	switch s {
	case "STOPPED":
		return WarehouseStateStopped
	case "STARTING":
		return WarehouseStateStarting
	case "RUNNING":
		return WarehouseStateRunning
	case "STOPPING":
		return WarehouseStateStopping
	default:
		return WarehouseStateUnknown
	}
}

// WarehouseStatus holds the last observed warehouse state.
type WarehouseStatus struct {
	State      WarehouseState
	ObservedAt time.Time
}
