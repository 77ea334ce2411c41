package domain

import (
	"errors"
	"fmt"
)

// ErrTurnInFlight is returned when a message arrives while a previous
// turn is still being processed. The pipeline handles one turn at a
// time; queueing is the caller's responsibility.
var ErrTurnInFlight = errors.New("a turn is already in flight")

// InventoryError wraps a failure of the remote inventory source. The
// orchestrator converts it into a single user-visible degraded
// message; it is never shown raw.
type InventoryError struct {
	StatusCode int // HTTP status, 0 for transport failures
	Err        error
}

func (e *InventoryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inventory source returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("inventory source unreachable: %v", e.Err)
}

func (e *InventoryError) Unwrap() error { return e.Err }
