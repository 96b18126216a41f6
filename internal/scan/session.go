package scan

import (
	"context"

	"github.com/pharmatrack/stock-service/internal/model"
)

// State of a station's scan session.
type State string

const (
	StateIdle                 State = "idle"
	StateListening            State = "listening"
	StateAwaitingConfirmation State = "awaiting_confirmation"
)

// Outcome of a handled scan: exactly one of Committed or Pending is set.
type Outcome struct {
	Committed *model.MovementResult  `json:"committed,omitempty"`
	Pending   *model.PendingMovement `json:"pending,omitempty"`
}

// Snapshot is a point-in-time view of a session for the operator UI.
type Snapshot struct {
	StationID string                 `json:"station_id"`
	State     State                  `json:"state"`
	Direction model.Direction        `json:"direction,omitempty"`
	Pending   *model.PendingMovement `json:"pending,omitempty"`
}

// Session owns the movement state of one physical reader station. All calls
// are serialized: one scan is fully resolved and committed (or parked) before
// the next is looked at, which is what keeps the at-most-one pending movement
// invariant.
type Session interface {
	// Activate puts the session in listening mode for a direction, discarding
	// any stale pending movement.
	Activate(direction model.Direction) error
	// Deactivate returns the session to idle. A pending movement, if any, is
	// dropped without committing.
	Deactivate()
	// Cancel drops the pending movement and resumes listening.
	Cancel() error
	// HandleScan consumes one scan event: resolve, then either commit with
	// the default quantity or park the movement for confirmation. While a
	// movement is pending, further scans are rejected.
	HandleScan(ctx context.Context, ev model.ScanEvent) (*Outcome, error)
	// Confirm supplies the operator-chosen quantity for the pending movement.
	Confirm(ctx context.Context, input model.ConfirmInput) (*model.MovementResult, error)
	Snapshot() Snapshot
}
