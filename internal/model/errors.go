package model

import "errors"

// Domain error taxonomy. Callers match with errors.Is; repositories and
// usecases wrap these with context via fmt.Errorf("...: %w", ...).
var (
	// ErrTagNotFound means no batch carries the scanned tag.
	ErrTagNotFound = errors.New("tag not found")
	// ErrBatchNotFound means a batch referenced by id (or through a tag) no
	// longer exists.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrInsufficientStock means an exit would drive the batch quantity
	// negative. Distinct from not-found so the operator sees the right message.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrQuantityInvalid means the requested quantity is not a positive integer
	// or the input is otherwise malformed.
	ErrQuantityInvalid = errors.New("invalid quantity")
	// ErrStaleMovement means the batch changed between the scan and the
	// confirmation in a way that invalidates the pending movement.
	ErrStaleMovement = errors.New("stale movement")
	// ErrStoreUnavailable wraps transient store failures. The core never
	// retries a commit; retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrConfirmationPending means a scan arrived while another movement was
	// awaiting confirmation. The new scan is rejected, never queued.
	ErrConfirmationPending = errors.New("confirmation pending")
	// ErrNoPendingMovement means a confirmation arrived with no matching
	// parked scan.
	ErrNoPendingMovement = errors.New("no pending movement")
	// ErrSessionInactive means the station has no listening session.
	ErrSessionInactive = errors.New("session inactive")
)
