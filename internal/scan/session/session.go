package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/internal/metrics"
	"github.com/pharmatrack/stock-service/internal/model"
	"github.com/pharmatrack/stock-service/internal/movement"
	movdto "github.com/pharmatrack/stock-service/internal/movement/dto"
	"github.com/pharmatrack/stock-service/internal/scan"
	"github.com/pharmatrack/stock-service/internal/tag"
)

type session struct {
	stationID string
	resolver  tag.Resolver
	committer movement.UseCase
	metrics   *metrics.Registry
	logger    *zap.Logger

	// mu serializes every operation on the station. A scan is fully handled
	// before the next call proceeds.
	mu        sync.Mutex
	state     scan.State
	direction model.Direction
	pending   *model.PendingMovement
}

func New(stationID string, resolver tag.Resolver, committer movement.UseCase, m *metrics.Registry, log *zap.Logger) scan.Session {
	return &session{
		stationID: stationID,
		resolver:  resolver,
		committer: committer,
		metrics:   m,
		logger:    log.With(zap.String("station_id", stationID)),
		state:     scan.StateIdle,
	}
}

func (s *session) Activate(direction model.Direction) error {
	if !direction.Valid() {
		return fmt.Errorf("%w: direction %q", model.ErrQuantityInvalid, direction)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropPending()
	s.state = scan.StateListening
	s.direction = direction
	s.logger.Info("session activated", zap.String("direction", string(direction)))
	return nil
}

func (s *session) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropPending()
	s.state = scan.StateIdle
	s.direction = ""
	s.logger.Info("session deactivated")
}

func (s *session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return model.ErrNoPendingMovement
	}
	s.dropPending()
	s.state = scan.StateListening
	s.logger.Info("pending movement cancelled")
	return nil
}

func (s *session) HandleScan(ctx context.Context, ev model.ScanEvent) (*scan.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case scan.StateIdle:
		s.metrics.ScansRejected.Inc()
		return nil, fmt.Errorf("%w: station %q", model.ErrSessionInactive, s.stationID)
	case scan.StateAwaitingConfirmation:
		// Never overwrite the parked movement. The operator finishes or
		// cancels it first.
		s.metrics.ScansRejected.Inc()
		s.logger.Warn("scan rejected while awaiting confirmation", zap.String("tag_id", ev.TagID))
		return nil, fmt.Errorf("%w: tag %q pending on station %q", model.ErrConfirmationPending, s.pending.TagID, s.stationID)
	}

	product, batch, err := s.resolver.Resolve(ctx, ev.TagID, s.direction)
	if err != nil {
		// Resolution failure leaves the session listening.
		s.metrics.ScansRejected.Inc()
		s.logger.Warn("scan resolution failed", zap.String("tag_id", ev.TagID), zap.Error(err))
		return nil, err
	}

	if movement.RequiresConfirmation(*product) {
		s.pending = &model.PendingMovement{
			TagID:     ev.TagID,
			Product:   *product,
			Batch:     *batch,
			Direction: s.direction,
			CreatedAt: time.Now(),
		}
		s.state = scan.StateAwaitingConfirmation
		s.metrics.PendingConfirmation.Inc()
		s.logger.Info("scan parked for confirmation",
			zap.String("tag_id", ev.TagID),
			zap.String("product_id", product.ID),
			zap.Int("units_per_package", product.UnitsPerPackage),
		)
		return &scan.Outcome{Pending: s.pending}, nil
	}

	result, err := s.committer.Commit(ctx, &movdto.CommitInput{
		Product:   *product,
		BatchID:   batch.ID,
		TagID:     ev.TagID,
		Direction: s.direction,
		Quantity:  movement.DefaultQuantity(*product),
	})
	if err != nil {
		s.metrics.ScansRejected.Inc()
		return nil, err
	}
	s.metrics.ScansProcessed.Inc()
	return &scan.Outcome{Committed: result}, nil
}

func (s *session) Confirm(ctx context.Context, input model.ConfirmInput) (*model.MovementResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != scan.StateAwaitingConfirmation || s.pending == nil {
		return nil, fmt.Errorf("%w: station %q", model.ErrNoPendingMovement, s.stationID)
	}
	if input.TagID != s.pending.TagID {
		// Correlation failure, not a verdict on the pending movement: it
		// stays parked.
		return nil, fmt.Errorf("%w: tag %q does not match pending %q", model.ErrNoPendingMovement, input.TagID, s.pending.TagID)
	}

	var areaID *string
	if s.pending.Direction == model.DirectionExit {
		areaID = input.AreaID
	}

	result, err := s.committer.Commit(ctx, &movdto.CommitInput{
		Product:   s.pending.Product,
		BatchID:   s.pending.Batch.ID,
		TagID:     s.pending.TagID,
		Direction: s.pending.Direction,
		Quantity:  input.Quantity,
		AreaID:    areaID,
	})

	// Either way the confirmation consumes the pending movement and the
	// session resumes listening; a rejected quantity is reported to the
	// operator, not re-parked.
	s.dropPending()
	s.state = scan.StateListening

	if err != nil {
		s.logger.Warn("confirmation rejected", zap.String("tag_id", input.TagID), zap.Error(err))
		return nil, err
	}
	s.metrics.ScansProcessed.Inc()
	return result, nil
}

func (s *session) Snapshot() scan.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return scan.Snapshot{
		StationID: s.stationID,
		State:     s.state,
		Direction: s.direction,
		Pending:   s.pending,
	}
}

// dropPending clears the parked movement and keeps the gauge honest. Caller
// holds mu.
func (s *session) dropPending() {
	if s.pending != nil {
		s.pending = nil
		s.metrics.PendingConfirmation.Dec()
	}
}
