package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/internal/metrics"
	"github.com/pharmatrack/stock-service/internal/model"
	"github.com/pharmatrack/stock-service/internal/movement"
	"github.com/pharmatrack/stock-service/internal/movement/dto"
	"github.com/pharmatrack/stock-service/internal/webhook"
)

type movementUseCase struct {
	repo       movement.Repository
	dispatcher webhook.Dispatcher
	metrics    *metrics.Registry
	logger     *zap.Logger
}

// NewMovementUseCase builds the committer. dispatcher may be nil when no
// webhook endpoint is configured; everything else is required.
func NewMovementUseCase(repo movement.Repository, dispatcher webhook.Dispatcher, m *metrics.Registry, log *zap.Logger) movement.UseCase {
	return &movementUseCase{
		repo:       repo,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     log,
	}
}

func (uc *movementUseCase) Commit(ctx context.Context, input *dto.CommitInput) (*model.MovementResult, error) {
	if !input.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction %q", model.ErrQuantityInvalid, input.Direction)
	}

	// Re-read the batch: confirmation can arrive long after the scan, and the
	// batch may have changed or vanished in between.
	batch, err := uc.repo.GetBatch(ctx, input.BatchID)
	if err != nil {
		uc.metrics.MovementsFailed.Inc()
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	if batch == nil {
		uc.metrics.MovementsFailed.Inc()
		return nil, fmt.Errorf("%w: batch %q no longer exists", model.ErrStaleMovement, input.BatchID)
	}

	if err := movement.ValidateQuantity(input.Quantity, *batch, input.Direction); err != nil {
		uc.metrics.MovementsFailed.Inc()
		return nil, err
	}

	m := &model.Movement{
		ID:        uuid.New().String(),
		BatchID:   batch.ID,
		ProductID: input.Product.ID,
		TagID:     input.TagID,
		Direction: input.Direction,
		Quantity:  input.Quantity,
		AreaID:    input.AreaID,
	}

	updated, err := uc.repo.ApplyDeltaWithMovement(ctx, batch.ID, input.Direction.Delta(input.Quantity), m)
	if err != nil {
		uc.metrics.MovementsFailed.Inc()
		return nil, err
	}

	uc.metrics.MovementsCommitted.Inc()
	uc.logger.Info("movement committed",
		zap.String("movement_id", m.ID),
		zap.String("batch_id", batch.ID),
		zap.String("product_id", input.Product.ID),
		zap.String("direction", string(input.Direction)),
		zap.Int64("quantity", input.Quantity),
		zap.Int64("quantity_after", updated.Quantity),
	)

	result := &model.MovementResult{
		Movement: *m,
		Batch:    *updated,
		Product:  input.Product,
	}

	uc.notify(result)
	return result, nil
}

func (uc *movementUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.Movement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

// notify fires the webhook detached from the commit path. The commit has
// already succeeded; delivery is at-most-once and its outcome only lands in
// logs and metrics.
func (uc *movementUseCase) notify(result *model.MovementResult) {
	if uc.dispatcher == nil {
		return
	}

	event := "stock.entry"
	if result.Movement.Direction == model.DirectionExit {
		event = "stock.exit"
	}

	go func() {
		// Detached from the request context: the operator response must not
		// wait for, nor fail on, delivery. The dispatcher bounds the attempt.
		outcome := uc.dispatcher.Send(context.Background(), event, result)
		if outcome.Delivered {
			uc.metrics.WebhookDelivered.Inc()
			return
		}
		uc.metrics.WebhookFailed.Inc()
		uc.logger.Warn("movement notification failed",
			zap.String("movement_id", result.Movement.ID),
			zap.String("event", event),
			zap.Error(outcome.Err),
		)
	}()
}
