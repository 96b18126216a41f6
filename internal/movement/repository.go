package movement

import (
	"context"

	"github.com/pharmatrack/stock-service/internal/model"
	"github.com/pharmatrack/stock-service/internal/movement/dto"
)

type Repository interface {
	GetBatch(ctx context.Context, batchID string) (*model.Batch, error)

	// ApplyDeltaWithMovement applies a signed quantity delta to a batch and
	// inserts the movement row in one transaction. The store refuses, not
	// clamps, a delta that would drive the quantity negative. The movement's
	// before/after quantities are filled from the committed state.
	ApplyDeltaWithMovement(ctx context.Context, batchID string, delta int64, m *model.Movement) (*model.Batch, error)

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.Movement, int, error)
}
