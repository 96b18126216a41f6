package movement

import (
	"context"

	"github.com/pharmatrack/stock-service/internal/model"
	"github.com/pharmatrack/stock-service/internal/movement/dto"
)

type UseCase interface {
	// Commit validates the requested quantity against the batch's current
	// state, applies the signed delta atomically and returns the updated
	// snapshot. Notification of external consumers runs detached and never
	// affects the result.
	Commit(ctx context.Context, input *dto.CommitInput) (*model.MovementResult, error)

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.Movement, int, error)
}
