package resolver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/internal/model"
	"github.com/pharmatrack/stock-service/internal/tag"
)

type tagResolver struct {
	repo   tag.Repository
	logger *zap.Logger
}

func NewTagResolver(repo tag.Repository, log *zap.Logger) tag.Resolver {
	return &tagResolver{repo: repo, logger: log}
}

// Resolve picks the batch the movement applies to. When several batches share
// the tag the repository ordering decides (earliest expiry, then lowest id);
// for exits, batches already drained are skipped so a reused tag does not
// shadow stock that is still on the shelf. An exit where every tagged batch
// is empty is insufficient stock, not a missing tag.
func (r *tagResolver) Resolve(ctx context.Context, tagID string, direction model.Direction) (*model.Product, *model.Batch, error) {
	batches, err := r.repo.FindBatchesByTag(ctx, tagID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	if len(batches) == 0 {
		return nil, nil, fmt.Errorf("%w: tag %q", model.ErrTagNotFound, tagID)
	}

	batch := batches[0]
	if direction == model.DirectionExit {
		found := false
		for _, b := range batches {
			if b.Quantity > 0 {
				batch = b
				found = true
				break
			}
		}
		if !found {
			return nil, nil, fmt.Errorf("%w: all batches for tag %q are empty", model.ErrInsufficientStock, tagID)
		}
	}

	product, err := r.repo.GetProduct(ctx, batch.ProductID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	if product == nil {
		// Batch row points at a product that no longer exists.
		r.logger.Warn("batch references missing product",
			zap.String("batch_id", batch.ID),
			zap.String("product_id", batch.ProductID),
		)
		return nil, nil, fmt.Errorf("%w: product %q for batch %q", model.ErrBatchNotFound, batch.ProductID, batch.ID)
	}

	return product, &batch, nil
}
