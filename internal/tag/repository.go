package tag

import (
	"context"

	"github.com/pharmatrack/stock-service/internal/model"
)

type Repository interface {
	// FindBatchesByTag returns every batch carrying the tag, ordered by the
	// resolution tie-break: earliest expiry first, batches without expiry
	// last, then lowest id.
	FindBatchesByTag(ctx context.Context, tagID string) ([]model.Batch, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}
