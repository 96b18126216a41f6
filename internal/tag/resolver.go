package tag

import (
	"context"

	"github.com/pharmatrack/stock-service/internal/model"
)

// Resolver maps a scanned tag to the product and the specific batch that will
// absorb the movement.
type Resolver interface {
	Resolve(ctx context.Context, tagID string, direction model.Direction) (*model.Product, *model.Batch, error)
}
