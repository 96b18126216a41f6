package area

import (
	"context"

	"github.com/pharmatrack/stock-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, area *model.Area) error
	FindByID(ctx context.Context, id string) (*model.Area, error)
	FindAll(ctx context.Context) ([]model.Area, error)
	Delete(ctx context.Context, id string) error
}
