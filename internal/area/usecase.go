package area

import (
	"context"

	"github.com/pharmatrack/stock-service/internal/model"
)

type UseCase interface {
	CreateArea(ctx context.Context, name string, description *string) (*model.Area, error)
	GetArea(ctx context.Context, id string) (*model.Area, error)
	ListAreas(ctx context.Context) ([]model.Area, error)
	DeleteArea(ctx context.Context, id string) error
}
