package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/internal/area"
	"github.com/pharmatrack/stock-service/internal/model"
)

type areaUseCase struct {
	repo   area.Repository
	logger *zap.Logger
}

func NewAreaUseCase(repo area.Repository, log *zap.Logger) area.UseCase {
	return &areaUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *areaUseCase) CreateArea(ctx context.Context, name string, description *string) (*model.Area, error) {
	if name == "" {
		return nil, errors.New("area name is required")
	}

	now := time.Now()
	a := &model.Area{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        name,
		Description: description,
	}

	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *areaUseCase) GetArea(ctx context.Context, id string) (*model.Area, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *areaUseCase) ListAreas(ctx context.Context) ([]model.Area, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *areaUseCase) DeleteArea(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
