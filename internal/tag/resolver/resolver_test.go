package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/internal/model"
)

type fakeRepo struct {
	batches  map[string][]model.Batch
	products map[string]model.Product
}

func (r *fakeRepo) FindBatchesByTag(_ context.Context, tagID string) ([]model.Batch, error) {
	return r.batches[tagID], nil
}

func (r *fakeRepo) GetProduct(_ context.Context, productID string) (*model.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func day(n int) *time.Time {
	t := time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestResolveUnknownTag(t *testing.T) {
	r := NewTagResolver(&fakeRepo{batches: map[string][]model.Batch{}}, zap.NewNop())
	_, _, err := r.Resolve(context.Background(), "ghost", model.DirectionEntry)
	if !errors.Is(err, model.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestResolveIdempotent(t *testing.T) {
	repo := &fakeRepo{
		batches: map[string][]model.Batch{
			"tag-1": {{BaseModel: model.BaseModel{ID: "b1"}, ProductID: "p1", TagID: "tag-1", Quantity: 7}},
		},
		products: map[string]model.Product{"p1": {BaseModel: model.BaseModel{ID: "p1"}, UnitsPerPackage: 1}},
	}
	r := NewTagResolver(repo, zap.NewNop())

	_, first, err := r.Resolve(context.Background(), "tag-1", model.DirectionExit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, second, err := r.Resolve(context.Background(), "tag-1", model.DirectionExit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID || first.Quantity != second.Quantity {
		t.Fatalf("resolution not stable: %+v vs %+v", first, second)
	}
}

func TestResolveExitSkipsDrainedBatches(t *testing.T) {
	// Repository returns batches in tie-break order; the first one is empty
	// because the tag was reused across shipments.
	repo := &fakeRepo{
		batches: map[string][]model.Batch{
			"tag-1": {
				{BaseModel: model.BaseModel{ID: "b1"}, ProductID: "p1", TagID: "tag-1", Quantity: 0, ExpiryDate: day(1)},
				{BaseModel: model.BaseModel{ID: "b2"}, ProductID: "p1", TagID: "tag-1", Quantity: 12, ExpiryDate: day(2)},
			},
		},
		products: map[string]model.Product{"p1": {BaseModel: model.BaseModel{ID: "p1"}, UnitsPerPackage: 1}},
	}
	r := NewTagResolver(repo, zap.NewNop())

	_, batch, err := r.Resolve(context.Background(), "tag-1", model.DirectionExit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.ID != "b2" {
		t.Fatalf("expected b2, got %s", batch.ID)
	}
}

func TestResolveExitAllEmptyIsInsufficientStock(t *testing.T) {
	repo := &fakeRepo{
		batches: map[string][]model.Batch{
			"tag-1": {{BaseModel: model.BaseModel{ID: "b1"}, ProductID: "p1", TagID: "tag-1", Quantity: 0}},
		},
		products: map[string]model.Product{"p1": {BaseModel: model.BaseModel{ID: "p1"}}},
	}
	r := NewTagResolver(repo, zap.NewNop())

	_, _, err := r.Resolve(context.Background(), "tag-1", model.DirectionExit)
	if !errors.Is(err, model.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestResolveEntryAcceptsEmptyBatch(t *testing.T) {
	repo := &fakeRepo{
		batches: map[string][]model.Batch{
			"tag-1": {{BaseModel: model.BaseModel{ID: "b1"}, ProductID: "p1", TagID: "tag-1", Quantity: 0}},
		},
		products: map[string]model.Product{"p1": {BaseModel: model.BaseModel{ID: "p1"}}},
	}
	r := NewTagResolver(repo, zap.NewNop())

	_, batch, err := r.Resolve(context.Background(), "tag-1", model.DirectionEntry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.ID != "b1" {
		t.Fatalf("expected b1, got %s", batch.ID)
	}
}

func TestResolveDanglingProduct(t *testing.T) {
	repo := &fakeRepo{
		batches: map[string][]model.Batch{
			"tag-1": {{BaseModel: model.BaseModel{ID: "b1"}, ProductID: "gone", TagID: "tag-1", Quantity: 3}},
		},
		products: map[string]model.Product{},
	}
	r := NewTagResolver(repo, zap.NewNop())

	_, _, err := r.Resolve(context.Background(), "tag-1", model.DirectionEntry)
	if !errors.Is(err, model.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
}
