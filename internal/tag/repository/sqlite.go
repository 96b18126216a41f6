package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pharmatrack/stock-service/internal/model"
)

type SqliteRepository struct {
	DB *sqlx.DB
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{DB: db}
}

func (r *SqliteRepository) FindBatchesByTag(ctx context.Context, tagID string) ([]model.Batch, error) {
	// Ordering is the documented tie-break for tags shared across batches:
	// nearest expiry wins, NULL expiry sorts last, id breaks remaining ties.
	query := `
        SELECT * FROM batches
        WHERE tag_id = $1
        ORDER BY expiry_date IS NULL, expiry_date ASC, id ASC
    `
	var batches []model.Batch
	if err := r.DB.SelectContext(ctx, &batches, query, tagID); err != nil {
		return nil, fmt.Errorf("find batches by tag: %w", err)
	}
	return batches, nil
}

func (r *SqliteRepository) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
