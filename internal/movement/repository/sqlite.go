package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pharmatrack/stock-service/internal/model"
	"github.com/pharmatrack/stock-service/internal/movement/dto"
)

type SqliteRepository struct {
	DB *sqlx.DB
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{DB: db}
}

func (r *SqliteRepository) GetBatch(ctx context.Context, batchID string) (*model.Batch, error) {
	var b model.Batch
	err := r.DB.GetContext(ctx, &b, `SELECT * FROM batches WHERE id = $1`, batchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

func (r *SqliteRepository) ApplyDeltaWithMovement(ctx context.Context, batchID string, delta int64, m *model.Movement) (*model.Batch, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx: %v", model.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	now := time.Now()

	// Conditional update is the lock boundary: the store rejects, not clamps,
	// a delta that would go negative, even against a concurrent writer.
	res, err := tx.ExecContext(ctx, `
        UPDATE batches
        SET quantity = quantity + $1, updated_at = $2
        WHERE id = $3 AND quantity + $1 >= 0
    `, delta, now, batchID)
	if err != nil {
		return nil, fmt.Errorf("%w: apply delta: %v", model.ErrStoreUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: rows affected: %v", model.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		var exists int
		if err := tx.GetContext(ctx, &exists, `SELECT 1 FROM batches WHERE id = $1`, batchID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: batch %q", model.ErrBatchNotFound, batchID)
			}
			return nil, fmt.Errorf("%w: check batch: %v", model.ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("%w: delta %d on batch %q", model.ErrInsufficientStock, delta, batchID)
	}

	var updated model.Batch
	if err := tx.GetContext(ctx, &updated, `SELECT * FROM batches WHERE id = $1`, batchID); err != nil {
		return nil, fmt.Errorf("%w: reload batch: %v", model.ErrStoreUnavailable, err)
	}

	// Before/after come from the committed state, not the caller's snapshot.
	m.QuantityAfter = updated.Quantity
	m.QuantityBefore = updated.Quantity - delta
	m.CreatedAt = now

	insert := `
        INSERT INTO movements (
            id, batch_id, product_id, tag_id, direction,
            quantity, quantity_before, quantity_after, area_id, created_at
        )
        VALUES (
            :id, :batch_id, :product_id, :tag_id, :direction,
            :quantity, :quantity_before, :quantity_after, :area_id, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, insert, m); err != nil {
		return nil, fmt.Errorf("%w: log movement: %v", model.ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit tx: %v", model.ErrStoreUnavailable, err)
	}
	return &updated, nil
}

func (r *SqliteRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.Movement, int, error) {
	var items []model.Movement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.BatchID != "" {
		conditions = append(conditions, "batch_id = :batch_id")
		args["batch_id"] = f.BatchID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.Direction != "" {
		conditions = append(conditions, "direction = :direction")
		args["direction"] = f.Direction
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
