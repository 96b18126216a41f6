package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/pharmatrack/stock-service/internal/model"
)

type SqliteRepository struct {
	DB *sqlx.DB
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{DB: db}
}

func (r *SqliteRepository) Create(ctx context.Context, a *model.Area) error {
	query := `
        INSERT INTO areas (id, name, description, created_at, updated_at)
        VALUES (:id, :name, :description, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *SqliteRepository) FindByID(ctx context.Context, id string) (*model.Area, error) {
	var area model.Area
	err := r.DB.GetContext(ctx, &area, `SELECT * FROM areas WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &area, nil
}

func (r *SqliteRepository) FindAll(ctx context.Context) ([]model.Area, error) {
	var areas []model.Area
	err := r.DB.SelectContext(ctx, &areas, `SELECT * FROM areas ORDER BY name ASC`)
	return areas, err
}

func (r *SqliteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM areas WHERE id = $1`, id)
	return err
}
