package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pharmatrack/stock-service/config"
	"github.com/pharmatrack/stock-service/internal/database"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Connect(config.SqliteConfig{DSN: ":memory:", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *sqlx.DB, id string, unitsPerPackage int) {
	t.Helper()
	now := time.Now()
	if _, err := db.Exec(
		`INSERT INTO products (id, name, sku, units_per_package, is_active, created_at, updated_at)
         VALUES ($1, $2, $3, $4, 1, $5, $5)`,
		id, "name-"+id, "sku-"+id, unitsPerPackage, now,
	); err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func seedTaggedBatch(t *testing.T, db *sqlx.DB, id, productID, tagID string, qty int64, expiry *time.Time) {
	t.Helper()
	now := time.Now()
	if _, err := db.Exec(
		`INSERT INTO batches (id, product_id, tag_id, lot_number, quantity, expiry_date, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		id, productID, tagID, "LOT-"+id, qty, expiry, now,
	); err != nil {
		t.Fatalf("seed batch: %v", err)
	}
}

func TestFindBatchesByTagTieBreak(t *testing.T) {
	db := testDB(t)
	seedProduct(t, db, "p1", 1)

	late := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	early := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	seedTaggedBatch(t, db, "b-late", "p1", "shared-tag", 10, &late)
	seedTaggedBatch(t, db, "b-early", "p1", "shared-tag", 10, &early)
	seedTaggedBatch(t, db, "b-noexp", "p1", "shared-tag", 10, nil)

	repo := NewSqliteRepository(db)
	batches, err := repo.FindBatchesByTag(context.Background(), "shared-tag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	// Earliest expiry first, no expiry last.
	if batches[0].ID != "b-early" || batches[1].ID != "b-late" || batches[2].ID != "b-noexp" {
		t.Fatalf("unexpected order: %s, %s, %s", batches[0].ID, batches[1].ID, batches[2].ID)
	}
}

func TestFindBatchesByTagIDTieBreak(t *testing.T) {
	db := testDB(t)
	seedProduct(t, db, "p1", 1)
	seedTaggedBatch(t, db, "b2", "p1", "shared-tag", 5, nil)
	seedTaggedBatch(t, db, "b1", "p1", "shared-tag", 5, nil)

	repo := NewSqliteRepository(db)
	batches, err := repo.FindBatchesByTag(context.Background(), "shared-tag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batches[0].ID != "b1" {
		t.Fatalf("expected lowest id first, got %s", batches[0].ID)
	}
}

func TestFindBatchesByTagEmpty(t *testing.T) {
	repo := NewSqliteRepository(testDB(t))
	batches, err := repo.FindBatchesByTag(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batches) != 0 {
		t.Fatalf("expected no batches, got %d", len(batches))
	}
}

func TestGetProduct(t *testing.T) {
	db := testDB(t)
	seedProduct(t, db, "p1", 20)
	repo := NewSqliteRepository(db)

	p, err := repo.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.UnitsPerPackage != 20 {
		t.Fatalf("unexpected product: %+v", p)
	}

	missing, err := repo.GetProduct(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing product")
	}
}
