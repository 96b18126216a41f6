package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the record-store schema. Statements are idempotent so the
// runner is safe on every startup.
func Migrate(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            sku TEXT NOT NULL UNIQUE,
            units_per_package INTEGER NOT NULL DEFAULT 1 CHECK (units_per_package >= 1),
            is_active INTEGER NOT NULL DEFAULT 1,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS areas (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            description TEXT,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS batches (
            id TEXT PRIMARY KEY,
            product_id TEXT NOT NULL,
            tag_id TEXT NOT NULL,
            lot_number TEXT NOT NULL DEFAULT '',
            quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
            expiry_date DATETIME,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            FOREIGN KEY(product_id) REFERENCES products(id)
        );`,
		`CREATE INDEX IF NOT EXISTS idx_batches_tag_id ON batches(tag_id);`,
		`CREATE TABLE IF NOT EXISTS movements (
            id TEXT PRIMARY KEY,
            batch_id TEXT NOT NULL,
            product_id TEXT NOT NULL,
            tag_id TEXT NOT NULL,
            direction TEXT NOT NULL CHECK (direction IN ('entry', 'exit')),
            quantity INTEGER NOT NULL CHECK (quantity > 0),
            quantity_before INTEGER NOT NULL,
            quantity_after INTEGER NOT NULL,
            area_id TEXT,
            created_at DATETIME NOT NULL,
            FOREIGN KEY(batch_id) REFERENCES batches(id),
            FOREIGN KEY(product_id) REFERENCES products(id),
            FOREIGN KEY(area_id) REFERENCES areas(id)
        );`,
		`CREATE INDEX IF NOT EXISTS idx_movements_batch_id ON movements(batch_id);`,
		`CREATE INDEX IF NOT EXISTS idx_movements_created_at ON movements(created_at);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
