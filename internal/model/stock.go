package model

import "time"

type Product struct {
	BaseModel
	Name string `db:"name" json:"name"`
	SKU  string `db:"sku" json:"sku"`
	// UnitsPerPackage is the multiplier converting one scanned package into
	// base stock units. 1 means the product moves as single units.
	UnitsPerPackage int  `db:"units_per_package" json:"units_per_package"`
	IsActive        bool `db:"is_active" json:"is_active"`
}

// PackagedInBulk reports whether a single scan of this product is ambiguous
// and needs the operator to state how many units actually moved.
func (p Product) PackagedInBulk() bool {
	return p.UnitsPerPackage > 1
}

type Batch struct {
	BaseModel
	ProductID string `db:"product_id" json:"product_id"`
	// TagID is the RFID identifier attached to the batch. Tags are physical
	// labels reused across shipments, so the same tag may appear on more
	// than one batch.
	TagID      string     `db:"tag_id" json:"tag_id"`
	LotNumber  string     `db:"lot_number" json:"lot_number"`
	Quantity   int64      `db:"quantity" json:"quantity"`
	ExpiryDate *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
}

type Area struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
}
