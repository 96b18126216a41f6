package model

import "time"

// Movement is the persisted audit row written together with every stock delta.
type Movement struct {
	ID             string    `db:"id" json:"id"`
	BatchID        string    `db:"batch_id" json:"batch_id"`
	ProductID      string    `db:"product_id" json:"product_id"`
	TagID          string    `db:"tag_id" json:"tag_id"`
	Direction      Direction `db:"direction" json:"direction"`
	Quantity       int64     `db:"quantity" json:"quantity"`
	QuantityBefore int64     `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int64     `db:"quantity_after" json:"quantity_after"`
	AreaID         *string   `db:"area_id" json:"area_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// MovementResult is the committed movement together with the batch snapshot
// the commit produced. Handed to the webhook dispatcher; not persisted beyond
// the movement row itself.
type MovementResult struct {
	Movement Movement `json:"movement"`
	Batch    Batch    `json:"batch"`
	Product  Product  `json:"product"`
}
