package model

import (
	"fmt"
	"time"
)

// Direction is the side of a stock movement: entry adds units, exit removes them.
type Direction string

const (
	DirectionEntry Direction = "entry"
	DirectionExit  Direction = "exit"
)

func (d Direction) Valid() bool {
	return d == DirectionEntry || d == DirectionExit
}

// Delta returns the signed unit change a movement of qty units represents.
func (d Direction) Delta(qty int64) int64 {
	if d == DirectionExit {
		return -qty
	}
	return qty
}

func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: unknown direction %q", ErrQuantityInvalid, s)
	}
	return d, nil
}

// ScanEvent is a raw read reported by the RFID layer. Ephemeral: consumed
// exactly once by the session owning the station.
type ScanEvent struct {
	StationID string    `json:"station_id"`
	TagID     string    `json:"tag_id"`
	Timestamp time.Time `json:"timestamp"`
}

// PendingMovement is a scan parked until the operator states the quantity.
// A session holds at most one of these at any time.
type PendingMovement struct {
	TagID     string    `json:"tag_id"`
	Product   Product   `json:"product"`
	Batch     Batch     `json:"batch"`
	Direction Direction `json:"direction"`
	AreaID    *string   `json:"area_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ConfirmInput is the operator answer to a pending movement. TagID correlates
// the answer with the parked scan.
type ConfirmInput struct {
	TagID    string  `json:"tag_id"`
	Quantity int64   `json:"quantity"`
	AreaID   *string `json:"area_id,omitempty"`
}
