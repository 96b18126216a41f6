package dto

import "time"

type ActivateInput struct {
	Direction string `json:"direction"`
}

type ScanInput struct {
	TagID     string    `json:"tag_id"`
	Timestamp time.Time `json:"timestamp"`
}

type ConfirmInput struct {
	TagID    string  `json:"tag_id"`
	Quantity int64   `json:"quantity"`
	AreaID   *string `json:"area_id,omitempty"`
}
