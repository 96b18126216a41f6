package dto

import "github.com/pharmatrack/stock-service/internal/model"

type CommitInput struct {
	Product   model.Product
	BatchID   string
	TagID     string
	Direction model.Direction
	Quantity  int64
	AreaID    *string
}

type MovementFilters struct {
	BatchID   string
	ProductID string
	Direction string
	Page      int
	PageSize  int
}
