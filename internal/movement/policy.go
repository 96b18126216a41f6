package movement

import (
	"fmt"

	"github.com/pharmatrack/stock-service/internal/model"
)

// Quantity resolution policy: decides how many base units a scan represents
// and whether the operator has to be asked.

// RequiresConfirmation is true when one scan is ambiguous: the product is
// packaged in bulk, so the operator must state the actual unit count.
func RequiresConfirmation(p model.Product) bool {
	return p.PackagedInBulk()
}

// DefaultQuantity is the unit count a scan commits with when no confirmation
// is required.
func DefaultQuantity(p model.Product) int64 {
	return 1
}

// ValidateQuantity checks a requested quantity against a batch. Exits must
// not exceed the batch's current stock; entries have no upper bound here.
func ValidateQuantity(qty int64, batch model.Batch, direction model.Direction) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", model.ErrQuantityInvalid, qty)
	}
	if direction == model.DirectionExit && qty > batch.Quantity {
		return fmt.Errorf("%w: requested %d but batch %s holds %d", model.ErrInsufficientStock, qty, batch.ID, batch.Quantity)
	}
	return nil
}
