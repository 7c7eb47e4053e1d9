package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrOrderNotFound         = errors.New("order does not exist")
	ErrRestaurantUnavailable = errors.New("restaurant does not exist or has been deleted")
	ErrInvalidTransition     = errors.New("bad transition")
	ErrNotOwner              = errors.New("not the order owner")
	ErrNotEmployee           = errors.New("not a restaurant employee")
	ErrIncompleteBilling     = errors.New("address and billing information not set")
	ErrEmptyOrder            = errors.New("order must contain at least one item")
	ErrDeletedItem           = errors.New("item has been deleted")
	ErrCrossRestaurantItem   = errors.New("item belongs to another restaurant")
	ErrOrderNotEditable      = errors.New("order can no longer be edited")
)

// CorruptOrderStatusError reports a stored order status outside the known
// lifecycle states. It indicates data corruption, not a user mistake, and is
// deliberately separate from the refusal sentinels above.
type CorruptOrderStatusError struct {
	OrderID int64
	Value   string
}

func (e *CorruptOrderStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q on order %d", e.Value, e.OrderID)
}
