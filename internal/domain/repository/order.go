package repository

import (
	"context"

	"github.com/servery/servery/internal/domain/model"
)

// OrderRepository describes persistence operations with orders and their lines.
type OrderRepository interface {
	// Create inserts a fresh PENDING order with an empty cart.
	Create(ctx context.Context, restaurantID int64, customer string) (*model.Order, error)
	// GetForUpdate reads an order holding a row lock until the surrounding
	// transaction ends. A non-nil restaurantID additionally scopes the lookup.
	GetForUpdate(ctx context.Context, orderID int64, restaurantID *int64) (*model.Order, error)
	// GetDetail reads an order with its restaurant name, including names of
	// soft-deleted restaurants. Lines are left for the caller to attach.
	GetDetail(ctx context.Context, orderID int64) (*model.OrderDetail, error)
	Customer(ctx context.Context, orderID int64) (string, error)

	// Lines returns every stored line joined with its menu item, zero
	// quantities included, for checking an order before payment.
	Lines(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	// PendingLines returns the restaurant's live menu with the order's
	// current quantities, absent pairings reading as zero.
	PendingLines(ctx context.Context, orderID, restaurantID int64) ([]model.OrderLine, error)
	// FrozenLines returns the lines actually ordered (quantity above zero)
	// regardless of menu item deletion since then.
	FrozenLines(ctx context.Context, orderID int64) ([]model.OrderLine, error)

	SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// MarkPaid sets PAID status together with the billing snapshot in one
	// statement so the update lands as a unit.
	MarkPaid(ctx context.Context, orderID int64, address string, totalCents int64) error
	// AdjustLineQuantity adds delta to the (order, item) pairing, creating it
	// at zero first when absent. Quantities never go below zero.
	AdjustLineQuantity(ctx context.Context, orderID, itemID, delta int64) error

	ListByCustomer(ctx context.Context, customer string) ([]model.OrderSummary, error)
	ListActiveByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error)
}
