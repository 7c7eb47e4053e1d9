package model

import "time"

// OrderStatus describes order lifecycle position.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusAccepted  OrderStatus = "ACCEPTED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// legalEdges is the complete set of permitted status transitions.
// CANCELLED and DELIVERED are terminal.
var legalEdges = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusAccepted, OrderStatusCancelled},
	OrderStatusAccepted:  {OrderStatusDelivered},
	OrderStatusCancelled: {},
	OrderStatusDelivered: {},
}

// Known reports whether the status is one of the five lifecycle states.
func (s OrderStatus) Known() bool {
	_, ok := legalEdges[s]
	return ok
}

// Terminal reports whether no transition leaves the status.
func (s OrderStatus) Terminal() bool {
	next, ok := legalEdges[s]
	return ok && len(next) == 0
}

// CanTransition reports whether the lifecycle permits moving from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range legalEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order describes a food order placed by a customer at a restaurant.
// Address and TotalCents stay empty/zero until the order is paid, at which
// point they are snapshotted and never touched again.
type Order struct {
	ID           int64
	RestaurantID int64
	Customer     string
	Status       OrderStatus
	Address      string
	TotalCents   int64
	CreatedAt    time.Time
}

// OrderLine is one (order, menu item) position joined with its menu item row.
// ItemRestaurantID and ItemDeleted describe the backing item and are consulted
// when an order is checked before payment.
type OrderLine struct {
	ItemID           int64
	Name             string
	PriceCents       int64
	Quantity         int64
	ItemRestaurantID int64
	ItemDeleted      bool
}

// OrderSummary pairs an order with its restaurant name for history listings.
type OrderSummary struct {
	Order
	RestaurantName string
}

// OrderDetail is an order together with its line items.
type OrderDetail struct {
	Order
	RestaurantName string
	Lines          []OrderLine
}
