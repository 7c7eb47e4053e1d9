package dto

import "time"

// TransitionRequest names the status an order should move to.
type TransitionRequest struct {
	Status string `json:"status"`
}

// ModifyItemRequest adjusts a cart line by a signed delta.
type ModifyItemRequest struct {
	Delta int64 `json:"delta"`
}

// IDResponse carries the identifier of a freshly created resource.
type IDResponse struct {
	ID int64 `json:"id"`
}

// OrderResponse describes one order. Address and Total are empty until paid.
type OrderResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	Customer     string    `json:"customer"`
	Status       string    `json:"status"`
	Address      string    `json:"address,omitempty"`
	Total        string    `json:"total,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderSummaryResponse is one order history entry.
type OrderSummaryResponse struct {
	OrderResponse
	RestaurantName string `json:"restaurant_name"`
}

// OrderLineResponse is one line of an order detail. Price is present on
// PENDING orders, where the live menu is the authority; frozen orders carry
// the snapshotted total instead.
type OrderLineResponse struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Price    string `json:"price,omitempty"`
	Quantity int64  `json:"quantity"`
}

// OrderDetailResponse is the full order page.
type OrderDetailResponse struct {
	OrderResponse
	RestaurantName string              `json:"restaurant_name"`
	Lines          []OrderLineResponse `json:"lines"`
}
