package model

// MenuItem is a dish offered by a restaurant. Prices are stored in cents.
// Deleted items disappear from the menu but stay referenced by old orders.
type MenuItem struct {
	ID           int64
	RestaurantID int64
	Name         string
	PriceCents   int64
	Deleted      bool
}
