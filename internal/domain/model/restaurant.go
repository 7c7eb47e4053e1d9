package model

// Restaurant is an establishment taking orders from its menu. A deleted
// restaurant keeps its rows for order history but is excluded from normal
// queries and accepts no new orders or transitions.
type Restaurant struct {
	ID      int64
	Name    string
	Owner   string
	Deleted bool
}

// RestaurantDetail bundles a restaurant with role-dependent extras:
// Employees is filled for the owner, ActiveOrders for employees.
type RestaurantDetail struct {
	Restaurant   Restaurant
	Menu         []MenuItem
	Employees    []string
	ActiveOrders []Order
}
