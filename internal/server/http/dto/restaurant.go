package dto

// CreateRestaurantRequest describes the restaurant creation payload.
type CreateRestaurantRequest struct {
	Name string `json:"name"`
}

// RenameRestaurantRequest describes the rename payload.
type RenameRestaurantRequest struct {
	Name string `json:"name"`
}

// AddEmployeeRequest describes the staff enrolment payload.
type AddEmployeeRequest struct {
	Username string `json:"username"`
}

// MenuItemRequest describes an add/update menu item payload. Price is a
// decimal string like "12.34", optionally prefixed with "$".
type MenuItemRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// RestaurantResponse describes one restaurant in listings.
type RestaurantResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// MenuItemResponse describes one dish on a menu.
type MenuItemResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// RestaurantDetailResponse is the restaurant page. Employees appears for the
// owner only, ActiveOrders for staff only.
type RestaurantDetailResponse struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Owner        string             `json:"owner"`
	Menu         []MenuItemResponse `json:"menu"`
	Employees    []string           `json:"employees,omitempty"`
	ActiveOrders []OrderResponse    `json:"active_orders,omitempty"`
}
