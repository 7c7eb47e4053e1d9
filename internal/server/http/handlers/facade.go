package handlers

import (
	"context"

	"github.com/servery/servery/internal/domain/model"
)

// AccountFacade describes account capabilities required by handlers.
type AccountFacade interface {
	Register(ctx context.Context, username, password, firstName, lastName string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	ParseToken(token string) (string, error)
	Account(ctx context.Context, username string) (*model.Account, error)
	UpdateProfile(ctx context.Context, username, firstName, lastName, address, cardNumber, cardExpiry, cardCode string) error
	ChangePassword(ctx context.Context, username, password string) error
}

// RestaurantFacade encapsulates restaurant management exposed via HTTP.
type RestaurantFacade interface {
	Restaurants(ctx context.Context) ([]model.Restaurant, error)
	CreateRestaurant(ctx context.Context, owner, name string) (*model.Restaurant, error)
	RestaurantDetail(ctx context.Context, id int64, viewer string) (*model.RestaurantDetail, error)
	RenameRestaurant(ctx context.Context, actor string, id int64, name string) error
	DeleteRestaurant(ctx context.Context, actor string, id int64) error
	AddEmployee(ctx context.Context, actor string, id int64, username string) error
	RemoveEmployee(ctx context.Context, actor string, id int64, username string) error
	AddMenuItem(ctx context.Context, actor string, id int64, name string, priceCents int64) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, actor string, id, itemID int64, name string, priceCents int64) error
	DeleteMenuItem(ctx context.Context, actor string, id, itemID int64) error
	IsEmployee(ctx context.Context, id int64, username string) (bool, error)
}

// OrderFacade encapsulates the order lifecycle exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, customer string, restaurantID int64) (*model.Order, error)
	TransitionOrder(ctx context.Context, actor string, restaurantScope *int64, orderID int64, target model.OrderStatus) error
	ModifyItemQuantity(ctx context.Context, orderID, itemID, delta int64) error
	OrderDetail(ctx context.Context, orderID int64) (*model.OrderDetail, error)
	OrderHistory(ctx context.Context, customer string) ([]model.OrderSummary, error)
	OrderCustomer(ctx context.Context, orderID int64) (string, error)
}

// OrderingFacade aggregates the full set of operations used across handlers.
type OrderingFacade interface {
	AccountFacade
	RestaurantFacade
	OrderFacade
}
