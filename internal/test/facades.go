package test

import (
	"context"

	"github.com/servery/servery/internal/domain/model"
)

// AccountFacadeStub simulates account operations behind the HTTP layer.
type AccountFacadeStub struct {
	RegisterFn       func(context.Context, string, string, string, string) (string, error)
	AuthenticateFn   func(context.Context, string, string) (string, error)
	ParseFn          func(string) (string, error)
	AccountFn        func(context.Context, string) (*model.Account, error)
	UpdateProfileFn  func(context.Context, string, string, string, string, string, string, string) error
	ChangePasswordFn func(context.Context, string, string) error
}

// Register returns a token for successful registration scenarios.
func (s AccountFacadeStub) Register(ctx context.Context, username, password, firstName, lastName string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, username, password, firstName, lastName)
	}
	return "token", nil
}

// Authenticate returns a token for successful authentication scenarios.
func (s AccountFacadeStub) Authenticate(ctx context.Context, username, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, username, password)
	}
	return "token", nil
}

// ParseToken returns the stored username for the authenticated account.
func (s AccountFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "alice", nil
}

// Account returns the configured account view.
func (s AccountFacadeStub) Account(ctx context.Context, username string) (*model.Account, error) {
	if s.AccountFn != nil {
		return s.AccountFn(ctx, username)
	}
	return &model.Account{Username: username, FirstName: "A", LastName: "B"}, nil
}

// UpdateProfile executes the configured override.
func (s AccountFacadeStub) UpdateProfile(ctx context.Context, username, firstName, lastName, address, cardNumber, cardExpiry, cardCode string) error {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, username, firstName, lastName, address, cardNumber, cardExpiry, cardCode)
	}
	return nil
}

// ChangePassword executes the configured override.
func (s AccountFacadeStub) ChangePassword(ctx context.Context, username, password string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, username, password)
	}
	return nil
}

// RestaurantFacadeStub simulates restaurant management operations.
type RestaurantFacadeStub struct {
	RestaurantsFn     func(context.Context) ([]model.Restaurant, error)
	CreateFn          func(context.Context, string, string) (*model.Restaurant, error)
	DetailFn          func(context.Context, int64, string) (*model.RestaurantDetail, error)
	RenameFn          func(context.Context, string, int64, string) error
	DeleteFn          func(context.Context, string, int64) error
	AddEmployeeFn     func(context.Context, string, int64, string) error
	RemoveEmployeeFn  func(context.Context, string, int64, string) error
	AddMenuItemFn     func(context.Context, string, int64, string, int64) (*model.MenuItem, error)
	UpdateMenuItemFn  func(context.Context, string, int64, int64, string, int64) error
	DeleteMenuItemFn  func(context.Context, string, int64, int64) error
	IsEmployeeFn      func(context.Context, int64, string) (bool, error)
	IsEmployeeDefault bool
}

// Restaurants returns the configured restaurant list.
func (s RestaurantFacadeStub) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	if s.RestaurantsFn != nil {
		return s.RestaurantsFn(ctx)
	}
	return []model.Restaurant{{ID: 1, Name: "Bistro", Owner: "alice"}}, nil
}

// CreateRestaurant delegates to the override or returns a default restaurant.
func (s RestaurantFacadeStub) CreateRestaurant(ctx context.Context, owner, name string) (*model.Restaurant, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, owner, name)
	}
	return &model.Restaurant{ID: 1, Name: name, Owner: owner}, nil
}

// RestaurantDetail delegates to the override or returns a default detail view.
func (s RestaurantFacadeStub) RestaurantDetail(ctx context.Context, id int64, viewer string) (*model.RestaurantDetail, error) {
	if s.DetailFn != nil {
		return s.DetailFn(ctx, id, viewer)
	}
	return &model.RestaurantDetail{Restaurant: model.Restaurant{ID: id, Name: "Bistro", Owner: "alice"}}, nil
}

// RenameRestaurant executes the configured override.
func (s RestaurantFacadeStub) RenameRestaurant(ctx context.Context, actor string, id int64, name string) error {
	if s.RenameFn != nil {
		return s.RenameFn(ctx, actor, id, name)
	}
	return nil
}

// DeleteRestaurant executes the configured override.
func (s RestaurantFacadeStub) DeleteRestaurant(ctx context.Context, actor string, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actor, id)
	}
	return nil
}

// AddEmployee executes the configured override.
func (s RestaurantFacadeStub) AddEmployee(ctx context.Context, actor string, id int64, username string) error {
	if s.AddEmployeeFn != nil {
		return s.AddEmployeeFn(ctx, actor, id, username)
	}
	return nil
}

// RemoveEmployee executes the configured override.
func (s RestaurantFacadeStub) RemoveEmployee(ctx context.Context, actor string, id int64, username string) error {
	if s.RemoveEmployeeFn != nil {
		return s.RemoveEmployeeFn(ctx, actor, id, username)
	}
	return nil
}

// AddMenuItem delegates to the override or returns a default item.
func (s RestaurantFacadeStub) AddMenuItem(ctx context.Context, actor string, id int64, name string, priceCents int64) (*model.MenuItem, error) {
	if s.AddMenuItemFn != nil {
		return s.AddMenuItemFn(ctx, actor, id, name, priceCents)
	}
	return &model.MenuItem{ID: 1, RestaurantID: id, Name: name, PriceCents: priceCents}, nil
}

// UpdateMenuItem executes the configured override.
func (s RestaurantFacadeStub) UpdateMenuItem(ctx context.Context, actor string, id, itemID int64, name string, priceCents int64) error {
	if s.UpdateMenuItemFn != nil {
		return s.UpdateMenuItemFn(ctx, actor, id, itemID, name, priceCents)
	}
	return nil
}

// DeleteMenuItem executes the configured override.
func (s RestaurantFacadeStub) DeleteMenuItem(ctx context.Context, actor string, id, itemID int64) error {
	if s.DeleteMenuItemFn != nil {
		return s.DeleteMenuItemFn(ctx, actor, id, itemID)
	}
	return nil
}

// IsEmployee delegates to the override or returns the configured default.
func (s RestaurantFacadeStub) IsEmployee(ctx context.Context, id int64, username string) (bool, error) {
	if s.IsEmployeeFn != nil {
		return s.IsEmployeeFn(ctx, id, username)
	}
	return s.IsEmployeeDefault, nil
}

// TransitionCall records one transition request.
type TransitionCall struct {
	Actor           string
	RestaurantScope *int64
	OrderID         int64
	Target          model.OrderStatus
}

// OrderFacadeStub simulates order lifecycle operations.
type OrderFacadeStub struct {
	CreateOrderFn func(context.Context, string, int64) (*model.Order, error)
	TransitionFn  func(context.Context, string, *int64, int64, model.OrderStatus) error
	ModifyFn      func(context.Context, int64, int64, int64) error
	DetailFn      func(context.Context, int64) (*model.OrderDetail, error)
	HistoryFn     func(context.Context, string) ([]model.OrderSummary, error)
	CustomerFn    func(context.Context, int64) (string, error)
	Transitions   []TransitionCall
}

// CreateOrder delegates to the override or returns a default pending order.
func (s *OrderFacadeStub) CreateOrder(ctx context.Context, customer string, restaurantID int64) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, customer, restaurantID)
	}
	return &model.Order{ID: 1, RestaurantID: restaurantID, Customer: customer, Status: model.OrderStatusPending}, nil
}

// TransitionOrder records the call and delegates to the override.
func (s *OrderFacadeStub) TransitionOrder(ctx context.Context, actor string, restaurantScope *int64, orderID int64, target model.OrderStatus) error {
	s.Transitions = append(s.Transitions, TransitionCall{Actor: actor, RestaurantScope: restaurantScope, OrderID: orderID, Target: target})
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, actor, restaurantScope, orderID, target)
	}
	return nil
}

// ModifyItemQuantity executes the configured override.
func (s *OrderFacadeStub) ModifyItemQuantity(ctx context.Context, orderID, itemID, delta int64) error {
	if s.ModifyFn != nil {
		return s.ModifyFn(ctx, orderID, itemID, delta)
	}
	return nil
}

// OrderDetail delegates to the override or returns a default detail view.
func (s *OrderFacadeStub) OrderDetail(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	if s.DetailFn != nil {
		return s.DetailFn(ctx, orderID)
	}
	return &model.OrderDetail{
		Order:          model.Order{ID: orderID, RestaurantID: 1, Customer: "alice", Status: model.OrderStatusPending},
		RestaurantName: "Bistro",
	}, nil
}

// OrderHistory delegates to the override or returns a single order.
func (s *OrderFacadeStub) OrderHistory(ctx context.Context, customer string) ([]model.OrderSummary, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, customer)
	}
	return []model.OrderSummary{{
		Order:          model.Order{ID: 1, RestaurantID: 1, Customer: customer, Status: model.OrderStatusPending},
		RestaurantName: "Bistro",
	}}, nil
}

// OrderCustomer delegates to the override or returns the default customer.
func (s *OrderFacadeStub) OrderCustomer(ctx context.Context, orderID int64) (string, error) {
	if s.CustomerFn != nil {
		return s.CustomerFn(ctx, orderID)
	}
	return "alice", nil
}

// OrderingFacadeStub aggregates facade dependencies for HTTP layer tests.
type OrderingFacadeStub struct {
	AccountFacadeStub
	RestaurantFacadeStub
	OrderFacadeStub
}
