package app

import (
	"context"

	"github.com/servery/servery/internal/domain/model"
	"github.com/servery/servery/internal/usecase"
)

// OrderingFacade aggregates the usecases behind the interfaces the HTTP layer
// consumes.
type OrderingFacade struct {
	accounts    *usecase.AccountUseCase
	restaurants *usecase.RestaurantUseCase
	orders      *usecase.OrderUseCase
}

// NewOrderingFacade constructs the facade.
func NewOrderingFacade(accounts *usecase.AccountUseCase, restaurants *usecase.RestaurantUseCase, orders *usecase.OrderUseCase) *OrderingFacade {
	return &OrderingFacade{accounts: accounts, restaurants: restaurants, orders: orders}
}

func (f *OrderingFacade) Register(ctx context.Context, username, password, firstName, lastName string) (string, error) {
	_, token, err := f.accounts.Register(ctx, username, password, firstName, lastName)
	return token, err
}

func (f *OrderingFacade) Authenticate(ctx context.Context, username, password string) (string, error) {
	_, token, err := f.accounts.Authenticate(ctx, username, password)
	return token, err
}

func (f *OrderingFacade) ParseToken(token string) (string, error) {
	return f.accounts.ParseToken(token)
}

func (f *OrderingFacade) Account(ctx context.Context, username string) (*model.Account, error) {
	return f.accounts.Get(ctx, username)
}

func (f *OrderingFacade) UpdateProfile(ctx context.Context, username, firstName, lastName, address, cardNumber, cardExpiry, cardCode string) error {
	return f.accounts.UpdateProfile(ctx, username, firstName, lastName, address, cardNumber, cardExpiry, cardCode)
}

func (f *OrderingFacade) ChangePassword(ctx context.Context, username, password string) error {
	return f.accounts.ChangePassword(ctx, username, password)
}

func (f *OrderingFacade) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	return f.restaurants.List(ctx)
}

func (f *OrderingFacade) CreateRestaurant(ctx context.Context, owner, name string) (*model.Restaurant, error) {
	return f.restaurants.Create(ctx, owner, name)
}

func (f *OrderingFacade) RestaurantDetail(ctx context.Context, id int64, viewer string) (*model.RestaurantDetail, error) {
	return f.restaurants.Detail(ctx, id, viewer)
}

func (f *OrderingFacade) RenameRestaurant(ctx context.Context, actor string, id int64, name string) error {
	return f.restaurants.Rename(ctx, actor, id, name)
}

func (f *OrderingFacade) DeleteRestaurant(ctx context.Context, actor string, id int64) error {
	return f.restaurants.Delete(ctx, actor, id)
}

func (f *OrderingFacade) AddEmployee(ctx context.Context, actor string, id int64, username string) error {
	return f.restaurants.AddEmployee(ctx, actor, id, username)
}

func (f *OrderingFacade) RemoveEmployee(ctx context.Context, actor string, id int64, username string) error {
	return f.restaurants.RemoveEmployee(ctx, actor, id, username)
}

func (f *OrderingFacade) AddMenuItem(ctx context.Context, actor string, id int64, name string, priceCents int64) (*model.MenuItem, error) {
	return f.restaurants.AddMenuItem(ctx, actor, id, name, priceCents)
}

func (f *OrderingFacade) UpdateMenuItem(ctx context.Context, actor string, id, itemID int64, name string, priceCents int64) error {
	return f.restaurants.UpdateMenuItem(ctx, actor, id, itemID, name, priceCents)
}

func (f *OrderingFacade) DeleteMenuItem(ctx context.Context, actor string, id, itemID int64) error {
	return f.restaurants.DeleteMenuItem(ctx, actor, id, itemID)
}

func (f *OrderingFacade) IsEmployee(ctx context.Context, id int64, username string) (bool, error) {
	return f.restaurants.IsEmployee(ctx, id, username)
}

func (f *OrderingFacade) CreateOrder(ctx context.Context, customer string, restaurantID int64) (*model.Order, error) {
	return f.orders.Create(ctx, customer, restaurantID)
}

func (f *OrderingFacade) TransitionOrder(ctx context.Context, actor string, restaurantScope *int64, orderID int64, target model.OrderStatus) error {
	return f.orders.Transition(ctx, actor, restaurantScope, orderID, target)
}

func (f *OrderingFacade) ModifyItemQuantity(ctx context.Context, orderID, itemID, delta int64) error {
	return f.orders.ModifyItemQuantity(ctx, orderID, itemID, delta)
}

func (f *OrderingFacade) OrderDetail(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	return f.orders.Detail(ctx, orderID)
}

func (f *OrderingFacade) OrderHistory(ctx context.Context, customer string) ([]model.OrderSummary, error) {
	return f.orders.History(ctx, customer)
}

func (f *OrderingFacade) OrderCustomer(ctx context.Context, orderID int64) (string, error) {
	return f.orders.Customer(ctx, orderID)
}
