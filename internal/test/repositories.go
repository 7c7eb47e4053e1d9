package test

import (
	"context"
	"fmt"
	"sort"
	"time"

	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/domain/model"
	"github.com/servery/servery/internal/domain/repository"
)

// LineKey identifies one (order, menu item) pairing.
type LineKey struct {
	OrderID int64
	ItemID  int64
}

// StoreStub is an in-memory repository.Store mirroring the semantics of the
// PostgreSQL implementation: soft-delete filtering, foreign keys as not-found
// errors, and quantity flooring at zero. WithinTransaction runs the function
// against the stub itself, so everything observes the same state.
type StoreStub struct {
	AccountRows    map[string]*model.Account
	RestaurantRows map[int64]*model.Restaurant
	EmployeeRows   map[int64]map[string]bool
	MenuItemRows   map[int64]*model.MenuItem
	OrderRows      map[int64]*model.Order
	QuantityRows   map[LineKey]int64

	NextRestaurantID int64
	NextMenuItemID   int64
	NextOrderID      int64

	Err     error // when set, every repository call fails with it
	TxErr   error // when set, WithinTransaction fails before running fn
	TxCount int
}

// NewStoreStub constructs the stub with initialized maps.
func NewStoreStub() *StoreStub {
	return &StoreStub{
		AccountRows:      make(map[string]*model.Account),
		RestaurantRows:   make(map[int64]*model.Restaurant),
		EmployeeRows:     make(map[int64]map[string]bool),
		MenuItemRows:     make(map[int64]*model.MenuItem),
		OrderRows:        make(map[int64]*model.Order),
		QuantityRows:     make(map[LineKey]int64),
		NextRestaurantID: 1,
		NextMenuItemID:   1,
		NextOrderID:      1,
	}
}

var _ repository.Store = (*StoreStub)(nil)

// Seeding helpers.

// SeedAccount stores the account as-is.
func (s *StoreStub) SeedAccount(account model.Account) *model.Account {
	copied := account
	s.AccountRows[copied.Username] = &copied
	return &copied
}

// SeedRestaurant inserts a restaurant without enrolling the owner.
func (s *StoreStub) SeedRestaurant(name, owner string) *model.Restaurant {
	restaurant := &model.Restaurant{ID: s.NextRestaurantID, Name: name, Owner: owner}
	s.NextRestaurantID++
	s.RestaurantRows[restaurant.ID] = restaurant
	return restaurant
}

// SeedEmployee enrols the username without foreign key checks.
func (s *StoreStub) SeedEmployee(restaurantID int64, username string) {
	if s.EmployeeRows[restaurantID] == nil {
		s.EmployeeRows[restaurantID] = make(map[string]bool)
	}
	s.EmployeeRows[restaurantID][username] = true
}

// SeedMenuItem inserts a menu item.
func (s *StoreStub) SeedMenuItem(restaurantID int64, name string, priceCents int64) *model.MenuItem {
	item := &model.MenuItem{ID: s.NextMenuItemID, RestaurantID: restaurantID, Name: name, PriceCents: priceCents}
	s.NextMenuItemID++
	s.MenuItemRows[item.ID] = item
	return item
}

// SeedOrder inserts an order with the given status.
func (s *StoreStub) SeedOrder(restaurantID int64, customer string, status model.OrderStatus) *model.Order {
	order := &model.Order{
		ID:           s.NextOrderID,
		RestaurantID: restaurantID,
		Customer:     customer,
		Status:       status,
		CreatedAt:    time.Unix(1700000000+s.NextOrderID, 0),
	}
	s.NextOrderID++
	s.OrderRows[order.ID] = order
	return order
}

// SeedQuantity sets a cart line directly.
func (s *StoreStub) SeedQuantity(orderID, itemID, quantity int64) {
	s.QuantityRows[LineKey{OrderID: orderID, ItemID: itemID}] = quantity
}

// Store interface.

func (s *StoreStub) Accounts() repository.AccountRepository {
	return &stubAccounts{s}
}

func (s *StoreStub) Restaurants() repository.RestaurantRepository {
	return &stubRestaurants{s}
}

func (s *StoreStub) Orders() repository.OrderRepository {
	return &stubOrders{s}
}

func (s *StoreStub) WithinTransaction(ctx context.Context, fn func(repos repository.Factory) error) error {
	if s.TxErr != nil {
		return s.TxErr
	}
	s.TxCount++
	return fn(s)
}

// --- accounts ---

type stubAccounts struct {
	s *StoreStub
}

func (r *stubAccounts) Create(ctx context.Context, username, passwordHash, firstName, lastName string) (*model.Account, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if _, exists := r.s.AccountRows[username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	account := &model.Account{
		Username:     username,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Unix(1700000000, 0),
	}
	r.s.AccountRows[username] = account
	copied := *account
	return &copied, nil
}

func (r *stubAccounts) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	account, ok := r.s.AccountRows[username]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *stubAccounts) UpdateProfile(ctx context.Context, account *model.Account) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	stored, ok := r.s.AccountRows[account.Username]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.FirstName = account.FirstName
	stored.LastName = account.LastName
	stored.Address = account.Address
	stored.CardNumber = account.CardNumber
	stored.CardExpiry = account.CardExpiry
	stored.CardCode = account.CardCode
	return nil
}

func (r *stubAccounts) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	stored, ok := r.s.AccountRows[username]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.PasswordHash = passwordHash
	return nil
}

// --- restaurants ---

type stubRestaurants struct {
	s *StoreStub
}

func (r *stubRestaurants) Create(ctx context.Context, name, owner string) (*model.Restaurant, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if _, ok := r.s.AccountRows[owner]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	restaurant := r.s.SeedRestaurant(name, owner)
	copied := *restaurant
	return &copied, nil
}

func (r *stubRestaurants) List(ctx context.Context) ([]model.Restaurant, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var result []model.Restaurant
	for _, restaurant := range r.s.RestaurantRows {
		if !restaurant.Deleted {
			result = append(result, *restaurant)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *stubRestaurants) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	restaurant, ok := r.s.RestaurantRows[id]
	if !ok || restaurant.Deleted {
		return nil, domainErrors.ErrNotFound
	}
	copied := *restaurant
	return &copied, nil
}

func (r *stubRestaurants) IsLive(ctx context.Context, id int64) (bool, error) {
	if r.s.Err != nil {
		return false, r.s.Err
	}
	restaurant, ok := r.s.RestaurantRows[id]
	return ok && !restaurant.Deleted, nil
}

func (r *stubRestaurants) Rename(ctx context.Context, id int64, name string) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	restaurant, ok := r.s.RestaurantRows[id]
	if !ok || restaurant.Deleted {
		return domainErrors.ErrNotFound
	}
	restaurant.Name = name
	return nil
}

func (r *stubRestaurants) SoftDelete(ctx context.Context, id int64) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	restaurant, ok := r.s.RestaurantRows[id]
	if !ok || restaurant.Deleted {
		return domainErrors.ErrNotFound
	}
	restaurant.Deleted = true
	return nil
}

func (r *stubRestaurants) IsEmployee(ctx context.Context, id int64, username string) (bool, error) {
	if r.s.Err != nil {
		return false, r.s.Err
	}
	return r.s.EmployeeRows[id][username], nil
}

func (r *stubRestaurants) Employees(ctx context.Context, id int64) ([]string, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var result []string
	for username := range r.s.EmployeeRows[id] {
		result = append(result, username)
	}
	sort.Strings(result)
	return result, nil
}

func (r *stubRestaurants) AddEmployee(ctx context.Context, id int64, username string) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.AccountRows[username]; !ok {
		return domainErrors.ErrNotFound
	}
	if _, ok := r.s.RestaurantRows[id]; !ok {
		return domainErrors.ErrNotFound
	}
	r.s.SeedEmployee(id, username)
	return nil
}

func (r *stubRestaurants) RemoveEmployee(ctx context.Context, id int64, username string) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	delete(r.s.EmployeeRows[id], username)
	return nil
}

func (r *stubRestaurants) MenuItems(ctx context.Context, id int64) ([]model.MenuItem, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var result []model.MenuItem
	for _, item := range r.s.MenuItemRows {
		if item.RestaurantID == id && !item.Deleted {
			result = append(result, *item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *stubRestaurants) AddMenuItem(ctx context.Context, id int64, name string, priceCents int64) (*model.MenuItem, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if _, ok := r.s.RestaurantRows[id]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	item := r.s.SeedMenuItem(id, name, priceCents)
	copied := *item
	return &copied, nil
}

func (r *stubRestaurants) UpdateMenuItem(ctx context.Context, id, itemID int64, name string, priceCents int64) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	item, ok := r.s.MenuItemRows[itemID]
	if !ok || item.RestaurantID != id || item.Deleted {
		return domainErrors.ErrNotFound
	}
	item.Name = name
	item.PriceCents = priceCents
	return nil
}

func (r *stubRestaurants) SoftDeleteMenuItem(ctx context.Context, id, itemID int64) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	item, ok := r.s.MenuItemRows[itemID]
	if !ok || item.RestaurantID != id || item.Deleted {
		return domainErrors.ErrNotFound
	}
	item.Deleted = true
	return nil
}

// --- orders ---

type stubOrders struct {
	s *StoreStub
}

func (r *stubOrders) Create(ctx context.Context, restaurantID int64, customer string) (*model.Order, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	order := r.s.SeedOrder(restaurantID, customer, model.OrderStatusPending)
	copied := *order
	return &copied, nil
}

func (r *stubOrders) GetForUpdate(ctx context.Context, orderID int64, restaurantID *int64) (*model.Order, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	order, ok := r.s.OrderRows[orderID]
	if !ok || (restaurantID != nil && order.RestaurantID != *restaurantID) {
		return nil, domainErrors.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *stubOrders) GetDetail(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	order, ok := r.s.OrderRows[orderID]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	detail := &model.OrderDetail{Order: *order}
	if restaurant, ok := r.s.RestaurantRows[order.RestaurantID]; ok {
		detail.RestaurantName = restaurant.Name
	}
	return detail, nil
}

func (r *stubOrders) Customer(ctx context.Context, orderID int64) (string, error) {
	if r.s.Err != nil {
		return "", r.s.Err
	}
	order, ok := r.s.OrderRows[orderID]
	if !ok {
		return "", domainErrors.ErrOrderNotFound
	}
	return order.Customer, nil
}

func (r *stubOrders) Lines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var result []model.OrderLine
	for key, quantity := range r.s.QuantityRows {
		if key.OrderID != orderID {
			continue
		}
		item, ok := r.s.MenuItemRows[key.ItemID]
		if !ok {
			return nil, fmt.Errorf("dangling order line for item %d", key.ItemID)
		}
		result = append(result, model.OrderLine{
			ItemID:           item.ID,
			Name:             item.Name,
			PriceCents:       item.PriceCents,
			Quantity:         quantity,
			ItemRestaurantID: item.RestaurantID,
			ItemDeleted:      item.Deleted,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ItemID < result[j].ItemID })
	return result, nil
}

func (r *stubOrders) PendingLines(ctx context.Context, orderID, restaurantID int64) ([]model.OrderLine, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var result []model.OrderLine
	for _, item := range r.s.MenuItemRows {
		if item.RestaurantID != restaurantID || item.Deleted {
			continue
		}
		result = append(result, model.OrderLine{
			ItemID:           item.ID,
			Name:             item.Name,
			PriceCents:       item.PriceCents,
			Quantity:         r.s.QuantityRows[LineKey{OrderID: orderID, ItemID: item.ID}],
			ItemRestaurantID: item.RestaurantID,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ItemID < result[j].ItemID })
	return result, nil
}

func (r *stubOrders) FrozenLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var result []model.OrderLine
	for key, quantity := range r.s.QuantityRows {
		if key.OrderID != orderID || quantity <= 0 {
			continue
		}
		item, ok := r.s.MenuItemRows[key.ItemID]
		if !ok {
			return nil, fmt.Errorf("dangling order line for item %d", key.ItemID)
		}
		result = append(result, model.OrderLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: quantity,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ItemID < result[j].ItemID })
	return result, nil
}

func (r *stubOrders) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	order, ok := r.s.OrderRows[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (r *stubOrders) MarkPaid(ctx context.Context, orderID int64, address string, totalCents int64) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	order, ok := r.s.OrderRows[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	order.Status = model.OrderStatusPaid
	order.Address = address
	order.TotalCents = totalCents
	return nil
}

func (r *stubOrders) AdjustLineQuantity(ctx context.Context, orderID, itemID, delta int64) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.OrderRows[orderID]; !ok {
		return domainErrors.ErrNotFound
	}
	if _, ok := r.s.MenuItemRows[itemID]; !ok {
		return domainErrors.ErrNotFound
	}
	key := LineKey{OrderID: orderID, ItemID: itemID}
	quantity := r.s.QuantityRows[key] + delta
	if quantity < 0 {
		quantity = 0
	}
	r.s.QuantityRows[key] = quantity
	return nil
}

func (r *stubOrders) ListByCustomer(ctx context.Context, customer string) ([]model.OrderSummary, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var result []model.OrderSummary
	for _, order := range r.s.OrderRows {
		if order.Customer != customer {
			continue
		}
		summary := model.OrderSummary{Order: *order}
		if restaurant, ok := r.s.RestaurantRows[order.RestaurantID]; ok {
			summary.RestaurantName = restaurant.Name
		}
		result = append(result, summary)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *stubOrders) ListActiveByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error) {
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var result []model.Order
	for _, order := range r.s.OrderRows {
		if order.RestaurantID != restaurantID {
			continue
		}
		if order.Status == model.OrderStatusPaid || order.Status == model.OrderStatusAccepted {
			result = append(result, *order)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}
