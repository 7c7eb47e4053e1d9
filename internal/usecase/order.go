package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/domain/model"
	"github.com/servery/servery/internal/domain/repository"
)

// OrderUseCase encapsulates the order lifecycle: creation, cart editing, and
// the status transition engine. Every mutation runs inside one storage
// transaction with the order row locked, so concurrent calls against the same
// order serialize and the loser sees the updated status.
type OrderUseCase struct {
	store repository.Store
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(store repository.Store) *OrderUseCase {
	return &OrderUseCase{store: store}
}

// Create opens a new PENDING order for the customer at a live restaurant.
func (u *OrderUseCase) Create(ctx context.Context, customer string, restaurantID int64) (*model.Order, error) {
	var order *model.Order
	err := u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		live, err := repos.Restaurants().IsLive(ctx, restaurantID)
		if err != nil {
			return err
		}
		if !live {
			return fmt.Errorf("%w: restaurant %d", domainErrors.ErrRestaurantUnavailable, restaurantID)
		}
		order, err = repos.Orders().Create(ctx, restaurantID, customer)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Transition validates and applies a status change. restaurantScope is non-nil
// for employee-initiated calls and additionally scopes the order lookup; a nil
// scope looks the order up by id alone. Each gate aborts the whole operation:
// nothing is committed unless every check passes.
func (u *OrderUseCase) Transition(ctx context.Context, actor string, restaurantScope *int64, orderID int64, target model.OrderStatus) error {
	return u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		order, err := repos.Orders().GetForUpdate(ctx, orderID, restaurantScope)
		if err != nil {
			return err
		}

		live, err := repos.Restaurants().IsLive(ctx, order.RestaurantID)
		if err != nil {
			return err
		}
		if !live {
			return fmt.Errorf("%w: restaurant %d", domainErrors.ErrRestaurantUnavailable, order.RestaurantID)
		}

		if !order.Status.Known() {
			return &domainErrors.CorruptOrderStatusError{OrderID: order.ID, Value: string(order.Status)}
		}

		if !model.CanTransition(order.Status, target) {
			return fmt.Errorf("%w %s -> %s", domainErrors.ErrInvalidTransition, order.Status, target)
		}

		switch target {
		case model.OrderStatusPaid:
			return u.pay(ctx, repos, actor, order)
		case model.OrderStatusCancelled:
			if order.Customer != actor {
				return fmt.Errorf("%w: cannot cancel someone else's order", domainErrors.ErrNotOwner)
			}
		case model.OrderStatusAccepted, model.OrderStatusDelivered:
			employed, err := repos.Restaurants().IsEmployee(ctx, order.RestaurantID, actor)
			if err != nil {
				return err
			}
			if !employed {
				return fmt.Errorf("%w of restaurant %d", domainErrors.ErrNotEmployee, order.RestaurantID)
			}
		}

		return repos.Orders().SetStatus(ctx, order.ID, target)
	})
}

// pay applies the PENDING -> PAID edge: ownership, billing completeness, and
// line item integrity, then the total/address snapshot together with the
// status in one statement.
func (u *OrderUseCase) pay(ctx context.Context, repos repository.Factory, actor string, order *model.Order) error {
	if order.Customer != actor {
		return fmt.Errorf("%w: cannot pay for someone else's order", domainErrors.ErrNotOwner)
	}

	account, err := repos.Accounts().GetByUsername(ctx, order.Customer)
	if err != nil {
		return err
	}
	if !account.BillingComplete() {
		return fmt.Errorf("%w for account %s", domainErrors.ErrIncompleteBilling, order.Customer)
	}

	lines, err := repos.Orders().Lines(ctx, order.ID)
	if err != nil {
		return err
	}

	// The cart editor never offers items from other restaurants or deleted
	// items, so these two checks only fire on tampered data. Pay time is the
	// integrity boundary regardless.
	var total int64
	var count int
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if line.ItemRestaurantID != order.RestaurantID {
			return fmt.Errorf("%w: item %s", domainErrors.ErrCrossRestaurantItem, line.Name)
		}
		if line.ItemDeleted {
			return fmt.Errorf("%w: item %s", domainErrors.ErrDeletedItem, line.Name)
		}
		total += line.PriceCents * line.Quantity
		count++
	}
	if count == 0 {
		return fmt.Errorf("%w: order %d", domainErrors.ErrEmptyOrder, order.ID)
	}

	return repos.Orders().MarkPaid(ctx, order.ID, account.Address, total)
}

// ModifyItemQuantity adds delta to the cart line, flooring the result at zero.
// Item liveness and restaurant membership are deliberately not checked here;
// the pay gate enforces both. The order row is locked so a concurrent pay
// cannot snapshot a half-applied edit.
func (u *OrderUseCase) ModifyItemQuantity(ctx context.Context, orderID, itemID, delta int64) error {
	return u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		order, err := repos.Orders().GetForUpdate(ctx, orderID, nil)
		if err != nil {
			return err
		}
		if !order.Status.Known() {
			return &domainErrors.CorruptOrderStatusError{OrderID: order.ID, Value: string(order.Status)}
		}
		if order.Status != model.OrderStatusPending {
			return fmt.Errorf("%w: order %d is %s", domainErrors.ErrOrderNotEditable, order.ID, order.Status)
		}
		return repos.Orders().AdjustLineQuantity(ctx, orderID, itemID, delta)
	})
}

// Detail returns the order with its line items. A PENDING order shows the
// restaurant's live menu with current prices and cart quantities; any other
// status shows the frozen lines, with the stored total as the only price
// authority.
func (u *OrderUseCase) Detail(ctx context.Context, orderID int64) (*model.OrderDetail, error) {
	detail, err := u.store.Orders().GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !detail.Status.Known() {
		return nil, &domainErrors.CorruptOrderStatusError{OrderID: detail.ID, Value: string(detail.Status)}
	}

	if detail.Status == model.OrderStatusPending {
		detail.Lines, err = u.store.Orders().PendingLines(ctx, orderID, detail.RestaurantID)
	} else {
		detail.Lines, err = u.store.Orders().FrozenLines(ctx, orderID)
	}
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// History lists the customer's orders, newest first, restaurant names
// included even for restaurants deleted since.
func (u *OrderUseCase) History(ctx context.Context, customer string) ([]model.OrderSummary, error) {
	return u.store.Orders().ListByCustomer(ctx, customer)
}

// Customer returns the order's customer username for access checks at the
// HTTP layer.
func (u *OrderUseCase) Customer(ctx context.Context, orderID int64) (string, error) {
	return u.store.Orders().Customer(ctx, orderID)
}
