package usecase

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/servery/servery/internal/domain/errors"
	"github.com/servery/servery/internal/domain/model"
	"github.com/servery/servery/internal/domain/repository"
)

// RestaurantUseCase handles restaurant, staff, and menu management.
// Management operations are owner-only and require the restaurant to be live.
type RestaurantUseCase struct {
	store repository.Store
}

// NewRestaurantUseCase constructs RestaurantUseCase.
func NewRestaurantUseCase(store repository.Store) *RestaurantUseCase {
	return &RestaurantUseCase{store: store}
}

// Create inserts a restaurant and enrols the owner as its first employee in
// one transaction.
func (u *RestaurantUseCase) Create(ctx context.Context, owner, name string) (*model.Restaurant, error) {
	var restaurant *model.Restaurant
	err := u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		var err error
		restaurant, err = repos.Restaurants().Create(ctx, name, owner)
		if err != nil {
			return err
		}
		return repos.Restaurants().AddEmployee(ctx, restaurant.ID, owner)
	})
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}

// List returns live restaurants.
func (u *RestaurantUseCase) List(ctx context.Context) ([]model.Restaurant, error) {
	return u.store.Restaurants().List(ctx)
}

// Detail returns the restaurant with its live menu, plus the employee list
// when the viewer owns it and the active-order board when the viewer works
// there. An empty viewer sees the public sections only.
func (u *RestaurantUseCase) Detail(ctx context.Context, id int64, viewer string) (*model.RestaurantDetail, error) {
	restaurant, err := u.store.Restaurants().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.RestaurantDetail{Restaurant: *restaurant}
	if detail.Menu, err = u.store.Restaurants().MenuItems(ctx, id); err != nil {
		return nil, err
	}

	if viewer == "" {
		return detail, nil
	}

	if restaurant.Owner == viewer {
		if detail.Employees, err = u.store.Restaurants().Employees(ctx, id); err != nil {
			return nil, err
		}
	}

	employed, err := u.store.Restaurants().IsEmployee(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if employed {
		if detail.ActiveOrders, err = u.store.Orders().ListActiveByRestaurant(ctx, id); err != nil {
			return nil, err
		}
	}

	return detail, nil
}

// IsEmployee reports whether the username is enrolled at the restaurant.
func (u *RestaurantUseCase) IsEmployee(ctx context.Context, id int64, username string) (bool, error) {
	return u.store.Restaurants().IsEmployee(ctx, id, username)
}

// Rename changes the restaurant name. Owner-only.
func (u *RestaurantUseCase) Rename(ctx context.Context, actor string, id int64, name string) error {
	return u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		if err := u.requireOwner(ctx, repos, id, actor); err != nil {
			return err
		}
		return repos.Restaurants().Rename(ctx, id, name)
	})
}

// Delete soft-deletes the restaurant. Its orders and menu stay in storage for
// history but it accepts no new orders or transitions. Owner-only.
func (u *RestaurantUseCase) Delete(ctx context.Context, actor string, id int64) error {
	return u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		if err := u.requireOwner(ctx, repos, id, actor); err != nil {
			return err
		}
		return repos.Restaurants().SoftDelete(ctx, id)
	})
}

// AddEmployee enrols an existing account. Duplicate enrolment is a no-op.
// Owner-only.
func (u *RestaurantUseCase) AddEmployee(ctx context.Context, actor string, id int64, username string) error {
	return u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		if err := u.requireOwner(ctx, repos, id, actor); err != nil {
			return err
		}
		if _, err := repos.Accounts().GetByUsername(ctx, username); err != nil {
			return err
		}
		return repos.Restaurants().AddEmployee(ctx, id, username)
	})
}

// RemoveEmployee withdraws an enrolment. Owner-only.
func (u *RestaurantUseCase) RemoveEmployee(ctx context.Context, actor string, id int64, username string) error {
	return u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		if err := u.requireOwner(ctx, repos, id, actor); err != nil {
			return err
		}
		return repos.Restaurants().RemoveEmployee(ctx, id, username)
	})
}

// AddMenuItem adds a dish to the menu. Owner-only.
func (u *RestaurantUseCase) AddMenuItem(ctx context.Context, actor string, id int64, name string, priceCents int64) (*model.MenuItem, error) {
	var item *model.MenuItem
	err := u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		if err := u.requireOwner(ctx, repos, id, actor); err != nil {
			return err
		}
		var err error
		item, err = repos.Restaurants().AddMenuItem(ctx, id, name, priceCents)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenuItem changes a dish's name and price. Owner-only.
func (u *RestaurantUseCase) UpdateMenuItem(ctx context.Context, actor string, id, itemID int64, name string, priceCents int64) error {
	return u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		if err := u.requireOwner(ctx, repos, id, actor); err != nil {
			return err
		}
		return repos.Restaurants().UpdateMenuItem(ctx, id, itemID, name, priceCents)
	})
}

// DeleteMenuItem soft-deletes a dish; orders that snapshotted it keep
// referencing it. Owner-only.
func (u *RestaurantUseCase) DeleteMenuItem(ctx context.Context, actor string, id, itemID int64) error {
	return u.store.WithinTransaction(ctx, func(repos repository.Factory) error {
		if err := u.requireOwner(ctx, repos, id, actor); err != nil {
			return err
		}
		return repos.Restaurants().SoftDeleteMenuItem(ctx, id, itemID)
	})
}

func (u *RestaurantUseCase) requireOwner(ctx context.Context, repos repository.Factory, id int64, actor string) error {
	restaurant, err := repos.Restaurants().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return fmt.Errorf("%w: restaurant %d", domainErrors.ErrRestaurantUnavailable, id)
		}
		return err
	}
	if restaurant.Owner != actor {
		return fmt.Errorf("%w: restaurant %d is not managed by %s", domainErrors.ErrNotOwner, id, actor)
	}
	return nil
}
