package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Accounts() AccountRepository
	Restaurants() RestaurantRepository
	Orders() OrderRepository
}

// TxRunner executes a function against repositories bound to a single
// transaction: everything inside fn commits or rolls back as one unit.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(repos Factory) error) error
}

// Store combines plain repository access with transactional execution.
type Store interface {
	Factory
	TxRunner
}
