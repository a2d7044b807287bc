package ports

import (
	"context"
)

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Repositories returned after Begin use the open transaction.
	CourierRepository() CourierRepository
	OrderRepository() OrderRepository
	ClientRepository() ClientRepository
}
