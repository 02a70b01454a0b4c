package domain

import "context"

// TransactionManager runs a function within a storage transaction.
// The transaction travels inside the context; repositories resolve it
// transparently, so the same repository code works in and out of a
// transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
