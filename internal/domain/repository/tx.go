package repository

import "context"

// TxManager runs a function inside one atomic unit of work. The transaction
// handle travels in the context, so every repository call made with the
// derived context joins the same transaction; any returned error rolls the
// whole unit back.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
