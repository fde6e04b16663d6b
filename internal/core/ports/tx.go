package ports

import "context"

// TxManager runs fn inside a single storage transaction. The returned
// context carries the transaction; repositories resolve it from there.
// Any error from fn rolls the whole unit back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
