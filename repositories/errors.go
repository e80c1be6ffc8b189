package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is the repository-level not-found error; services translate
// it into their own typed errors.
var ErrNotFound = errors.New("record not found")

type contextKey string

// txContextKey carries an open transaction through a context so that
// repositories called inside a service transaction reuse it.
const txContextKey = contextKey("tx")

// WithTx returns a context carrying the transaction handle.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}

// txFromContext extracts the transaction handle, if any.
func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey).(*gorm.DB)
	return tx, ok && tx != nil
}
