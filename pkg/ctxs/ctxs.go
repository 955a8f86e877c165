package ctxs

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Mohamed-Hany1211/Moktashef-back/internal/domain/account"
)

type ctxKey string

const (
	txKey      ctxKey = "pgxTx"
	accountKey ctxKey = "account"
)

// Account is the identity the auth middleware resolves from the session
// token and attaches to the request context.
type Account struct {
	ID    account.ID
	Email string
}

func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

func Tx(ctx context.Context) (pgx.Tx, bool) {
	val := ctx.Value(txKey)
	if val == nil {
		return nil, false
	}

	tx, ok := val.(pgx.Tx)
	return tx, ok
}

func WithAccount(ctx context.Context, a *Account) context.Context {
	return context.WithValue(ctx, accountKey, a)
}

func AccountFromCtx(ctx context.Context) (*Account, bool) {
	val := ctx.Value(accountKey)
	if val == nil {
		return nil, false
	}

	a, ok := val.(*Account)
	return a, ok
}
