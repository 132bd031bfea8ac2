package api

import (
	"context"

	"github.com/nikmy/nestedtxn/internal/ledger"
)

type Server interface {
	Serve(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type Ledger interface {
	Open(ctx context.Context, acc ledger.Account) error
	Balance(ctx context.Context, id string) (int64, error)
	Transfer(ctx context.Context, t ledger.Transfer) (ledger.Receipt, error)
}
