package ledger

import (
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=interfaces_test.go -destination=mocks_test.go -package=ledger

type sqlConnImpl interface {
	sqlConn
}

type rowImpl interface {
	pgx.Row
}
