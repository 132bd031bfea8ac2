package ledger

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/nikmy/nestedtxn/pkg/errors"
	"github.com/nikmy/nestedtxn/pkg/logger"
	"github.com/nikmy/nestedtxn/pkg/txn"
)

type sqlConn interface {
	txn.Conn
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

const (
	queryOpenAccount    = "INSERT INTO accounts (id, balance) VALUES ($1, $2)"
	queryBalance        = "SELECT balance FROM accounts WHERE id = $1"
	queryMoveFunds      = "UPDATE accounts SET balance = balance + $2 WHERE id = $1 RETURNING balance"
	queryRecordTransfer = "INSERT INTO transfers (from_id, to_id, amount) VALUES ($1, $2, $3) RETURNING id"
	queryAudit          = "INSERT INTO audit_log (transfer_id, note) VALUES ($1, $2)"
)

var schema = [...]string{
	"CREATE TABLE IF NOT EXISTS accounts (id TEXT PRIMARY KEY, balance BIGINT NOT NULL)",
	"CREATE TABLE IF NOT EXISTS transfers (id BIGSERIAL PRIMARY KEY, from_id TEXT NOT NULL, to_id TEXT NOT NULL, amount BIGINT NOT NULL)",
	"CREATE TABLE IF NOT EXISTS audit_log (transfer_id BIGINT NOT NULL, note TEXT NOT NULL)",
}

// Ledger moves funds between accounts stored behind a single
// connection. Calls are serialized since scopes on one connection
// must not interleave.
type Ledger struct {
	mu   sync.Mutex
	log  logger.Logger
	conn sqlConn
	reg  *txn.Registry
}

func New(log logger.Logger, conn sqlConn, reg *txn.Registry) *Ledger {
	return &Ledger{
		log:  log.With("ledger"),
		conn: conn,
		reg:  reg,
	}
}

func (l *Ledger) Migrate(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.reg.Run(ctx, l.conn, func(ctx context.Context, _ *txn.Scope) error {
		for _, stmt := range schema {
			err := l.conn.Exec(ctx, stmt)
			if err != nil {
				return errors.WrapFail(err, "apply schema")
			}
		}
		return nil
	})
}

func (l *Ledger) Open(ctx context.Context, acc Account) error {
	if acc.ID == "" || acc.Balance < 0 {
		return errors.Wrap(ErrInvalidTransfer, "bad account")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.reg.Run(ctx, l.conn, func(ctx context.Context, _ *txn.Scope) error {
		return errors.WrapFailf(l.conn.Exec(ctx, queryOpenAccount, acc.ID, acc.Balance), "open account %q", acc.ID)
	})
}

// Balance reads inside a discarded scope, so it never leaves a
// transaction open on the connection.
func (l *Ledger) Balance(ctx context.Context, id string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var balance int64
	err := l.reg.Run(ctx, l.conn, func(ctx context.Context, _ *txn.Scope) error {
		err := l.conn.QueryRow(ctx, queryBalance, id).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.Wrap(ErrUnknownAccount, id)
		}
		return errors.WrapFailf(err, "read balance of %q", id)
	}, txn.ForceDiscard())

	return balance, err
}

func (l *Ledger) Transfer(ctx context.Context, t Transfer) (Receipt, error) {
	err := t.validate()
	if err != nil {
		return Receipt{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var opts []txn.Option
	if t.DryRun {
		opts = append(opts, txn.ForceDiscard())
	}

	receipt := Receipt{DryRun: t.DryRun}
	err = l.reg.Run(ctx, l.conn, func(ctx context.Context, _ *txn.Scope) error {
		err := l.move(ctx, t.From, -t.Amount)
		if err != nil {
			return err
		}

		err = l.move(ctx, t.To, t.Amount)
		if err != nil {
			return err
		}

		err = l.conn.QueryRow(ctx, queryRecordTransfer, t.From, t.To, t.Amount).Scan(&receipt.ID)
		if err != nil {
			return errors.WrapFail(err, "record transfer")
		}

		receipt.Audited = l.audit(ctx, receipt.ID, t)
		return nil
	}, opts...)
	if err != nil {
		return Receipt{}, err
	}

	l.log.Infof("transfer %d: %s -> %s, %d (dry run: %t)", receipt.ID, t.From, t.To, t.Amount, t.DryRun)
	return receipt, nil
}

func (l *Ledger) move(ctx context.Context, id string, delta int64) error {
	return l.reg.Run(ctx, l.conn, func(ctx context.Context, _ *txn.Scope) error {
		var balance int64
		err := l.conn.QueryRow(ctx, queryMoveFunds, id, delta).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.Wrap(ErrUnknownAccount, id)
		}
		if err != nil {
			return errors.WrapFailf(err, "update balance of %q", id)
		}

		if balance < 0 {
			return errors.Wrap(ErrInsufficientFunds, id)
		}
		return nil
	})
}

// audit failures only roll back the audit record.
func (l *Ledger) audit(ctx context.Context, id int64, t Transfer) bool {
	note := t.From + " -> " + t.To
	err := l.reg.Run(ctx, l.conn, func(ctx context.Context, _ *txn.Scope) error {
		return l.conn.Exec(ctx, queryAudit, id, note)
	})
	if err != nil {
		l.log.Warn(errors.WrapFailf(err, "audit transfer %d", id))
		return false
	}
	return true
}
