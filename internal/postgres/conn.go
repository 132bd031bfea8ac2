package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nikmy/nestedtxn/pkg/errors"
	"github.com/nikmy/nestedtxn/pkg/txn"
)

var ErrSetSessionInTransaction = errors.Error("set_session cannot be used inside a transaction")

// Conn adapts a pgx connection to txn.Conn.
//
// With autocommit off the adapter opens a transaction with BEGIN
// before the first statement on an idle connection, so callers never
// issue BEGIN themselves.
type Conn struct {
	c          *pgx.Conn
	autocommit bool
	sealed     bool
	ctl        *txn.TxControl
}

func Connect(ctx context.Context, cfg Config) (*Conn, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	c, err := pgx.Connect(ctx, cfg.DSN)
	if err != nil {
		return nil, errors.WrapFail(err, "connect to postgres")
	}

	conn := New(c)
	conn.autocommit = cfg.Autocommit
	conn.sealed = cfg.Sealed
	return conn, nil
}

// New wraps c in autocommit mode.
func New(c *pgx.Conn) *Conn {
	return &Conn{c: c, autocommit: true}
}

func (c *Conn) Close(ctx context.Context) error {
	return errors.WrapFail(c.c.Close(ctx), "close postgres connection")
}

func (c *Conn) Exec(ctx context.Context, query string, args ...any) error {
	err := c.maybeBegin(ctx, query)
	if err != nil {
		return err
	}

	_, err = c.c.Exec(ctx, query, args...)
	return err
}

func (c *Conn) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	err := c.maybeBegin(ctx, query)
	if err != nil {
		return errRow{err}
	}
	return c.c.QueryRow(ctx, query, args...)
}

func (c *Conn) maybeBegin(ctx context.Context, query string) error {
	if c.autocommit || c.Status() != txn.StatusIdle || endsTransaction(query) {
		return nil
	}

	_, err := c.c.Exec(ctx, "BEGIN")
	return err
}

func endsTransaction(query string) bool {
	switch strings.ToUpper(strings.TrimSpace(query)) {
	case "COMMIT", "ROLLBACK", "END", "ABORT":
		return true
	default:
		return false
	}
}

func (c *Conn) Status() txn.Status {
	return statusFromByte(c.c.PgConn().TxStatus())
}

func statusFromByte(b byte) txn.Status {
	switch b {
	case 'T':
		return txn.StatusInTransaction
	case 'E':
		return txn.StatusInError
	default:
		return txn.StatusIdle
	}
}

func (c *Conn) Autocommit() bool {
	return c.autocommit
}

func (c *Conn) SetAutocommit(on bool) error {
	if on == c.autocommit {
		return nil
	}
	if c.Status() != txn.StatusIdle {
		return ErrSetSessionInTransaction
	}

	c.autocommit = on
	return nil
}

func (c *Conn) BindTxControl(ctl *txn.TxControl) (*txn.TxControl, bool) {
	if c.sealed {
		return nil, false
	}

	prev := c.ctl
	c.ctl = ctl
	return prev, true
}

// Commit commits the open transaction, if any.
func (c *Conn) Commit(ctx context.Context) error {
	if c.ctl != nil {
		return c.ctl.Commit(ctx)
	}
	return c.finish(ctx, "COMMIT")
}

// Rollback rolls back the open transaction, if any.
func (c *Conn) Rollback(ctx context.Context) error {
	if c.ctl != nil {
		return c.ctl.Rollback(ctx)
	}
	return c.finish(ctx, "ROLLBACK")
}

func (c *Conn) finish(ctx context.Context, stmt string) error {
	if c.Status() == txn.StatusIdle {
		return nil
	}

	_, err := c.c.Exec(ctx, stmt)
	return err
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
