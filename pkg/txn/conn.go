package txn

import "context"

// Status is the connection transaction status as reported by the driver.
type Status int

const (
	StatusIdle Status = iota
	StatusInTransaction
	StatusInError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInTransaction:
		return "in-transaction"
	case StatusInError:
		return "in-error"
	default:
		return "unknown"
	}
}

// Conn is the connection adapter the scopes run on.
//
// A Conn is identified by its interface value, so implementations
// must be comparable; pointer receivers are expected.
type Conn interface {
	// Exec runs a raw statement. Driver errors are returned as is.
	Exec(ctx context.Context, query string, args ...any) error

	Status() Status

	Autocommit() bool
	SetAutocommit(on bool) error
}

// TxControl overrides a connection's commit and rollback entry points.
type TxControl struct {
	Commit   func(ctx context.Context) error
	Rollback func(ctx context.Context) error
}

// Rebinder is implemented by connections that let their commit and
// rollback entry points be replaced. BindTxControl installs ctl (nil
// removes any override) and returns the previous override. ok is false
// when the connection refused, in which case nothing changed.
type Rebinder interface {
	BindTxControl(ctl *TxControl) (prev *TxControl, ok bool)
}
