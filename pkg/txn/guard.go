package txn

import (
	"context"

	"github.com/nikmy/nestedtxn/pkg/errors"
)

var (
	errExplicitCommit = errors.IllegalState(
		"explicit commit() forbidden within a transaction context; use Scope.Rollback or return an error",
	)
	errExplicitRollback = errors.IllegalState(
		"explicit rollback() forbidden within a transaction context; use Scope.Rollback or return an error",
	)
)

// forbiddenControl is bound while any scope is active on a connection.
var forbiddenControl = TxControl{
	Commit:   func(context.Context) error { return errExplicitCommit },
	Rollback: func(context.Context) error { return errExplicitRollback },
}

// patch records what the guard replaced on a connection.
type patch struct {
	prev *TxControl
}

// installGuard never fails: connections that can't be rebound are left
// unprotected and nil is returned.
func installGuard(conn Conn) *patch {
	r, ok := conn.(Rebinder)
	if !ok {
		return nil
	}

	ctl := forbiddenControl
	prev, ok := r.BindTxControl(&ctl)
	if !ok {
		return nil
	}
	return &patch{prev: prev}
}

func (p *patch) restore(conn Conn) {
	if p == nil {
		return
	}
	// The connection accepted the override, so it accepts its removal.
	_, _ = conn.(Rebinder).BindTxControl(p.prev)
}
