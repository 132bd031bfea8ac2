package txn

import (
	"context"
	"strings"
)

// fakeConn records statements and emulates the transaction status of
// a driver that opens a transaction implicitly when autocommit is off.
type fakeConn struct {
	statements []string
	status     Status
	autocommit bool
	failOn     map[string]error
}

func newFakeConn(autocommit bool) *fakeConn {
	return &fakeConn{autocommit: autocommit, failOn: map[string]error{}}
}

func (c *fakeConn) Exec(_ context.Context, query string, _ ...any) error {
	c.statements = append(c.statements, query)

	if err, ok := c.failOn[query]; ok {
		if !c.autocommit || c.status != StatusIdle {
			c.status = StatusInError
		}
		return err
	}

	switch {
	case query == "COMMIT" || query == "ROLLBACK":
		c.status = StatusIdle
	case strings.HasPrefix(query, "ROLLBACK TO SAVEPOINT"):
		c.status = StatusInTransaction
	case c.status == StatusIdle && !c.autocommit:
		c.status = StatusInTransaction
	}
	return nil
}

func (c *fakeConn) Status() Status {
	return c.status
}

func (c *fakeConn) Autocommit() bool {
	return c.autocommit
}

func (c *fakeConn) SetAutocommit(on bool) error {
	c.autocommit = on
	return nil
}

func (c *fakeConn) count(prefix string) int {
	n := 0
	for _, st := range c.statements {
		if strings.HasPrefix(st, prefix) {
			n++
		}
	}
	return n
}

// rebindableConn exposes commit and rollback entry points that can be
// overridden. A sealed one refuses every override.
type rebindableConn struct {
	*fakeConn
	ctl    *TxControl
	sealed bool
}

func (c *rebindableConn) BindTxControl(ctl *TxControl) (*TxControl, bool) {
	if c.sealed {
		return nil, false
	}
	prev := c.ctl
	c.ctl = ctl
	return prev, true
}

func (c *rebindableConn) Commit(ctx context.Context) error {
	if c.ctl != nil {
		return c.ctl.Commit(ctx)
	}
	return c.Exec(ctx, "COMMIT")
}

func (c *rebindableConn) Rollback(ctx context.Context) error {
	if c.ctl != nil {
		return c.ctl.Rollback(ctx)
	}
	return c.Exec(ctx, "ROLLBACK")
}
