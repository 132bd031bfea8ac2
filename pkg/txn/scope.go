package txn

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nikmy/nestedtxn/pkg/errors"
)

type state int

const (
	stateCreated state = iota
	stateActive
	stateClosed
)

type Option func(*Scope)

// ForceDiscard makes the scope roll back on exit even when its block succeeds.
func ForceDiscard() Option {
	return func(s *Scope) {
		s.forceDiscard = true
	}
}

// Scope is one nested transactional unit on a connection. Entering
// it sets a savepoint, exiting it releases or rolls back to that
// savepoint, and the outermost scope on a connection finishes the
// transaction with a real COMMIT.
//
// A Scope is not safe for concurrent use. It may be entered again
// after it has been exited, but not while it is active.
type Scope struct {
	reg          *Registry
	conn         Conn
	forceDiscard bool

	state           state
	savepoint       string
	discarded       bool
	outermost       bool
	preexisting     bool
	savedAutocommit bool
	patch           *patch
}

func (r *Registry) Scope(conn Conn, opts ...Option) *Scope {
	s := &Scope{reg: r, conn: conn}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scope) Conn() Conn {
	return s.conn
}

func (s *Scope) Savepoint() string {
	return s.savepoint
}

func (s *Scope) Outermost() bool {
	return s.outermost
}

func (s *Scope) Discarded() bool {
	return s.discarded
}

func savepointName(depth int) string {
	return "savepoint_" + strconv.Itoa(depth)
}

// Enter pushes the scope onto its connection's stack and sets a
// savepoint. Driver errors are returned unchanged, and the scope is
// left as if Enter had never been called.
func (s *Scope) Enter(ctx context.Context) error {
	if s.state == stateActive {
		return errors.IllegalState("scope " + s.savepoint + " is already active")
	}

	st := s.reg.acquire(s.conn)
	defer st.mu.Unlock()

	s.discarded = false
	s.outermost = len(st.scopes) == 0
	s.preexisting = false
	s.patch = nil

	if s.outermost {
		s.preexisting = s.conn.Status() != StatusIdle
		s.patch = installGuard(s.conn)
	}

	s.savedAutocommit = s.conn.Autocommit()
	if s.savedAutocommit {
		err := s.conn.SetAutocommit(false)
		if err != nil {
			s.undoEnter(ctx, st)
			return err
		}
	}

	s.savepoint = savepointName(len(st.scopes))
	st.push(s)

	err := s.conn.Exec(ctx, "SAVEPOINT "+s.savepoint)
	if err != nil {
		st.pop()
		s.undoEnter(ctx, st)
		return err
	}

	s.state = stateActive
	s.reg.log.Debugf("entered %s (outermost: %t, preexisting transaction: %t)", s.savepoint, s.outermost, s.preexisting)
	return nil
}

// undoEnter reverts whatever Enter did before failing.
func (s *Scope) undoEnter(ctx context.Context, st *stack) {
	if !s.outermost {
		return
	}

	s.patch.restore(s.conn)
	s.patch = nil
	s.reg.removeIfEmpty(s.conn, st)

	// The failed statement may have opened a transaction on an idle connection.
	if !s.preexisting && s.conn.Status() != StatusIdle {
		s.reg.log.Error(errors.WrapFail(s.conn.Exec(ctx, "ROLLBACK"), "roll back after failed enter"))
	}

	if s.conn.Autocommit() != s.savedAutocommit {
		s.reg.log.Error(errors.WrapFail(s.conn.SetAutocommit(s.savedAutocommit), "restore autocommit after failed enter"))
	}
}

// Exit leaves the scope. A non-nil cause means the guarded block
// failed: the savepoint is rolled back and cause is returned as is,
// with any cleanup failure logged. With a nil cause the savepoint is
// released (or rolled back for ForceDiscard scopes) and cleanup
// failures are returned.
//
// Exiting a scope that is not the innermost active one on its
// connection panics with an error matching errors.ErrOutOfOrder.
func (s *Scope) Exit(ctx context.Context, cause error) error {
	if s.state != stateActive {
		err := errors.IllegalState("cannot exit scope that is not active")
		if cause != nil {
			s.reg.log.Error(err)
			return cause
		}
		return err
	}

	st := s.reg.lookup(s.conn)
	if st == nil {
		panic(errors.OutOfOrder("scope " + s.savepoint + " has no transaction stack"))
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if top := st.top(); top != s {
		active := "no scope"
		if top != nil {
			active = top.savepoint
		}
		panic(errors.OutOfOrder(fmt.Sprintf(
			"scope %s exited while %s is still active; scopes must exit in reverse order of entry",
			s.savepoint, active,
		)))
	}

	var errs []error

	switch {
	case s.discarded:
	case cause != nil || s.forceDiscard:
		errs = append(errs, s.rollbackTo(ctx))
	default:
		errs = append(errs, s.release(ctx))
	}

	st.pop()
	s.state = stateClosed

	if len(st.scopes) == 0 {
		s.patch.restore(s.conn)
		s.patch = nil
		s.reg.removeIfEmpty(s.conn, st)

		// Rolling back to a savepoint doesn't end the transaction, so
		// the outermost scope commits whatever is left of it.
		if !s.preexisting {
			errs = append(errs, s.conn.Exec(ctx, "COMMIT"))
		}
	}

	if s.conn.Autocommit() != s.savedAutocommit {
		errs = append(errs, s.conn.SetAutocommit(s.savedAutocommit))
	}

	err := errors.Collapse(errs)
	if cause == nil {
		return err
	}

	if err != nil {
		s.reg.log.Error(errors.WrapFailf(err, "clean up %s after %q", s.savepoint, cause))
	}
	return cause
}

// Rollback discards the work done in the scope so far. It is allowed
// once, and only while the scope is the innermost active one. Statements
// executed after Rollback and before Exit are not covered by the scope.
func (s *Scope) Rollback(ctx context.Context) error {
	st := s.reg.lookup(s.conn)
	if st == nil {
		return errors.IllegalState("cannot rollback outside transaction context")
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	switch {
	case s.state != stateActive || !st.contains(s):
		return errors.IllegalState("cannot rollback outside transaction context")
	case st.top() != s:
		return errors.IllegalState("cannot rollback outer transaction from nested transaction context")
	case s.discarded:
		return errors.IllegalState("transaction already rolled back")
	}

	return s.rollbackTo(ctx)
}

func (s *Scope) rollbackTo(ctx context.Context) error {
	err := s.conn.Exec(ctx, "ROLLBACK TO SAVEPOINT "+s.savepoint)
	if err != nil {
		return err
	}

	s.discarded = true
	s.reg.log.Debugf("rolled back to %s", s.savepoint)
	return nil
}

func (s *Scope) release(ctx context.Context) error {
	if s.conn.Status() == StatusInError {
		return errors.IllegalState(
			"connection is in error state; call Scope.Rollback or return an error before leaving " + s.savepoint,
		)
	}
	return s.conn.Exec(ctx, "RELEASE SAVEPOINT "+s.savepoint)
}
