package txn

import (
	"context"
	"fmt"
)

type scopeKey struct{}

// FromContext returns the innermost scope started by Run on ctx.
func FromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok
}

// Run executes fn inside a new scope on conn. The scope is exited on
// every path: an error returned by fn or a panic rolls it back, and a
// panic is re-raised once cleanup is done.
func (r *Registry) Run(ctx context.Context, conn Conn, fn func(ctx context.Context, s *Scope) error, opts ...Option) error {
	s := r.Scope(conn, opts...)

	err := s.Enter(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = s.Exit(ctx, panicError{value: p})
			panic(p)
		}
	}()

	err = fn(context.WithValue(ctx, scopeKey{}, s), s)
	return s.Exit(ctx, err)
}

type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}
