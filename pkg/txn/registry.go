package txn

import (
	"sync"

	"github.com/nikmy/nestedtxn/pkg/logger"
)

// Registry maps connections to their stacks of active scopes.
//
// A stack is created lazily by the first scope entered on a connection
// and dropped as soon as it empties, so the registry never outlives
// the scopes it tracks.
type Registry struct {
	mu     sync.Mutex
	stacks map[Conn]*stack
	log    logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewStub()
	}
	return &Registry{
		stacks: make(map[Conn]*stack),
		log:    log.With("txn"),
	}
}

// Len returns the number of connections with at least one active scope.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stacks)
}

// Depth returns the number of active scopes on conn.
func (r *Registry) Depth(conn Conn) int {
	st := r.lookup(conn)
	if st == nil {
		return 0
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.scopes)
}

func (r *Registry) stackFor(conn Conn) *stack {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.stacks[conn]
	if !ok {
		st = &stack{}
		r.stacks[conn] = st
	}
	return st
}

// acquire returns conn's stack locked. A stack dropped from the
// registry between lookup and locking is never handed out.
func (r *Registry) acquire(conn Conn) *stack {
	for {
		st := r.stackFor(conn)
		st.mu.Lock()
		if r.lookup(conn) == st {
			return st
		}
		st.mu.Unlock()
	}
}

func (r *Registry) lookup(conn Conn) *stack {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stacks[conn]
}

// removeIfEmpty must be called with st.mu held.
func (r *Registry) removeIfEmpty(conn Conn, st *stack) {
	if len(st.scopes) > 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stacks[conn] == st {
		delete(r.stacks, conn)
	}
}

type stack struct {
	mu     sync.Mutex
	scopes []*Scope
}

func (s *stack) top() *Scope {
	if len(s.scopes) == 0 {
		return nil
	}
	return s.scopes[len(s.scopes)-1]
}

func (s *stack) contains(scope *Scope) bool {
	for _, sc := range s.scopes {
		if sc == scope {
			return true
		}
	}
	return false
}

func (s *stack) push(scope *Scope) {
	s.scopes = append(s.scopes, scope)
}

func (s *stack) pop() {
	s.scopes[len(s.scopes)-1] = nil
	s.scopes = s.scopes[:len(s.scopes)-1]
}
