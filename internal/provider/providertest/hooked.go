// Package providertest wraps a provider.Store with test hooks.
package providertest

import (
	"context"
	"sync"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/provider"
)

// QueryHook runs before a query reaches the wrapped store. A non-nil error
// is returned to the caller instead of querying.
type QueryHook func(ctx context.Context, q provider.Query) error

// Store decorates a provider.Store. It records every query and lets tests
// inject delays and failures. Safe for concurrent use.
type Store struct {
	provider.Store

	mu      sync.Mutex
	hook    QueryHook
	queries []provider.Query
}

// Wrap returns a Store around inner.
func Wrap(inner provider.Store) *Store {
	return &Store{Store: inner}
}

// SetHook replaces the query hook. A nil hook disables it.
func (s *Store) SetHook(h QueryHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = h
}

// Query implements provider.Querier.
func (s *Store) Query(ctx context.Context, q provider.Query) (provider.Cursor, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	hook := s.hook
	s.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, q); err != nil {
			return nil, err
		}
	}
	return s.Store.Query(ctx, q)
}

// Queries returns a copy of the queries seen so far.
func (s *Store) Queries() []provider.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]provider.Query(nil), s.queries...)
}

// CountResource reports how many queries targeted r.
func (s *Store) CountResource(r provider.Resource) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, q := range s.queries {
		if q.Resource == r {
			n++
		}
	}
	return n
}

// ContactIDArg returns the contact id bound as the first argument of a
// detail query, or false for other queries.
func ContactIDArg(q provider.Query) (contact.ID, bool) {
	if q.Resource != provider.Data || len(q.Args) == 0 {
		return 0, false
	}
	id, ok := q.Args[0].(int64)
	return contact.ID(id), ok
}
