package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/predicate"
)

// Snapshot is one full result list. Each snapshot replaces the previous
// one; Seq starts at 1 and increases by one per delivered snapshot.
type Snapshot struct {
	Seq      int64
	Contacts []contact.PartialContact
}

// Subscription is a live query. Snapshots arrive on C until Cancel is
// called or the parent context ends, after which C is closed. A query
// still running at cancellation completes, but its snapshot is dropped.
type Subscription struct {
	token  string
	c      chan Snapshot
	signal chan struct{} // Pending re-query (buffered, size 1)
	done   chan struct{}
	clock  *Clock
	logger *slog.Logger

	cancel     context.CancelFunc
	unregister func()
	stopOnce   sync.Once
}

// Subscribe starts a live query. The first snapshot reflects the store at
// subscription time; every change notification afterwards yields another
// full snapshot.
//
// Invalid predicates or columns are returned immediately and no
// subscription is started.
func (o *Orchestrator) Subscribe(ctx context.Context, p predicate.Predicate, columns []contact.Column) (*Subscription, error) {
	req, err := o.prepare(ctx, p, columns)
	if err != nil {
		return nil, err
	}

	token := o.tokens.Generate()
	subCtx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		token:  token,
		c:      make(chan Snapshot),
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
		clock:  NewClock(),
		logger: o.logger.With("subscription", token),
		cancel: cancel,
	}

	// Registered before the first query so no change can fall between the
	// initial read and the watch.
	s.unregister = o.store.Watch(req.query.Resource, s.notify)
	s.logger.Debug("subscription started", "resource", string(req.query.Resource), "columns", len(req.columns))

	go s.run(subCtx, o, req)
	go func() {
		<-subCtx.Done()
		s.stop()
	}()
	return s, nil
}

// Token identifies the subscription in logs.
func (s *Subscription) Token() string {
	return s.token
}

// C delivers snapshots. It is closed when the subscription ends.
func (s *Subscription) C() <-chan Snapshot {
	return s.c
}

// Done is closed once the subscription has fully stopped.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Cancel unregisters the store watch, stops the query loop and waits for
// it to exit. No snapshot is delivered after Cancel returns. Safe to call
// more than once and from any goroutine.
func (s *Subscription) Cancel() {
	s.stop()
	<-s.done
}

func (s *Subscription) stop() {
	s.stopOnce.Do(func() {
		s.unregister()
		s.cancel()
	})
}

// notify is the store watch callback. It never blocks: a pending signal
// already covers this change.
func (s *Subscription) notify() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// run is the per-subscription loop: query, deliver, wait for a change.
func (s *Subscription) run(ctx context.Context, o *Orchestrator, req request) {
	defer close(s.done)
	defer close(s.c)

	for {
		contacts := s.cycle(ctx, o, req)

		// A cycle that finished after cancellation is dropped, even when
		// the consumer is ready to receive.
		if ctx.Err() != nil {
			return
		}
		snap := Snapshot{Seq: s.clock.Next(), Contacts: contacts}
		select {
		case s.c <- snap:
		case <-ctx.Done():
			return
		}

		select {
		case <-s.signal:
		case <-ctx.Done():
			return
		}
	}
}

// cycle runs one query. A store failure is logged and yields an empty
// list so the subscription keeps running.
func (s *Subscription) cycle(ctx context.Context, o *Orchestrator, req request) []contact.PartialContact {
	stubs, err := o.queryStubs(ctx, req.query)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		var qe *QueryError
		if errors.As(err, &qe) {
			qe.Subscription = s.token
		}
		s.logger.Error("base query failed", "error", err)
		return []contact.PartialContact{}
	}
	return o.enrich(ctx, s.logger, stubs, req)
}
