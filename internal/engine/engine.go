package engine

import (
	"context"
	"log/slog"

	"github.com/roach88/contactlens/internal/accounts"
	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/eventdate"
	"github.com/roach88/contactlens/internal/predicate"
	"github.com/roach88/contactlens/internal/provider"
	"github.com/roach88/contactlens/internal/querysql"
	"github.com/roach88/contactlens/internal/rowmap"
)

// DefaultFanout bounds concurrent detail queries per cycle.
const DefaultFanout = 8

// Orchestrator runs contact queries against a structured store.
//
// Thread-safety: an Orchestrator is safe for concurrent use. Subscriptions
// share only the store and the read-only account registry.
type Orchestrator struct {
	store    provider.Store
	registry *accounts.Registry
	dates    rowmap.DateParser
	tokens   TokenGenerator
	logger   *slog.Logger
	fanout   int
	highRes  bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTokenGenerator sets the subscription token source.
// Default: UUIDv7Generator.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(o *Orchestrator) {
		if g != nil {
			o.tokens = g
		}
	}
}

// WithFanout bounds concurrent detail queries per cycle. Values below 1
// mean 1.
func WithFanout(n int) Option {
	return func(o *Orchestrator) {
		o.fanout = max(n, 1)
	}
}

// WithHighResPhotos selects the full-size photo stream for the image
// column. Default: true.
func WithHighResPhotos(highRes bool) Option {
	return func(o *Orchestrator) {
		o.highRes = highRes
	}
}

// WithDateParser sets the event date parser. Default: eventdate.Default.
func WithDateParser(p rowmap.DateParser) Option {
	return func(o *Orchestrator) {
		if p != nil {
			o.dates = p
		}
	}
}

// New creates an Orchestrator over s. A nil registry knows no linked
// account kinds.
func New(s provider.Store, registry *accounts.Registry, opts ...Option) *Orchestrator {
	if registry == nil {
		registry = accounts.NewRegistry(nil)
	}
	o := &Orchestrator{
		store:    s,
		registry: registry,
		dates:    eventdate.Default,
		tokens:   UUIDv7Generator{},
		logger:   slog.Default(),
		fanout:   DefaultFanout,
		highRes:  true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Registry returns the linked-account registry the orchestrator consults.
func (o *Orchestrator) Registry() *accounts.Registry {
	return o.registry
}

// request is a validated predicate and column set.
type request struct {
	query    provider.Query
	columns  []contact.Column
	kindTags []string
}

func (o *Orchestrator) prepare(ctx context.Context, p predicate.Predicate, columns []contact.Column) (request, error) {
	q, err := querysql.Translate(p)
	if err != nil {
		return request{}, err
	}
	tags, err := querysql.KindTags(ctx, columns, o.registry)
	if err != nil {
		return request{}, err
	}
	cols := append([]contact.Column(nil), columns...)
	return request{query: q, columns: cols, kindTags: tags}, nil
}

// Query runs a single cycle and returns the contacts in display-name
// order. Store failures are returned as *QueryError.
func (o *Orchestrator) Query(ctx context.Context, p predicate.Predicate, columns []contact.Column) ([]contact.PartialContact, error) {
	req, err := o.prepare(ctx, p, columns)
	if err != nil {
		return nil, err
	}
	stubs, err := o.queryStubs(ctx, req.query)
	if err != nil {
		return nil, err
	}
	return o.enrich(ctx, o.logger, stubs, req), nil
}

// queryStubs runs the base query. Rows without an integer id are skipped.
func (o *Orchestrator) queryStubs(ctx context.Context, q provider.Query) ([]contact.Stub, error) {
	cur, err := o.store.Query(ctx, q)
	if err != nil {
		return nil, &QueryError{Code: ErrCodeQueryFailed, Resource: q.Resource, Err: err}
	}
	rows, err := provider.Collect(cur)
	if err != nil {
		return nil, &QueryError{Code: ErrCodeCursorFailed, Resource: q.Resource, Err: err}
	}

	stubs := make([]contact.Stub, 0, len(rows))
	for _, row := range rows {
		stub, ok := querysql.StubFromRow(q.Resource, row)
		if !ok {
			o.logger.Debug("skipping stub row without id", "resource", string(q.Resource))
			continue
		}
		stubs = append(stubs, stub)
	}
	return stubs, nil
}
