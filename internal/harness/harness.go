package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/contactlens/internal/accounts"
	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/engine"
	"github.com/roach88/contactlens/internal/fixture"
	"github.com/roach88/contactlens/internal/predicate"
	"github.com/roach88/contactlens/internal/store"
	"github.com/roach88/contactlens/internal/testutil"
)

// DefaultAwaitTimeout bounds how long a watch may take to catch up with a
// mutation.
const DefaultAwaitTimeout = 5 * time.Second

// Harness is the scenario execution engine.
type Harness struct {
	store  *store.Store
	orch   *engine.Orchestrator
	logger *slog.Logger
	await  time.Duration
}

// Option configures Run.
type Option func(*Harness)

// WithLogger routes store and orchestrator logs to l. Logs are discarded
// by default.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithAwaitTimeout overrides DefaultAwaitTimeout.
func WithAwaitTimeout(d time.Duration) Option {
	return func(h *Harness) {
		if d > 0 {
			h.await = d
		}
	}
}

// Run executes a scenario against a fresh store in a temp directory:
//
//  1. Open the store and apply the fixture
//  2. Build the registry from the scenario's account declarations
//  3. Subscribe the watch query, if any, and record its first snapshot
//  4. Execute the steps, recording query results and watch snapshots
//
// A failed expectation marks the result as failed. An error is returned
// only when the scenario could not be executed.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	dir, err := os.MkdirTemp("", "contactlens-harness-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "contacts.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		await:  DefaultAwaitTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}

	token := scenario.Token
	if token == "" {
		token = testutil.DefaultToken
	}
	registry := accounts.NewRegistry(scenario.resolver(), accounts.WithLogger(h.logger))
	h.orch = engine.New(st, registry,
		engine.WithLogger(h.logger),
		engine.WithTokenGenerator(testutil.NewFixedTokenGenerator(token)),
	)

	if scenario.Fixture != "" {
		doc, err := fixture.Load(scenario.Fixture)
		if err != nil {
			return nil, err
		}
		if err := doc.Apply(ctx, st); err != nil {
			return nil, fmt.Errorf("failed to apply fixture: %w", err)
		}
	}

	result := NewResult()

	var w *watch
	if scenario.Watch != nil {
		w, err = h.subscribe(ctx, scenario.Watch)
		if err != nil {
			return nil, fmt.Errorf("failed to start watch: %w", err)
		}
		defer w.sub.Cancel()
		if err := h.awaitWatch(ctx, w, "watch/initial", result); err != nil {
			return nil, err
		}
	}

	for i, step := range scenario.Steps {
		if step.Query != nil {
			h.runQuery(ctx, step.Query, result)
			continue
		}
		name, err := h.mutate(ctx, step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		if w != nil {
			if err := h.awaitWatch(ctx, w, "watch/"+name, result); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// runQuery executes a one-shot query step and checks its expectations.
func (h *Harness) runQuery(ctx context.Context, q *QuerySpec, result *Result) {
	p, cols, err := q.parse()
	if err != nil {
		result.AddError(fmt.Sprintf("query %s: %v", q.Name, err))
		return
	}

	contacts, err := h.orch.Query(ctx, p, cols)
	var expect Expect
	if q.Expect != nil {
		expect = *q.Expect
	}

	if expect.Error != "" {
		if msg := checkError(q.Name, expect.Error, err); msg != "" {
			result.AddError(msg)
		}
		result.Steps = append(result.Steps, StepResult{Name: q.Name, Error: errorCode(err)})
		return
	}
	if err != nil {
		result.AddError(fmt.Sprintf("query %s: %v", q.Name, err))
		return
	}

	result.AddStep(q.Name, contacts)
	for _, msg := range EvaluateExpect(q.Name, expect, contacts) {
		result.AddError(msg)
	}
}

// mutate applies a mutation step and returns its watch step name.
func (h *Harness) mutate(ctx context.Context, step Step) (string, error) {
	switch {
	case step.Seed != nil:
		if err := step.Seed.Apply(ctx, h.store); err != nil {
			return "", fmt.Errorf("seed: %w", err)
		}
		return "seed", nil
	case step.Star != nil:
		if err := h.store.SetStarred(ctx, contact.ID(step.Star.ID), step.Star.Starred); err != nil {
			return "", fmt.Errorf("star: %w", err)
		}
		return fmt.Sprintf("star:%d", step.Star.ID), nil
	case step.Rename != nil:
		if err := h.store.RenameContact(ctx, contact.ID(step.Rename.ID), step.Rename.DisplayName); err != nil {
			return "", fmt.Errorf("rename: %w", err)
		}
		return fmt.Sprintf("rename:%d", step.Rename.ID), nil
	case step.Delete != nil:
		if err := h.store.DeleteContact(ctx, contact.ID(*step.Delete)); err != nil {
			return "", fmt.Errorf("delete: %w", err)
		}
		return fmt.Sprintf("delete:%d", *step.Delete), nil
	}
	return "", fmt.Errorf("step has no action")
}

type watch struct {
	sub       *engine.Subscription
	predicate predicate.Predicate
	columns   []contact.Column
}

func (h *Harness) subscribe(ctx context.Context, q *QuerySpec) (*watch, error) {
	p, cols, err := q.parse()
	if err != nil {
		return nil, err
	}
	sub, err := h.orch.Subscribe(ctx, p, cols)
	if err != nil {
		return nil, err
	}
	return &watch{sub: sub, predicate: p, columns: cols}, nil
}

// awaitWatch consumes snapshots until one equals a fresh one-shot query
// of the same predicate, then records it. Intermediate snapshots from
// coalesced notifications are dropped.
func (h *Harness) awaitWatch(ctx context.Context, w *watch, name string, result *Result) error {
	want, err := h.orch.Query(ctx, w.predicate, w.columns)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	wantJSON, err := contact.MarshalSnapshot(want)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	timer := time.NewTimer(h.await)
	defer timer.Stop()
	for {
		select {
		case snap, ok := <-w.sub.C():
			if !ok {
				return fmt.Errorf("%s: subscription closed", name)
			}
			got, err := contact.MarshalSnapshot(snap.Contacts)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if bytes.Equal(got, wantJSON) {
				result.AddStep(name, snap.Contacts)
				return nil
			}
			h.logger.Debug("dropping stale snapshot", "step", name, "seq", snap.Seq)
		case <-timer.C:
			return fmt.Errorf("%s: no snapshot matched the store within %s", name, h.await)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (q *QuerySpec) parse() (predicate.Predicate, []contact.Column, error) {
	p, err := q.Predicate.Predicate()
	if err != nil {
		return nil, nil, err
	}
	cols, err := q.ParseColumns()
	if err != nil {
		return nil, nil, err
	}
	return p, cols, nil
}
