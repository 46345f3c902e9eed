package engine

import (
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/contactlens/internal/builder"
	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/provider"
	"github.com/roach88/contactlens/internal/querysql"
	"github.com/roach88/contactlens/internal/rowmap"
)

// enrich builds one contact per stub, preserving stub order. With no kind
// tags the stubs are returned as-is; otherwise each stub gets its own
// detail query, run concurrently up to the fanout limit.
//
// Each task writes only its own result slot.
func (o *Orchestrator) enrich(ctx context.Context, logger *slog.Logger, stubs []contact.Stub, req request) []contact.PartialContact {
	results := make([]contact.PartialContact, len(stubs))
	if len(req.kindTags) == 0 {
		for i, stub := range stubs {
			results[i] = builder.Build(stub, req.columns, nil)
		}
		return results
	}

	mapper := rowmap.Mapper{
		Registry:      o.registry,
		Photos:        o.store,
		Dates:         o.dates,
		HighResPhotos: o.highRes,
		Logger:        logger,
	}
	if slices.Contains(req.kindTags, provider.MimetypeGroupMembership) {
		mapper.GroupTitles = o.groupTitles(ctx, logger)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.fanout)
	for i, stub := range stubs {
		i, stub := i, stub
		g.Go(func() error {
			results[i] = o.enrichOne(gctx, logger, mapper, stub, req)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// enrichOne loads and folds one contact's detail rows. A failed detail
// query leaves the contact with its stub fields only.
func (o *Orchestrator) enrichOne(ctx context.Context, logger *slog.Logger, mapper rowmap.Mapper, stub contact.Stub, req request) contact.PartialContact {
	q := querysql.DetailQuery(stub.ID, req.kindTags)

	cur, err := o.store.Query(ctx, q)
	if err != nil {
		logger.Error("detail query failed", "contact_id", int64(stub.ID), "error", err)
		return builder.Build(stub, req.columns, nil)
	}
	rows, err := provider.Collect(cur)
	if err != nil {
		logger.Error("detail rows incomplete", "contact_id", int64(stub.ID), "error", err)
	}

	fragments := make([]rowmap.Fragment, 0, len(rows))
	for _, row := range rows {
		if f, ok := mapper.Map(ctx, stub.ID, row.String(provider.ColumnMimetype), row); ok {
			fragments = append(fragments, f)
		}
	}
	return builder.Build(stub, req.columns, fragments)
}

// groupTitles loads group names for membership fragments. Failure leaves
// memberships untitled.
func (o *Orchestrator) groupTitles(ctx context.Context, logger *slog.Logger) map[int64]string {
	q := querysql.GroupsQuery()
	cur, err := o.store.Query(ctx, q)
	if err != nil {
		logger.Warn("group titles unavailable", "error", err)
		return nil
	}
	rows, err := provider.Collect(cur)
	if err != nil {
		logger.Warn("group titles incomplete", "error", err)
	}

	titles := make(map[int64]string, len(rows))
	for _, row := range rows {
		id, ok := row.Int64(provider.ColumnID)
		if !ok {
			continue
		}
		titles[id] = row.Trimmed(provider.ColumnGroupTitle)
	}
	return titles
}
