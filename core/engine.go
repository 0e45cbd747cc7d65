// Package core has the metric engine, pipelines and backend dispatch for swaydash.
package core

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/core/batch"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// Engine computes the four dashboard metrics against a relational snapshot.
// It implements contract.MetricsProvider and is safe for concurrent use.
type Engine struct {
	store   contract.Datastore
	backend schema.DataBackend

	batchSize int
	workers   int

	// now is swapped out in tests to pin the "upcoming" boundary.
	now func() time.Time
}

var _ contract.MetricsProvider = &Engine{} // Compile-time check

// NewEngine builds an Engine over a Datastore. The effective batch size is
// the configured value clamped to the store's own IN-list ceiling.
func NewEngine(store contract.Datastore, backend schema.DataBackend, cfg *contract.Config) *Engine {
	size := cfg.BatchSize
	if limit := store.MaxKeysPerFetch(); limit > 0 && size > limit {
		size = limit
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = contract.DefaultWorkers
	}
	return &Engine{
		store:     store,
		backend:   backend,
		batchSize: size,
		workers:   workers,
		now:       time.Now,
	}
}

// Backend identifies the data source this engine reads from.
func (e *Engine) Backend() schema.DataBackend {
	return e.backend
}

// GroupsWithSupporters lists groups holding at least one supporter relation,
// dropping untitled placeholders and sorting by title.
func (e *Engine) GroupsWithSupporters(ctx context.Context) ([]schema.GroupSummary, error) {
	ids, err := e.store.SupporterGroupIDs(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := batch.Fetch(ctx, batch.Dedupe(ids), e.batchSize, e.store.GroupsByIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]schema.GroupSummary, 0, len(groups))
	for _, g := range groups {
		if g.Title == nil {
			continue
		}
		title := strings.TrimSpace(*g.Title)
		if title == "" || title == schema.UntitledGroupTitle {
			continue
		}
		summaries = append(summaries, schema.GroupSummary{ID: g.ID, Title: title})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Title < summaries[j].Title
	})
	return summaries, nil
}

// recoverFetch implements the degrade-on-error policy. Cancellation comes
// back to the caller unchanged; any other fetch failure is logged with its
// sensitive parts redacted and swallowed, so the metric resolves to its
// zero-valued result instead.
func recoverFetch(err error, step string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	contract.LogWarn(step, errors.New(contract.SanitizeErrorText(err.Error())))
	return nil
}
