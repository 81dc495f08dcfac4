// Package aggregate runs the record pipeline once per configured source and
// merges the results into one uniform tabular dataset.
package aggregate

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ordersift/ordersift/internal/config"
	"github.com/ordersift/ordersift/internal/extract"
	"github.com/ordersift/ordersift/internal/logger"
	"github.com/ordersift/ordersift/internal/metrics"
)

// TreeProvider acquires a queryable snapshot of the orders page for one
// source. Implementations own browser/session lifecycle; the aggregator only
// sees the resulting tree.
type TreeProvider interface {
	Acquire(ctx context.Context, src config.Source) (extract.Tree, error)
}

// Aggregator merges per-source pipeline runs. Sources share no mutable
// state: each run owns its dedup set, so runs may execute sequentially or in
// parallel with identical results.
type Aggregator struct {
	logger   logger.Interface
	provider TreeProvider
	opts     extract.Options
	parallel bool
	metrics  *metrics.RunMetrics
}

// New creates an aggregator. A nil metrics instance disables counting.
func New(log logger.Interface, provider TreeProvider, opts extract.Options,
	parallel bool, m *metrics.RunMetrics) *Aggregator {
	return &Aggregator{
		logger:   log,
		provider: provider,
		opts:     opts,
		parallel: parallel,
		metrics:  m,
	}
}

// Run executes one pipeline run per source and concatenates the results in
// source-configuration order, tagging every record with its source name. A
// source whose acquisition fails is skipped with an error log; Run fails only
// when every source failed.
func (a *Aggregator) Run(ctx context.Context, sources []config.Source) (*Dataset, error) {
	results := make([][]extract.Record, len(sources))
	failures := make([]error, len(sources))

	if a.parallel {
		// One goroutine per source. Failures stay per-slot so one bad
		// source never cancels the others.
		var g errgroup.Group
		for i, src := range sources {
			g.Go(func() error {
				results[i], failures[i] = a.runSource(ctx, src)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, src := range sources {
			results[i], failures[i] = a.runSource(ctx, src)
		}
	}

	var merged []extract.Record
	var errs []error
	for i, src := range sources {
		if failures[i] != nil {
			a.logger.Error("Source run failed, skipping",
				"source", src.Name, "error", failures[i])
			errs = append(errs, fmt.Errorf("source %q: %w", src.Name, failures[i]))
			continue
		}
		for _, rec := range results[i] {
			rec.Source = src.Name
			merged = append(merged, rec)
		}
	}

	if len(errs) > 0 && len(errs) == len(sources) {
		return nil, errors.Join(errs...)
	}
	return newDataset(merged), nil
}

// runSource acquires one source's tree and runs the pipeline over it.
func (a *Aggregator) runSource(ctx context.Context, src config.Source) ([]extract.Record, error) {
	log := a.logger.WithSource(src.Name)
	log.Info("Acquiring orders page", "driver", src.Driver)

	tree, err := a.provider.Acquire(ctx, src)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordSourceFailure()
		}
		return nil, fmt.Errorf("acquire: %w", err)
	}

	pipeline := extract.NewPipeline(log, a.opts)
	records := pipeline.Run(tree)
	if a.metrics != nil {
		a.metrics.RecordSourceSuccess(len(records))
	}
	log.Info("Source run complete", "records", len(records))
	return records, nil
}
