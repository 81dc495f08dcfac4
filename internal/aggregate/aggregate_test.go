package aggregate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ordersift/ordersift/internal/aggregate"
	"github.com/ordersift/ordersift/internal/config"
	"github.com/ordersift/ordersift/internal/dom"
	"github.com/ordersift/ordersift/internal/extract"
	"github.com/ordersift/ordersift/internal/logger"
	"github.com/ordersift/ordersift/internal/metrics"
)

// stubProvider serves pre-parsed trees keyed by source name.
type stubProvider struct {
	pages map[string]string
	errs  map[string]error
}

func (p *stubProvider) Acquire(_ context.Context, src config.Source) (extract.Tree, error) {
	if err := p.errs[src.Name]; err != nil {
		return nil, err
	}
	return dom.ParseString(p.pages[src.Name])
}

func sourceList(names ...string) []config.Source {
	sources := make([]config.Source, 0, len(names))
	for _, name := range names {
		sources = append(sources, config.Source{Name: name, Driver: config.DriverStatic})
	}
	return sources
}

const richPage = `<table><tr>
	<td><a href="/itm/100">Widget Manual</a></td>
	<td><a href="/mesh/ord/details?o=1">27-13984-70927</a></td>
	<td><div class="price-column-item">$19.99</div></td>
</tr></table>`

const sparsePage = `<table>
	<tr><td><a href="/itm/200">Bare Gadget</a></td></tr>
	<tr><td><a href="/itm/201">Spare Gasket</a></td></tr>
</table>`

func TestAggregator_MergesInSourceOrder(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{pages: map[string]string{
		"alpha": richPage,
		"beta":  sparsePage,
	}}
	agg := aggregate.New(logger.NewNoOp(), provider, extract.Options{}, false, nil)

	ds, err := agg.Run(context.Background(), sourceList("alpha", "beta"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(ds.Records) != 3 {
		t.Fatalf("expected 3 merged records, got %d", len(ds.Records))
	}
	wantIDs := []string{"100", "200", "201"}
	for i, want := range wantIDs {
		if ds.Records[i].ItemID != want {
			t.Fatalf("record %d: expected item %s, got %s", i, want, ds.Records[i].ItemID)
		}
	}
}

func TestAggregator_TagsRecordsWithSource(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{pages: map[string]string{
		"alpha": richPage,
		"beta":  sparsePage,
	}}
	agg := aggregate.New(logger.NewNoOp(), provider, extract.Options{}, false, nil)

	ds, err := agg.Run(context.Background(), sourceList("alpha", "beta"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if ds.Records[0].Source != "alpha" {
		t.Fatalf("expected source alpha, got %q", ds.Records[0].Source)
	}
	for _, rec := range ds.Records[1:] {
		if rec.Source != "beta" {
			t.Fatalf("expected source beta, got %q", rec.Source)
		}
	}
}

func TestAggregator_ColumnUnionAndBackfill(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{pages: map[string]string{
		"alpha": richPage,
		"beta":  sparsePage,
	}}
	agg := aggregate.New(logger.NewNoOp(), provider, extract.Options{}, false, nil)

	ds, err := agg.Run(context.Background(), sourceList("alpha", "beta"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Price columns come only from alpha, yet every row must render them.
	cols := make(map[string]int, len(ds.Columns))
	for i, col := range ds.Columns {
		cols[col] = i
	}
	for _, col := range []string{extract.ColOrderNumber, extract.ColItemID,
		extract.ColTitle, extract.ColPrice, extract.ColSource} {
		if _, ok := cols[col]; !ok {
			t.Fatalf("missing column %q in %v", col, ds.Columns)
		}
	}

	rows := ds.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if len(row) != len(ds.Columns) {
			t.Fatalf("ragged row: %d cells for %d columns", len(row), len(ds.Columns))
		}
	}
	if got := rows[0][cols[extract.ColPrice]]; got != "19.99" {
		t.Fatalf("expected price 19.99 on the rich row, got %q", got)
	}
	if got := rows[1][cols[extract.ColPrice]]; got != "" {
		t.Fatalf("expected empty backfill on the sparse row, got %q", got)
	}
}

func TestAggregator_ColumnsFollowPreferredOrder(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{pages: map[string]string{"alpha": richPage}}
	agg := aggregate.New(logger.NewNoOp(), provider, extract.Options{}, false, nil)

	ds, err := agg.Run(context.Background(), sourceList("alpha"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	rank := make(map[string]int)
	for i, col := range extract.PreferredColumns() {
		rank[col] = i
	}
	for i := 1; i < len(ds.Columns); i++ {
		if rank[ds.Columns[i-1]] > rank[ds.Columns[i]] {
			t.Fatalf("columns out of preferred order: %v", ds.Columns)
		}
	}
}

func TestAggregator_SkipsFailedSource(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		pages: map[string]string{"beta": sparsePage},
		errs:  map[string]error{"alpha": errors.New("navigation timeout")},
	}
	agg := aggregate.New(logger.NewNoOp(), provider, extract.Options{}, false, nil)

	ds, err := agg.Run(context.Background(), sourceList("alpha", "beta"))
	if err != nil {
		t.Fatalf("one healthy source should still succeed: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("expected the healthy source's records, got %d", len(ds.Records))
	}
	for _, rec := range ds.Records {
		if rec.Source != "beta" {
			t.Fatalf("unexpected source %q", rec.Source)
		}
	}
}

func TestAggregator_AllSourcesFailed(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{errs: map[string]error{
		"alpha": errors.New("timeout"),
		"beta":  errors.New("connection refused"),
	}}
	agg := aggregate.New(logger.NewNoOp(), provider, extract.Options{}, false, nil)

	if _, err := agg.Run(context.Background(), sourceList("alpha", "beta")); err == nil {
		t.Fatal("expected an error when every source fails")
	}
}

func TestAggregator_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{pages: map[string]string{
		"alpha": richPage,
		"beta":  sparsePage,
		"gamma": richPage,
	}}
	sources := sourceList("alpha", "beta", "gamma")

	seq, err := aggregate.New(logger.NewNoOp(), provider, extract.Options{}, false, nil).
		Run(context.Background(), sources)
	if err != nil {
		t.Fatalf("sequential run: %v", err)
	}
	par, err := aggregate.New(logger.NewNoOp(), provider, extract.Options{}, true, nil).
		Run(context.Background(), sources)
	if err != nil {
		t.Fatalf("parallel run: %v", err)
	}

	if len(seq.Records) != len(par.Records) {
		t.Fatalf("record counts diverged: %d vs %d", len(seq.Records), len(par.Records))
	}
	for i := range seq.Records {
		if seq.Records[i].ItemID != par.Records[i].ItemID ||
			seq.Records[i].Source != par.Records[i].Source {
			t.Fatalf("record %d diverged: %+v vs %+v", i, seq.Records[i], par.Records[i])
		}
	}
}

func TestAggregator_RecordsMetrics(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		pages: map[string]string{"alpha": richPage, "beta": sparsePage},
		errs:  map[string]error{"gamma": errors.New("timeout")},
	}
	m := metrics.NewRunMetrics()
	agg := aggregate.New(logger.NewNoOp(), provider, extract.Options{}, false, m)

	if _, err := agg.Run(context.Background(), sourceList("alpha", "beta", "gamma")); err != nil {
		t.Fatalf("run: %v", err)
	}

	snap := m.Snapshot()
	if snap.SourcesSucceeded != 2 || snap.SourcesFailed != 1 {
		t.Fatalf("unexpected source counts: %+v", snap)
	}
	if snap.RecordsExtracted != 3 {
		t.Fatalf("expected 3 extracted records, got %d", snap.RecordsExtracted)
	}
}

func TestAggregator_EmptyDatasetHasNoColumns(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{pages: map[string]string{"alpha": "<html></html>"}}
	agg := aggregate.New(logger.NewNoOp(), provider, extract.Options{}, false, nil)

	ds, err := agg.Run(context.Background(), sourceList("alpha"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(ds.Records) != 0 || len(ds.Columns) != 0 {
		t.Fatalf("expected an empty dataset, got %+v", ds)
	}
}
