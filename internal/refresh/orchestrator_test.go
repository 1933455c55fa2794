package refresh

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	apperrors "carteira/internal/errors"
	"carteira/internal/marketdata"
	"carteira/internal/models"
	"carteira/internal/selection"
	"carteira/internal/testutil"
)

type aggResult struct {
	snap *models.MarketSnapshot
	err  error
}

type aggCall struct {
	req     models.RefreshRequest
	ctx     context.Context
	respond chan aggResult
}

// fakeAggregator records every call and blocks it until the test
// responds. With ignoreCancel set, a call survives cycle cancellation,
// simulating a slow response that arrives after being superseded.
type fakeAggregator struct {
	mu           sync.Mutex
	calls        []*aggCall
	ignoreCancel bool
}

func (f *fakeAggregator) Aggregate(ctx context.Context, req models.RefreshRequest) (*models.MarketSnapshot, error) {
	call := &aggCall{req: req, ctx: ctx, respond: make(chan aggResult, 1)}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.ignoreCancel {
		r := <-call.respond
		return r.snap, r.err
	}
	select {
	case r := <-call.respond:
		return r.snap, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeAggregator) call(t *testing.T, n int) *aggCall {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f.mu.Lock()
		if len(f.calls) >= n {
			call := f.calls[n-1]
			f.mu.Unlock()
			return call
		}
		f.mu.Unlock()
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for aggregation call %d", n)
	return nil
}

func (f *fakeAggregator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func waitUntil(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

func newTestOrchestrator(agg Aggregator) (*Orchestrator, *selection.Store, *marketdata.Cache) {
	store := selection.NewStore(testutil.SmallSelection(), nil, zap.NewNop().Sugar())
	cache := marketdata.NewCache()
	orc := New(store, agg, cache, time.Hour, 5*time.Second, zap.NewNop().Sugar())
	return orc, store, cache
}

func snapshotOf(symbol string) *models.MarketSnapshot {
	return &models.MarketSnapshot{
		Stocks:      []models.QuoteRecord{testutil.Quote(symbol, 10)},
		LastUpdated: time.Now().UTC(),
	}
}

func TestSupersededCycleResultIsNeverApplied(t *testing.T) {
	agg := &fakeAggregator{ignoreCancel: true}
	orc, _, cache := newTestOrchestrator(agg)
	defer orc.Deactivate()

	orc.Activate()
	first := agg.call(t, 1)

	orc.Refresh()
	second := agg.call(t, 2)

	fresh := snapshotOf("FRESH")
	second.respond <- aggResult{snap: fresh}
	waitUntil(t, func() bool { return cache.Snapshot() == fresh }, "second cycle result not applied")

	// The first cycle resolves late and successfully; it must be
	// discarded.
	first.respond <- aggResult{snap: snapshotOf("STALE")}
	time.Sleep(20 * time.Millisecond)

	if cache.Snapshot() != fresh {
		t.Fatal("stale cycle result overwrote a fresher snapshot")
	}
	if status := orc.Status(); status.Loading || status.Error != "" {
		t.Errorf("unexpected status after late stale result: %+v", status)
	}
}

func TestNewCycleCancelsInFlightRequest(t *testing.T) {
	agg := &fakeAggregator{}
	orc, _, _ := newTestOrchestrator(agg)
	defer orc.Deactivate()

	orc.Activate()
	first := agg.call(t, 1)

	orc.Refresh()
	waitUntil(t, func() bool { return first.ctx.Err() != nil },
		"first cycle's context not cancelled by the second cycle")

	second := agg.call(t, 2)
	second.respond <- aggResult{snap: snapshotOf("OK")}
}

func TestSilentFailureIsNonDestructive(t *testing.T) {
	agg := &fakeAggregator{}
	orc, _, cache := newTestOrchestrator(agg)
	defer orc.Deactivate()

	orc.Activate()
	snap := snapshotOf("PETR4.SA")
	agg.call(t, 1).respond <- aggResult{snap: snap}
	waitUntil(t, func() bool { return cache.Snapshot() == snap }, "initial refresh not applied")

	beforeStatus := orc.Status()
	orc.begin(true)
	agg.call(t, 2).respond <- aggResult{err: apperrors.ErrBatchFailed}
	waitUntil(t, func() bool { return agg.callCount() == 2 }, "silent cycle not started")
	time.Sleep(20 * time.Millisecond)

	if cache.Snapshot() != snap {
		t.Error("silent failure modified the cache")
	}
	if status := orc.Status(); status != beforeStatus {
		t.Errorf("silent failure changed status: %+v -> %+v", beforeStatus, status)
	}
}

func TestSilentSupersedeOfVisibleCycleResolvesLoading(t *testing.T) {
	agg := &fakeAggregator{ignoreCancel: true}
	orc, _, cache := newTestOrchestrator(agg)
	defer orc.Deactivate()

	// Activation starts a user-visible cycle; it hangs inside the
	// aggregator with the loading flag set.
	orc.Activate()
	first := agg.call(t, 1)
	if !orc.Status().Loading {
		t.Fatal("expected loading flag set by the visible cycle")
	}

	// The interval tick fires while the visible cycle is in flight. The
	// tick's cycle wins; it must also resolve the loading flag the dead
	// cycle left behind.
	orc.begin(true)
	second := agg.call(t, 2)

	fresh := snapshotOf("FRESH")
	second.respond <- aggResult{snap: fresh}
	waitUntil(t, func() bool { return cache.Snapshot() == fresh }, "tick cycle result not applied")

	if status := orc.Status(); status.Loading {
		t.Fatalf("loading flag not cleared after the tick cycle resolved: %+v", status)
	}

	// The stale visible cycle resolves late; everything stays settled.
	first.respond <- aggResult{snap: snapshotOf("STALE")}
	time.Sleep(20 * time.Millisecond)
	if status := orc.Status(); status.Loading || status.Error != "" {
		t.Errorf("late stale cycle disturbed the status: %+v", status)
	}
	if cache.Snapshot() != fresh {
		t.Error("late stale cycle overwrote the fresher snapshot")
	}
}

func TestExplicitFailureClearsSnapshotAndSetsError(t *testing.T) {
	agg := &fakeAggregator{}
	orc, _, cache := newTestOrchestrator(agg)
	defer orc.Deactivate()

	orc.Activate()
	agg.call(t, 1).respond <- aggResult{snap: snapshotOf("PETR4.SA")}
	waitUntil(t, func() bool { return cache.Snapshot() != nil }, "initial refresh not applied")

	orc.Refresh()
	agg.call(t, 2).respond <- aggResult{err: apperrors.ErrBatchFailed}
	waitUntil(t, func() bool { return orc.Status().Error != "" }, "error not surfaced")

	if cache.Snapshot() != nil {
		t.Error("explicit failure must clear the snapshot")
	}
	if orc.Status().Loading {
		t.Error("loading flag left set after failure")
	}

	// The next successful refresh repopulates and clears the error.
	orc.Refresh()
	recovered := snapshotOf("PETR4.SA")
	agg.call(t, 3).respond <- aggResult{snap: recovered}
	waitUntil(t, func() bool { return cache.Snapshot() == recovered }, "recovery refresh not applied")

	if status := orc.Status(); status.Error != "" || status.Loading {
		t.Errorf("expected clean status after recovery, got %+v", status)
	}
}

func TestDeactivateAbortsAndStops(t *testing.T) {
	agg := &fakeAggregator{}
	orc, _, cache := newTestOrchestrator(agg)

	orc.Activate()
	first := agg.call(t, 1)

	orc.Deactivate()
	waitUntil(t, func() bool { return first.ctx.Err() != nil }, "in-flight cycle not aborted on teardown")
	time.Sleep(20 * time.Millisecond)

	if cache.Snapshot() != nil {
		t.Error("aborted cycle must not touch the cache")
	}
	if status := orc.Status(); status.Active || status.Loading {
		t.Errorf("unexpected status after teardown: %+v", status)
	}

	// Explicit refresh while inactive is a no-op.
	orc.Refresh()
	time.Sleep(20 * time.Millisecond)
	if agg.callCount() != 1 {
		t.Errorf("expected no new cycles while inactive, got %d calls", agg.callCount())
	}
}

func TestSelectionChangeTriggersFreshBatch(t *testing.T) {
	agg := &fakeAggregator{ignoreCancel: true}
	orc, store, cache := newTestOrchestrator(agg)
	defer orc.Deactivate()

	orc.Activate()
	first := agg.call(t, 1)
	if len(first.req.Stocks) != 2 {
		t.Fatalf("expected the initial batch to carry 2 stocks, got %v", first.req.Stocks)
	}

	// Mutating the selection mid-flight starts a new cycle carrying the
	// updated batch; the first cycle's batch is untouched.
	testutil.AssertNoError(t, store.AddToCategory(models.CategoryStocks, "ITUB4.SA"))
	second := agg.call(t, 2)
	if len(second.req.Stocks) != 3 {
		t.Fatalf("expected the new batch to carry 3 stocks, got %v", second.req.Stocks)
	}
	if len(first.req.Stocks) != 2 {
		t.Errorf("in-flight batch retroactively changed: %v", first.req.Stocks)
	}

	fresh := snapshotOf("ITUB4.SA")
	second.respond <- aggResult{snap: fresh}
	waitUntil(t, func() bool { return cache.Snapshot() == fresh }, "second cycle result not applied")

	first.respond <- aggResult{snap: snapshotOf("STALE")}
	time.Sleep(20 * time.Millisecond)
	if cache.Snapshot() != fresh {
		t.Fatal("superseded cycle overwrote the fresher snapshot")
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	agg := &fakeAggregator{}
	orc, _, _ := newTestOrchestrator(agg)
	defer orc.Deactivate()

	orc.Activate()
	orc.Activate()
	agg.call(t, 1).respond <- aggResult{snap: snapshotOf("OK")}
	time.Sleep(20 * time.Millisecond)

	if agg.callCount() != 1 {
		t.Errorf("double activation started %d cycles, want 1", agg.callCount())
	}
}
