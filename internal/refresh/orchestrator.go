// Package refresh schedules market data refresh cycles: it watches the
// selection store, polls on an interval while a market view is active,
// and guarantees at most one in-flight aggregation request by
// cancelling a superseded cycle before its replacement starts.
package refresh

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"carteira/internal/marketdata"
	"carteira/internal/models"
	"carteira/internal/selection"
	"carteira/internal/uuid"
)

// Aggregator resolves a refresh batch into a snapshot. Satisfied by
// both the in-process marketdata.Service and the HTTP marketdata.Client.
type Aggregator interface {
	Aggregate(ctx context.Context, req models.RefreshRequest) (*models.MarketSnapshot, error)
}

// Status is the user-visible refresh state read by the presentation
// layer alongside the snapshot.
type Status struct {
	Active  bool   `json:"active"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Orchestrator drives refresh cycles against the aggregator and owns
// all writes to the market data cache.
type Orchestrator struct {
	store        *selection.Store
	agg          Aggregator
	cache        *marketdata.Cache
	interval     time.Duration
	batchTimeout time.Duration
	log          *zap.SugaredLogger

	mu      sync.Mutex
	active  bool
	loading bool
	errMsg  string
	cycle   uint64             // id of the newest cycle; older cycles are superseded
	cancel  context.CancelFunc // cancels the in-flight cycle, if any
	stop    chan struct{}      // closes to stop the poll loop
}

// New creates an orchestrator and registers itself as the store's
// change listener.
func New(store *selection.Store, agg Aggregator, cache *marketdata.Cache,
	interval, batchTimeout time.Duration, log *zap.SugaredLogger) *Orchestrator {
	o := &Orchestrator{
		store:        store,
		agg:          agg,
		cache:        cache,
		interval:     interval,
		batchTimeout: batchTimeout,
		log:          log,
	}
	store.SetOnChange(o.selectionChanged)
	return o
}

// Activate marks a market view as active: it starts the poll loop and
// kicks off an immediate non-silent refresh. Activating twice is a
// no-op.
func (o *Orchestrator) Activate() {
	o.mu.Lock()
	if o.active {
		o.mu.Unlock()
		return
	}
	o.active = true
	o.stop = make(chan struct{})
	go o.pollLoop(o.stop)
	o.mu.Unlock()

	o.begin(false)
}

// Deactivate tears the orchestrator down when no market view is active:
// the poll loop stops and any in-flight cycle is aborted. The cache is
// left untouched; the aborted cycle's late result is discarded.
func (o *Orchestrator) Deactivate() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.active {
		return
	}
	o.active = false
	close(o.stop)
	o.stop = nil
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	// An aborted non-silent cycle no longer has an owner to clear the
	// loading flag, so clear it here.
	o.loading = false
}

// Refresh starts an explicit, user-visible refresh cycle. It is a
// logged no-op while no market view is active.
func (o *Orchestrator) Refresh() {
	o.mu.Lock()
	active := o.active
	o.mu.Unlock()
	if !active {
		o.log.Debugw("refresh requested while inactive, ignoring")
		return
	}
	o.begin(false)
}

// Status returns the current user-visible refresh state.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Status{Active: o.active, Loading: o.loading, Error: o.errMsg}
}

// selectionChanged is the store's change hook: a relevant mutation
// triggers a fresh user-visible cycle while a market view is active.
func (o *Orchestrator) selectionChanged() {
	o.mu.Lock()
	active := o.active
	o.mu.Unlock()
	if active {
		o.begin(false)
	}
}

// pollLoop runs silent refreshes on the configured interval until stop
// closes.
func (o *Orchestrator) pollLoop(stop chan struct{}) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			o.begin(true)
		case <-stop:
			return
		}
	}
}

// begin starts a refresh cycle. Under the lock it cancels any in-flight
// cycle, snapshots the selection state into a batch, and flips loading
// state for non-silent cycles; the network call runs in its own
// goroutine.
func (o *Orchestrator) begin(silent bool) {
	o.mu.Lock()
	if !o.active {
		o.mu.Unlock()
		return
	}

	// Supersede: at most one live aggregation request at any time. The
	// previous cycle's token is invalidated before the new call starts,
	// so its late response can never clobber a fresher snapshot.
	if o.cancel != nil {
		o.cancel()
	}

	// A superseded user-visible cycle can no longer clear the loading
	// flag it set; the replacement inherits its visibility so the flag
	// resolves when the winner does.
	if silent && o.loading {
		silent = false
	}
	ctx, cancel := context.WithTimeout(context.Background(), o.batchTimeout)
	o.cancel = cancel
	o.cycle++
	id := o.cycle

	if !silent {
		o.loading = true
		o.errMsg = ""
	}
	o.mu.Unlock()

	req := o.store.Snapshot().BuildRequest()
	cycleID := uuid.New()
	o.log.Debugw("refresh cycle started", "cycle_id", cycleID, "silent", silent)

	go o.run(ctx, cancel, id, cycleID, silent, req)
}

// run performs the aggregation call and applies the outcome, unless the
// cycle was superseded in the meantime.
func (o *Orchestrator) run(ctx context.Context, cancel context.CancelFunc,
	id uint64, cycleID string, silent bool, req models.RefreshRequest) {
	defer cancel()

	snap, err := o.agg.Aggregate(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()

	// A newer cycle owns the outcome now; this one's result is
	// discarded whether it succeeded or not.
	if id != o.cycle {
		o.log.Debugw("refresh cycle superseded", "cycle_id", cycleID)
		return
	}
	o.cancel = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Aborted by teardown: no observable change.
			o.log.Debugw("refresh cycle aborted", "cycle_id", cycleID)
			return
		}
		if silent {
			// Background poll failed: the previous snapshot stays
			// authoritative and no error is surfaced.
			o.log.Debugw("silent refresh failed", "cycle_id", cycleID, "error", err)
			return
		}
		o.log.Warnw("refresh failed", "cycle_id", cycleID, "error", err)
		o.loading = false
		o.errMsg = "Market data refresh failed"
		o.cache.Clear()
		return
	}

	o.cache.Replace(snap)
	if !silent {
		o.loading = false
		o.errMsg = ""
	}
	o.log.Debugw("refresh cycle succeeded", "cycle_id", cycleID)
}
