// Package rental implements the client's transaction lifecycle: validated
// submissions against the rental program and the periodic reconciliation of
// on-chain listings into a local snapshot.
package rental

import (
	"context"
	"sync"
	"time"

	"github.com/aptrent/aptrent/internal/ledger"
	"github.com/aptrent/aptrent/internal/logging"
)

// DefaultPollInterval is how often the reconciler re-reads chain state when
// no interval is configured.
const DefaultPollInterval = 10 * time.Second

// ListingSource is the query surface the reconciler polls.
type ListingSource interface {
	FetchListings(ctx context.Context) ([]ledger.Listing, error)
}

// Reconciler owns the local snapshot of on-chain listings and keeps it fresh
// with a fixed-interval poll. The snapshot is replaced wholesale on every
// successful fetch; chain state is the single source of truth, so a fetch
// returning fewer items than before is trusted completely.
type Reconciler struct {
	src      ListingSource
	interval time.Duration
	log      logging.Logger
	onUpdate func([]ledger.Listing)
	kick     chan struct{}

	mu       sync.Mutex
	snapshot []ledger.Listing
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewReconciler builds a stopped reconciler. onUpdate, if non-nil, is called
// with each new snapshot from the poll goroutine.
func NewReconciler(src ListingSource, interval time.Duration, log logging.Logger, onUpdate func([]ledger.Listing)) *Reconciler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Reconciler{
		src:      src,
		interval: interval,
		log:      log.With("component", "reconciler"),
		onUpdate: onUpdate,
		kick:     make(chan struct{}, 1),
	}
}

// Start launches the poll loop: one fetch immediately, then one per tick.
// Starting an already running reconciler is a no-op.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.loop(ctx, r.done)
}

// Stop cancels the poll loop, including any in-flight next tick, and waits
// for the goroutine to exit. Stop is idempotent.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Refresh requests one out-of-band fetch on the poll goroutine. Used after a
// successful submission so the user sees the result before the next tick.
// Coalesces: at most one extra fetch is queued at a time.
func (r *Reconciler) Refresh() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the most recent successfully fetched listings.
func (r *Reconciler) Snapshot() []ledger.Listing {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ledger.Listing, len(r.snapshot))
	copy(out, r.snapshot)
	return out
}

func (r *Reconciler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.fetch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.kick:
			r.fetch(ctx)
		case <-ticker.C:
			r.fetch(ctx)
		}
	}
}

func (r *Reconciler) fetch(ctx context.Context) {
	listings, err := r.src.FetchListings(ctx)
	if err != nil {
		// The previous snapshot stays; the next tick retries on its own.
		r.log.Warn(ctx, "listing fetch failed", "err", err)
		return
	}

	r.mu.Lock()
	r.snapshot = listings
	r.mu.Unlock()

	r.log.Info(ctx, "snapshot replaced", "listings", len(listings))
	if r.onUpdate != nil {
		r.onUpdate(listings)
	}
}
