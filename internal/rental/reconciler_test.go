package rental

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aptrent/aptrent/internal/ledger"
	"github.com/aptrent/aptrent/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeSource counts fetches and serves a scripted sequence of results.
type fakeSource struct {
	mu       sync.Mutex
	fetches  atomic.Int32
	listings []ledger.Listing
	err      error
}

func (f *fakeSource) FetchListings(ctx context.Context) ([]ledger.Listing, error) {
	f.fetches.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]ledger.Listing, len(f.listings))
	copy(out, f.listings)
	return out, nil
}

func (f *fakeSource) set(listings []ledger.Listing, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings, f.err = listings, err
}

func TestReconciler_FetchesImmediatelyOnStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{}
	src.set([]ledger.Listing{{Owner: "0xcafe", Name: "Drill", DailyRate: 1, Available: true}}, nil)

	r := NewReconciler(src, time.Hour, testLogger(), nil)
	r.Start(context.Background())
	defer r.Stop()

	require.Eventually(t, func() bool {
		return len(r.Snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), src.fetches.Load())
}

func TestReconciler_StopEndsPolling(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{}
	r := NewReconciler(src, 10*time.Millisecond, testLogger(), nil)
	r.Start(context.Background())

	require.Eventually(t, func() bool {
		return src.fetches.Load() >= 3
	}, time.Second, time.Millisecond)

	r.Stop()
	after := src.fetches.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, src.fetches.Load(), "no fetches after Stop")
}

func TestReconciler_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewReconciler(&fakeSource{}, time.Hour, testLogger(), nil)
	r.Start(context.Background())
	r.Stop()
	r.Stop()

	// Stop before Start is a no-op too.
	r2 := NewReconciler(&fakeSource{}, time.Hour, testLogger(), nil)
	r2.Stop()
}

func TestReconciler_StartTwiceRunsOneLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{}
	r := NewReconciler(src, time.Hour, testLogger(), nil)
	r.Start(context.Background())
	r.Start(context.Background())
	defer r.Stop()

	require.Eventually(t, func() bool {
		return src.fetches.Load() == 1
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), src.fetches.Load())
}

func TestReconciler_RefreshTriggersOutOfBandFetch(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{}
	r := NewReconciler(src, time.Hour, testLogger(), nil)
	r.Start(context.Background())
	defer r.Stop()

	require.Eventually(t, func() bool { return src.fetches.Load() == 1 }, time.Second, time.Millisecond)

	r.Refresh()
	require.Eventually(t, func() bool { return src.fetches.Load() == 2 }, time.Second, time.Millisecond)
}

func TestReconciler_FetchFailureKeepsSnapshotAndLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{}
	src.set([]ledger.Listing{{Owner: "0xcafe", Name: "Camera", DailyRate: 1}}, nil)

	r := NewReconciler(src, 10*time.Millisecond, testLogger(), nil)
	r.Start(context.Background())
	defer r.Stop()

	require.Eventually(t, func() bool { return len(r.Snapshot()) == 1 }, time.Second, time.Millisecond)

	// Failures leave the last good snapshot in place and do not stop the timer.
	src.set(nil, errors.New("rpc unreachable"))
	before := src.fetches.Load()
	require.Eventually(t, func() bool { return src.fetches.Load() > before+1 }, time.Second, time.Millisecond)
	assert.Len(t, r.Snapshot(), 1)

	// Recovery replaces the snapshot wholesale, even with fewer items.
	src.set([]ledger.Listing{}, nil)
	require.Eventually(t, func() bool { return len(r.Snapshot()) == 0 }, time.Second, time.Millisecond)
}

func TestReconciler_PublishesSnapshots(t *testing.T) {
	defer goleak.VerifyNone(t)

	var got atomic.Int32
	src := &fakeSource{}
	src.set([]ledger.Listing{{Name: "Drill"}, {Name: "Camera"}}, nil)

	r := NewReconciler(src, time.Hour, testLogger(), func(listings []ledger.Listing) {
		got.Store(int32(len(listings)))
	})
	r.Start(context.Background())
	defer r.Stop()

	require.Eventually(t, func() bool { return got.Load() == 2 }, time.Second, time.Millisecond)
}
