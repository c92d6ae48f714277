package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alegonzalezz/ATS/internal/batch"
	"github.com/alegonzalezz/ATS/internal/model"
)

// fastRunner keeps bulk tests from waiting on the default pacing.
func fastRunner() *batch.Runner {
	return batch.NewRunner(10000, 100)
}

func TestSyncLinkedIn_StampsLastSync(t *testing.T) {
	s := localStore()
	s.randFloat = func() float64 { return 0.1 } // below the flip threshold

	cand := s.Add(context.Background(), AddParams{Name: "Ana", LinkedIn: strPtr("ana-g")})

	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	synced := s.SyncLinkedIn(context.Background(), cand.ID)
	require.NotNil(t, synced)
	require.NotNil(t, synced.LastLinkedInSync)
	assert.Equal(t, now, *synced.LastLinkedInSync)
	assert.False(t, synced.OpenToWork, "no flip below the threshold")
	assert.Empty(t, synced.ChangeHistory)
}

func TestSyncLinkedIn_FlipRecordsChange(t *testing.T) {
	s := localStore()
	s.randFloat = func() float64 { return 0.9 }

	cand := s.Add(context.Background(), AddParams{Name: "Ana", LinkedIn: strPtr("ana-g")})

	synced := s.SyncLinkedIn(context.Background(), cand.ID)
	require.NotNil(t, synced)
	assert.True(t, synced.OpenToWork)
	require.Len(t, synced.ChangeHistory, 1)
	assert.Equal(t, model.ChangeOpenToWork, synced.ChangeHistory[0].Type)
}

func TestSyncLinkedIn_UnknownID(t *testing.T) {
	s := localStore()
	assert.Nil(t, s.SyncLinkedIn(context.Background(), "ghost"))
}

func TestBulkSyncLinkedIn_TargetsOnlyLinkedProfiles(t *testing.T) {
	s := localStore().WithRunner(fastRunner())
	s.randFloat = func() float64 { return 0.1 }
	ctx := context.Background()

	s.Add(ctx, AddParams{Name: "Ana", LinkedIn: strPtr("ana-g")})
	s.Add(ctx, AddParams{Name: "Luis"}) // no profile
	s.Add(ctx, AddParams{Name: "Eva", LinkedIn: strPtr("eva-m")})

	var progress [][2]int
	total, err := s.BulkSyncLinkedIn(ctx, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, progress)
}

func TestBulkSyncLinkedIn_Cancellation(t *testing.T) {
	s := localStore().WithRunner(batch.NewRunner(10, 1))
	ctx, cancel := context.WithCancel(context.Background())

	s.Add(ctx, AddParams{Name: "Ana", LinkedIn: strPtr("a")})
	s.Add(ctx, AddParams{Name: "Eva", LinkedIn: strPtr("b")})
	cancel()

	_, err := s.BulkSyncLinkedIn(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlushPending(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("down")}
	s, _ := newTestStore(gw)
	s.WithRunner(fastRunner())
	ctx := context.Background()

	a := s.Add(ctx, AddParams{Name: "Ana", Email: "ana@x.com"})
	b := s.Add(ctx, AddParams{Name: "Luis", Email: "luis@y.com"})
	require.Len(t, s.PendingSync(), 2)

	// gateway comes back
	gw.mu.Lock()
	gw.createErr = nil
	gw.mu.Unlock()

	synced, err := s.FlushPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, synced)
	assert.Empty(t, s.PendingSync())

	// local ids survive the flush
	_, ok := s.Get(a.ID)
	assert.True(t, ok)
	_, ok = s.Get(b.ID)
	assert.True(t, ok)
}

func TestFlushPending_PartialFailureStaysPending(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("down")}
	s, _ := newTestStore(gw)
	s.WithRunner(fastRunner())
	ctx := context.Background()

	s.Add(ctx, AddParams{Name: "Ana"})

	synced, err := s.FlushPending(ctx) // gateway still down
	require.NoError(t, err)
	assert.Zero(t, synced)
	assert.Len(t, s.PendingSync(), 1)
}

func TestBulkSyncManager_SingleRun(t *testing.T) {
	s := localStore().WithRunner(fastRunner())
	s.randFloat = func() float64 { return 0.1 }
	ctx := context.Background()

	for _, n := range []string{"a", "b", "c"} {
		s.Add(ctx, AddParams{Name: n, LinkedIn: strPtr(n)})
	}

	m := NewBulkSyncManager(s)

	done := make(chan struct{})
	m.SetProgressHook(func(d, total int) {
		if d == total {
			close(done)
		}
	})

	require.NoError(t, m.Start())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("bulk sync did not finish")
	}

	// wait for the run goroutine to clear the running flag
	deadline := time.After(2 * time.Second)
	for m.Progress().Running {
		select {
		case <-deadline:
			t.Fatal("manager never became idle")
		case <-time.After(10 * time.Millisecond):
		}
	}

	p := m.Progress()
	assert.Equal(t, 3, p.Done)
	assert.Equal(t, 3, p.Total)
	assert.NotNil(t, p.StartedAt)
}

func TestBulkSyncManager_RejectsConcurrentStart(t *testing.T) {
	s := localStore().WithRunner(batch.NewRunner(5, 1))
	ctx := context.Background()
	s.Add(ctx, AddParams{Name: "a", LinkedIn: strPtr("a")})
	s.Add(ctx, AddParams{Name: "b", LinkedIn: strPtr("b")})

	m := NewBulkSyncManager(s)
	require.NoError(t, m.Start())
	defer m.Stop()

	assert.ErrorIs(t, m.Start(), ErrSyncRunning)
}

func TestBulkSyncManager_StopWhileIdle(t *testing.T) {
	m := NewBulkSyncManager(localStore())
	m.Stop()
	assert.False(t, m.Progress().Running)
}
