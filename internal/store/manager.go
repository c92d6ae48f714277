package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSyncRunning is returned when a bulk sync is requested while one is
// already in flight.
var ErrSyncRunning = errors.New("a bulk sync is already running")

// SyncProgress is a snapshot of the current (or last) bulk sync.
type SyncProgress struct {
	Running   bool       `json:"running"`
	Done      int        `json:"done"`
	Total     int        `json:"total"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// BulkSyncManager runs at most one bulk LinkedIn sync at a time and
// tracks its progress so HTTP handlers can start a sync, answer
// immediately and poll status.
type BulkSyncManager struct {
	mu       sync.Mutex
	store    *Store
	cancelFn context.CancelFunc
	progress SyncProgress

	// onProgress, when set, is invoked after each synced candidate.
	onProgress func(done, total int)
}

// NewBulkSyncManager creates a manager for the given store.
func NewBulkSyncManager(store *Store) *BulkSyncManager {
	return &BulkSyncManager{store: store}
}

// SetProgressHook installs a callback fired after each item, e.g. to
// broadcast progress over a websocket.
func (m *BulkSyncManager) SetProgressHook(fn func(done, total int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress = fn
}

// Start launches a bulk sync in the background. Returns ErrSyncRunning
// if one is already active.
//
// The sync runs on a context detached from the caller: an HTTP request
// context would be cancelled as soon as the handler returns.
func (m *BulkSyncManager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.progress.Running {
		return ErrSyncRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFn = cancel

	now := time.Now()
	m.progress = SyncProgress{Running: true, StartedAt: &now}

	go m.run(ctx)
	return nil
}

// Stop cancels the active bulk sync. Safe to call when idle.
func (m *BulkSyncManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancelFn != nil {
		m.cancelFn()
		m.cancelFn = nil
	}
	m.progress.Running = false
}

// Progress returns the current progress snapshot.
func (m *BulkSyncManager) Progress() SyncProgress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.progress
}

func (m *BulkSyncManager) run(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.progress.Running = false
		m.cancelFn = nil
		m.mu.Unlock()
	}()

	_, _ = m.store.BulkSyncLinkedIn(ctx, func(done, total int) {
		m.mu.Lock()
		m.progress.Done = done
		m.progress.Total = total
		hook := m.onProgress
		m.mu.Unlock()

		if hook != nil {
			hook(done, total)
		}
	})
}
