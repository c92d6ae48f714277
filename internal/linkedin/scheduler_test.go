package linkedin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alegonzalezz/ATS/internal/logger"
	"github.com/alegonzalezz/ATS/internal/model"
	"github.com/alegonzalezz/ATS/internal/snapshot"
)

func newTestScheduler() (*Scheduler, *snapshot.MemoryStore) {
	snap := snapshot.NewMemoryStore()
	return NewScheduler(snap, logger.Nop()), snap
}

func TestConfig_DefaultsWhenMissing(t *testing.T) {
	s, _ := newTestScheduler()

	cfg := s.Config()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, model.SyncWeekly, cfg.Frequency)
	assert.Nil(t, cfg.LastSync)
	assert.Nil(t, cfg.NextSync)
}

func TestConfig_DefaultsWhenCorrupt(t *testing.T) {
	s, snap := newTestScheduler()
	require.NoError(t, snap.Save(snapshot.KeySyncConfig, []byte("{oops")))

	cfg := s.Config()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, model.SyncWeekly, cfg.Frequency)
}

func TestUpdate_EnableComputesNextSync(t *testing.T) {
	s, _ := newTestScheduler()
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	cfg, err := s.Update(true, model.SyncMonthly)
	require.NoError(t, err)

	require.NotNil(t, cfg.NextSync)
	assert.Equal(t, now.AddDate(0, 0, 30).Format(time.RFC3339), *cfg.NextSync)

	// round-trips through the snapshot
	reloaded := s.Config()
	assert.True(t, reloaded.Enabled)
	assert.Equal(t, model.SyncMonthly, reloaded.Frequency)
	assert.Equal(t, *cfg.NextSync, *reloaded.NextSync)
}

func TestUpdate_DisableClearsNextSync(t *testing.T) {
	s, _ := newTestScheduler()
	_, err := s.Update(true, model.SyncWeekly)
	require.NoError(t, err)

	cfg, err := s.Update(false, model.SyncWeekly)
	require.NoError(t, err)
	assert.Nil(t, cfg.NextSync)
}

func TestUpdate_RejectsUnknownFrequency(t *testing.T) {
	s, _ := newTestScheduler()
	_, err := s.Update(true, "daily")
	assert.Error(t, err)
}

func TestRecordSync_AdvancesSchedule(t *testing.T) {
	s, _ := newTestScheduler()
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, err := s.Update(true, model.SyncWeekly)
	require.NoError(t, err)

	later := now.AddDate(0, 0, 8)
	s.now = func() time.Time { return later }

	cfg, err := s.RecordSync()
	require.NoError(t, err)

	require.NotNil(t, cfg.LastSync)
	assert.Equal(t, later.Format(time.RFC3339), *cfg.LastSync)
	require.NotNil(t, cfg.NextSync)
	assert.Equal(t, later.AddDate(0, 0, 7).Format(time.RFC3339), *cfg.NextSync)
}

func TestDue(t *testing.T) {
	s, _ := newTestScheduler()
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	assert.False(t, s.Due(), "disabled schedule is never due")

	_, err := s.Update(true, model.SyncWeekly)
	require.NoError(t, err)
	assert.False(t, s.Due(), "just scheduled, a week out")

	s.now = func() time.Time { return now.AddDate(0, 0, 7) }
	assert.True(t, s.Due(), "interval elapsed")
}

func TestStatus_Messages(t *testing.T) {
	s, _ := newTestScheduler()
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	assert.Equal(t, "Sincronización automática desactivada", s.Status().Message)

	_, err := s.Update(true, model.SyncWeekly)
	require.NoError(t, err)
	assert.Contains(t, s.Status().Message, "Próxima sincronización")

	s.now = func() time.Time { return now.AddDate(0, 0, 10) }
	assert.Equal(t, "Sincronización pendiente", s.Status().Message)
}
