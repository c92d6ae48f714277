// Package linkedin schedules the periodic profile sync. The schedule
// itself is persisted next to the candidate snapshot so it survives
// restarts; actually running a sync is the store's job.
package linkedin

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alegonzalezz/ATS/internal/logger"
	"github.com/alegonzalezz/ATS/internal/model"
	"github.com/alegonzalezz/ATS/internal/snapshot"
)

// Scheduler owns the persisted sync configuration and decides when the
// next bulk sync is due.
type Scheduler struct {
	snap snapshot.Store
	log  *logger.Logger

	now func() time.Time
}

// NewScheduler creates a scheduler persisting through the given snapshot
// store.
func NewScheduler(snap snapshot.Store, log *logger.Logger) *Scheduler {
	return &Scheduler{snap: snap, log: log, now: time.Now}
}

// Config returns the persisted sync configuration. A missing or corrupt
// entry yields the disabled weekly default.
func (s *Scheduler) Config() model.LinkedInSyncConfig {
	def := model.LinkedInSyncConfig{Enabled: false, Frequency: model.SyncWeekly}

	raw, err := s.snap.Load(snapshot.KeySyncConfig)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			s.log.Warn().Err(err).Msg("read sync config, using defaults")
		}
		return def
	}

	var cfg model.LinkedInSyncConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		s.log.Warn().Err(err).Msg("sync config corrupt, using defaults")
		return def
	}
	if cfg.Frequency != model.SyncWeekly && cfg.Frequency != model.SyncMonthly {
		cfg.Frequency = model.SyncWeekly
	}
	return cfg
}

// Update stores new settings. Enabling the sync (or changing frequency)
// recomputes NextSync from now; disabling clears it.
func (s *Scheduler) Update(enabled bool, frequency model.SyncFrequency) (model.LinkedInSyncConfig, error) {
	if frequency != model.SyncWeekly && frequency != model.SyncMonthly {
		return model.LinkedInSyncConfig{}, fmt.Errorf("unknown sync frequency %q", frequency)
	}

	cfg := s.Config()
	cfg.Enabled = enabled
	cfg.Frequency = frequency

	if enabled {
		next := s.now().AddDate(0, 0, frequency.Days()).Format(time.RFC3339)
		cfg.NextSync = &next
	} else {
		cfg.NextSync = nil
	}

	if err := s.save(cfg); err != nil {
		return model.LinkedInSyncConfig{}, err
	}
	return cfg, nil
}

// RecordSync marks a completed sync: LastSync becomes now and, when the
// schedule is enabled, NextSync advances one full interval.
func (s *Scheduler) RecordSync() (model.LinkedInSyncConfig, error) {
	cfg := s.Config()

	now := s.now()
	last := now.Format(time.RFC3339)
	cfg.LastSync = &last

	if cfg.Enabled {
		next := now.AddDate(0, 0, cfg.Frequency.Days()).Format(time.RFC3339)
		cfg.NextSync = &next
	}

	if err := s.save(cfg); err != nil {
		return model.LinkedInSyncConfig{}, err
	}
	return cfg, nil
}

// Due reports whether a scheduled sync should run now.
func (s *Scheduler) Due() bool {
	cfg := s.Config()
	if !cfg.Enabled || cfg.NextSync == nil {
		return false
	}
	next, err := time.Parse(time.RFC3339, *cfg.NextSync)
	if err != nil {
		s.log.Warn().Err(err).Msg("unparseable nextSync, treating as due")
		return true
	}
	return !s.now().Before(next)
}

// Status is a human-readable view of the schedule.
type Status struct {
	Enabled  bool    `json:"enabled"`
	Message  string  `json:"message"`
	LastSync *string `json:"lastSync"`
	NextSync *string `json:"nextSync"`
}

// Status summarizes the schedule for display.
func (s *Scheduler) Status() Status {
	cfg := s.Config()
	st := Status{
		Enabled:  cfg.Enabled,
		LastSync: cfg.LastSync,
		NextSync: cfg.NextSync,
	}

	switch {
	case !cfg.Enabled:
		st.Message = "Sincronización automática desactivada"
	case s.Due():
		st.Message = "Sincronización pendiente"
	case cfg.NextSync != nil:
		st.Message = fmt.Sprintf("Próxima sincronización: %s", *cfg.NextSync)
	default:
		st.Message = "Sincronización programada"
	}
	return st
}

func (s *Scheduler) save(cfg model.LinkedInSyncConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal sync config: %w", err)
	}
	if err := s.snap.Save(snapshot.KeySyncConfig, raw); err != nil {
		return fmt.Errorf("persist sync config: %w", err)
	}
	return nil
}
