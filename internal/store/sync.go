package store

import (
	"context"

	"github.com/alegonzalezz/ATS/internal/gateway"
	"github.com/alegonzalezz/ATS/internal/model"
)

// linkedInFlipThreshold is the simulated probability gate: a draw above
// it flips the candidate's openToWork flag during a sync.
const linkedInFlipThreshold = 0.7

// SyncLinkedIn simulates one profile sync: it stamps LastLinkedInSync
// and occasionally flips openToWork, exercising the same update and
// change-record path a real profile diff would. Returns nil for unknown
// ids.
func (s *Store) SyncLinkedIn(ctx context.Context, id string) *model.Candidate {
	c, ok := s.Get(id)
	if !ok {
		return nil
	}

	now := s.now()
	patch := CandidatePatch{LastLinkedInSync: &now}
	if s.randFloat() > linkedInFlipThreshold {
		flipped := !c.OpenToWork
		patch.OpenToWork = &flipped
	}

	return s.Update(ctx, id, patch)
}

// BulkSyncLinkedIn sequentially syncs every candidate that has a
// LinkedIn profile, pacing items through the batch runner to model a
// rate-limited external API. onProgress is invoked after each item.
// Returns the number of candidates targeted.
func (s *Store) BulkSyncLinkedIn(ctx context.Context, onProgress func(done, total int)) (int, error) {
	ids := s.linkedInCandidateIDs()
	total := len(ids)

	err := s.runner.Run(ctx, total, func(ctx context.Context, i int) {
		s.SyncLinkedIn(ctx, ids[i])
		if onProgress != nil {
			onProgress(i+1, total)
		}
	})

	return total, err
}

func (s *Store) linkedInCandidateIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for i := range s.candidates {
		if s.candidates[i].LinkedIn != nil && *s.candidates[i].LinkedIn != "" {
			ids = append(ids, s.candidates[i].ID)
		}
	}
	return ids
}

// PendingSync returns the candidates created locally while the gateway
// was unreachable, newest-first.
func (s *Store) PendingSync() []model.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Candidate
	for i := range s.candidates {
		if s.candidates[i].PendingSync {
			out = append(out, s.candidates[i])
		}
	}
	return out
}

// FlushPending retries gateway creation for locally-pending candidates,
// paced by the batch runner. Candidates keep their local id; a successful
// retry just clears the pending flag. Failures stay pending for a later
// flush. Returns how many were synced.
func (s *Store) FlushPending(ctx context.Context) (int, error) {
	pending := s.PendingSync()

	synced := 0
	err := s.runner.Run(ctx, len(pending), func(ctx context.Context, i int) {
		c := pending[i]
		req := gateway.CreateApplicantRequest{
			Name:     c.Name,
			LastName: c.LastName,
			Email:    c.Email,
			English:  "intermediate",
		}
		if c.Phone != nil {
			req.Phone = *c.Phone
		}
		if c.LinkedIn != nil {
			req.LinkedIn = *c.LinkedIn
		}
		if c.Location != nil {
			req.City = *c.Location
		}

		if _, err := s.gw.Create(ctx, req); err != nil {
			s.log.Warn().Err(err).Str("id", c.ID).Msg("pending sync retry failed")
			return
		}

		cleared := false
		s.Update(ctx, c.ID, CandidatePatch{PendingSync: &cleared})
		synced++
	})

	return synced, err
}
