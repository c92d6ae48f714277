// Package store owns the canonical in-memory candidate collection. It
// pulls state from the remote applicant gateway, falls back to the local
// snapshot when the gateway is unreachable, mirrors every change back to
// the snapshot, and maintains the per-candidate change history.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alegonzalezz/ATS/internal/batch"
	"github.com/alegonzalezz/ATS/internal/cvparse"
	"github.com/alegonzalezz/ATS/internal/gateway"
	"github.com/alegonzalezz/ATS/internal/logger"
	"github.com/alegonzalezz/ATS/internal/model"
	"github.com/alegonzalezz/ATS/internal/snapshot"
)

// Candidate lifecycle event types published to the event bus.
const (
	EventCandidateCreated = "candidate.created"
	EventCandidateUpdated = "candidate.updated"
	EventCandidateDeleted = "candidate.deleted"
)

// CandidateEvent is a lifecycle notification for a single candidate.
type CandidateEvent struct {
	Type        string    `json:"type"`
	CandidateID string    `json:"candidate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher publishes candidate lifecycle events.
type EventPublisher interface {
	PublishCandidateEvent(ctx context.Context, event CandidateEvent) error
}

// ApplicantGateway is the slice of the remote gateway the store consumes.
type ApplicantGateway interface {
	List(ctx context.Context, includeInactive bool) ([]gateway.Applicant, error)
	Create(ctx context.Context, req gateway.CreateApplicantRequest) (*gateway.Applicant, error)
}

// Store is the single source of truth for candidates within a session.
// All mutations are atomic: the read-old-state, detect-changes, write
// sequence happens under one lock acquisition.
type Store struct {
	mu         sync.RWMutex
	candidates []model.Candidate

	gw     ApplicantGateway
	snap   snapshot.Store
	events EventPublisher
	parser *cvparse.Parser
	runner *batch.Runner
	log    *logger.Logger

	// injectable for tests
	now       func() time.Time
	newID     func() string
	randFloat func() float64
}

// New creates a store backed by the given gateway and snapshot store.
// The zero-value parser and runner are usable defaults.
func New(gw ApplicantGateway, snap snapshot.Store, log *logger.Logger) *Store {
	parser, _ := cvparse.NewParser("")
	return &Store{
		gw:        gw,
		snap:      snap,
		parser:    parser,
		runner:    batch.DefaultRunner(),
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
		randFloat: rand.Float64,
	}
}

// WithEvents attaches an event publisher.
func (s *Store) WithEvents(pub EventPublisher) *Store {
	s.events = pub
	return s
}

// WithParser replaces the CV parser (e.g. one with an extended vocabulary).
func (s *Store) WithParser(p *cvparse.Parser) *Store {
	s.parser = p
	return s
}

// WithRunner replaces the batch runner used for bulk syncs.
func (s *Store) WithRunner(r *batch.Runner) *Store {
	s.runner = r
	return s
}

// Load initializes state from the remote gateway, falling back to the
// local snapshot when the gateway is unreachable. A corrupt or missing
// snapshot leaves the store empty. Load never fails: every degradation
// path ends in a usable (possibly empty) collection.
func (s *Store) Load(ctx context.Context) error {
	applicants, err := s.gw.List(ctx, false)
	if err != nil {
		s.log.Warn().Err(err).Msg("gateway unavailable, loading local snapshot")
		s.loadFromSnapshot()
		return nil
	}

	now := s.now()
	candidates := make([]model.Candidate, len(applicants))
	for i := range applicants {
		candidates[i] = applicants[i].ToCandidate(now)
	}

	s.mu.Lock()
	s.candidates = candidates
	s.persistLocked()
	s.mu.Unlock()

	s.log.Info().Int("count", len(candidates)).Msg("loaded candidates from gateway")
	return nil
}

func (s *Store) loadFromSnapshot() {
	raw, err := s.snap.Load(snapshot.KeyCandidates)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			s.log.Warn().Err(err).Msg("snapshot read failed, starting empty")
		}
		return
	}

	var candidates []model.Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		s.log.Warn().Err(err).Msg("snapshot corrupt, starting empty")
		return
	}

	s.mu.Lock()
	s.candidates = candidates
	s.mu.Unlock()

	s.log.Info().Int("count", len(candidates)).Msg("loaded candidates from snapshot")
}

// persistLocked mirrors the full collection to the snapshot store.
// Callers must hold the write lock.
func (s *Store) persistLocked() {
	raw, err := json.Marshal(s.candidates)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal candidates for snapshot")
		return
	}
	if err := s.snap.Save(snapshot.KeyCandidates, raw); err != nil {
		s.log.Error().Err(err).Msg("mirror candidates to snapshot")
	}
}

func (s *Store) publish(ctx context.Context, eventType, candidateID string) {
	if s.events == nil {
		return
	}
	event := CandidateEvent{
		Type:        eventType,
		CandidateID: candidateID,
		OccurredAt:  s.now(),
	}
	if err := s.events.PublishCandidateEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("type", eventType).Msg("publish candidate event")
	}
}

// List returns a copy of the collection, newest-first.
func (s *Store) List() []model.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Get returns a copy of one candidate.
func (s *Store) Get(id string) (model.Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			return s.candidates[i], true
		}
	}
	return model.Candidate{}, false
}

// Count returns the collection size.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates)
}

// AddParams carries the fields a new candidate can start with.
type AddParams struct {
	Name     string
	LastName string
	Email    string
	Phone    *string
	Location *string
	LinkedIn *string

	// EnglishLevel feeds the gateway's english field; empty defaults to
	// "intermediate".
	EnglishLevel string

	CurrentRole    *string
	CurrentCompany *string
	Summary        *string

	Experience []model.Experience
	Education  []model.Education
	Skills     []string
	Languages  []model.Language
	Tags       []string

	Status model.CandidateStatus
	Source model.CandidateSource

	CVFileName *string
	CVContent  *string

	OpenToWork bool
}

func (p *AddParams) toCandidate(id string, now time.Time) model.Candidate {
	c := model.Candidate{
		ID:             id,
		Name:           p.Name,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		Location:       p.Location,
		LinkedIn:       p.LinkedIn,
		CurrentRole:    p.CurrentRole,
		CurrentCompany: p.CurrentCompany,
		Summary:        p.Summary,
		Experience:     p.Experience,
		Education:      p.Education,
		Skills:         p.Skills,
		Languages:      p.Languages,
		Tags:           p.Tags,
		Status:         p.Status,
		Source:         p.Source,
		CVFileName:     p.CVFileName,
		CVContent:      p.CVContent,
		OpenToWork:     p.OpenToWork,
		PendingSync:    true,
		CreatedAt:      now,
		UpdatedAt:      now,
		ChangeHistory:  []model.ChangeRecord{},
		Notes:          []model.Note{},
	}
	if c.Status == "" {
		c.Status = model.StatusNuevo
	}
	if c.Source == "" {
		c.Source = model.SourceManual
	}
	if c.Experience == nil {
		c.Experience = []model.Experience{}
	}
	if c.Education == nil {
		c.Education = []model.Education{}
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Languages == nil {
		c.Languages = []model.Language{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c
}

// Add creates a candidate. It first attempts the remote gateway; on any
// failure it synthesizes the candidate locally, flagged PendingSync, so
// the operation never fails visibly to the caller.
func (s *Store) Add(ctx context.Context, params AddParams) model.Candidate {
	english := params.EnglishLevel
	if english == "" {
		english = "intermediate"
	}

	req := gateway.CreateApplicantRequest{
		Name:     params.Name,
		LastName: params.LastName,
		Email:    params.Email,
		English:  english,
	}
	if params.Phone != nil {
		req.Phone = *params.Phone
	}
	if params.LinkedIn != nil {
		req.LinkedIn = *params.LinkedIn
	}
	if params.Location != nil {
		req.City = *params.Location
	}

	var cand model.Candidate
	applicant, err := s.gw.Create(ctx, req)
	if err == nil {
		cand = applicant.ToCandidate(s.now())
		if params.Source != "" {
			cand.Source = params.Source
		}
	} else {
		s.log.Warn().Err(err).Msg("gateway create failed, keeping candidate local")
		cand = params.toCandidate(s.newID(), s.now())
	}

	s.mu.Lock()
	s.candidates = append([]model.Candidate{cand}, s.candidates...)
	s.persistLocked()
	s.mu.Unlock()

	s.publish(ctx, EventCandidateCreated, cand.ID)
	return cand
}

// Update applies a partial update to a candidate. Watched field
// transitions each prepend a change record before the merge; UpdatedAt is
// always refreshed. Updating a missing id is a silent no-op returning nil.
func (s *Store) Update(ctx context.Context, id string, patch CandidatePatch) *model.Candidate {
	s.mu.Lock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	c := &s.candidates[idx]
	now := s.now()

	for _, rule := range changeRules {
		rec := rule(c, &patch)
		if rec == nil {
			continue
		}
		rec.ID = s.newID()
		rec.Date = now
		c.ChangeHistory = append([]model.ChangeRecord{*rec}, c.ChangeHistory...)
	}

	patch.apply(c)
	c.UpdatedAt = now

	updated := *c
	s.persistLocked()
	s.mu.Unlock()

	s.publish(ctx, EventCandidateUpdated, id)
	return &updated
}

// Delete removes a candidate. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()

	kept := s.candidates[:0]
	removed := false
	for _, c := range s.candidates {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	s.candidates = kept
	if removed {
		s.persistLocked()
	}
	s.mu.Unlock()

	if removed {
		s.publish(ctx, EventCandidateDeleted, id)
	}
}

// AddNote prepends a note to a candidate. Returns nil when the candidate
// does not exist.
func (s *Store) AddNote(ctx context.Context, candidateID, content, createdBy string) *model.Note {
	if createdBy == "" {
		createdBy = "Usuario"
	}

	s.mu.Lock()

	idx := s.indexLocked(candidateID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	c := &s.candidates[idx]
	now := s.now()
	note := model.Note{
		ID:        s.newID(),
		Content:   content,
		CreatedAt: now,
		CreatedBy: createdBy,
	}
	c.Notes = append([]model.Note{note}, c.Notes...)
	c.UpdatedAt = now

	s.persistLocked()
	s.mu.Unlock()

	s.publish(ctx, EventCandidateUpdated, candidateID)
	return &note
}

// AddTag adds a tag to a candidate if not already present. Adding an
// existing tag changes nothing, not even UpdatedAt.
func (s *Store) AddTag(ctx context.Context, candidateID, tag string) {
	s.mu.Lock()

	idx := s.indexLocked(candidateID)
	if idx < 0 || s.candidates[idx].HasTag(tag) {
		s.mu.Unlock()
		return
	}

	c := &s.candidates[idx]
	c.Tags = append(c.Tags, tag)
	c.UpdatedAt = s.now()

	s.persistLocked()
	s.mu.Unlock()

	s.publish(ctx, EventCandidateUpdated, candidateID)
}

// RemoveTag removes all occurrences of a tag from a candidate.
func (s *Store) RemoveTag(ctx context.Context, candidateID, tag string) {
	s.mu.Lock()

	idx := s.indexLocked(candidateID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	c := &s.candidates[idx]
	kept := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	c.Tags = kept
	c.UpdatedAt = s.now()

	s.persistLocked()
	s.mu.Unlock()

	s.publish(ctx, EventCandidateUpdated, candidateID)
}

// AllTags returns the deduplicated union of tags across all candidates,
// sorted ascending.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectSorted(s.candidates, func(c *model.Candidate) []string { return c.Tags })
}

// AllSkills returns the deduplicated union of skills across all
// candidates, sorted ascending.
func (s *Store) AllSkills() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectSorted(s.candidates, func(c *model.Candidate) []string { return c.Skills })
}

func collectSorted(candidates []model.Candidate, field func(*model.Candidate) []string) []string {
	set := make(map[string]bool)
	for i := range candidates {
		for _, v := range field(&candidates[i]) {
			set[v] = true
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// indexLocked finds a candidate by id. Callers must hold the lock.
func (s *Store) indexLocked(id string) int {
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			return i
		}
	}
	return -1
}
