package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/alegonzalezz/ATS/internal/model"
	"github.com/alegonzalezz/ATS/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		_ = err // client disconnected
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

func (s *Server) broadcast(v interface{}) {
	if s.deps.Hub != nil {
		s.deps.Hub.Broadcast(v)
	}
}

// ============================================================================
// Health
// ============================================================================

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: "dev"})
}

// ============================================================================
// Candidates
// ============================================================================

func (s *Server) listCandidates(w http.ResponseWriter, r *http.Request) {
	filters := parseFilters(r)
	candidates := s.deps.Store.Search(filters)

	respondJSON(w, http.StatusOK, CandidatesListResponse{
		Candidates: candidates,
		Total:      len(candidates),
	})
}

func parseFilters(r *http.Request) model.SearchFilters {
	q := r.URL.Query()

	filters := model.SearchFilters{
		Query:      q.Get("q"),
		Location:   q.Get("location"),
		Experience: model.ExperienceBucket(q.Get("experience")),
		Skills:     splitParam(q.Get("skills")),
		Tags:       splitParam(q.Get("tags")),
	}

	for _, st := range splitParam(q.Get("status")) {
		filters.Status = append(filters.Status, model.CandidateStatus(st))
	}
	for _, src := range splitParam(q.Get("source")) {
		filters.Source = append(filters.Source, model.CandidateSource(src))
	}

	if raw := q.Get("openToWork"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filters.OpenToWork = &v
		}
	}

	return filters
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s *Server) createCandidate(w http.ResponseWriter, r *http.Request) {
	var body CandidateCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if body.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if body.Status != "" && !body.Status.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if body.Source != "" && !body.Source.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid source")
		return
	}

	cand := s.deps.Store.Add(r.Context(), store.AddParams{
		Name:           body.Name,
		LastName:       body.LastName,
		Email:          body.Email,
		Phone:          body.Phone,
		Location:       body.Location,
		LinkedIn:       body.LinkedIn,
		EnglishLevel:   body.EnglishLevel,
		CurrentRole:    body.CurrentRole,
		CurrentCompany: body.CurrentCompany,
		Summary:        body.Summary,
		Skills:         body.Skills,
		Tags:           body.Tags,
		Status:         body.Status,
		Source:         body.Source,
		OpenToWork:     body.OpenToWork,
	})

	s.broadcast(CandidateEvent(EventCandidateCreated, cand.ID))
	respondJSON(w, http.StatusCreated, cand)
}

func (s *Server) getCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cand, ok := s.deps.Store.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "candidate not found")
		return
	}
	respondJSON(w, http.StatusOK, cand)
}

func (s *Server) updateCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch store.CandidatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if patch.Source != nil && !patch.Source.IsValid() {
		respondError(w, http.StatusBadRequest, "invalid source")
		return
	}

	updated := s.deps.Store.Update(r.Context(), id, patch)
	if updated == nil {
		respondError(w, http.StatusNotFound, "candidate not found")
		return
	}

	s.broadcast(CandidateEvent(EventCandidateUpdated, id))
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, existed := s.deps.Store.Get(id)
	s.deps.Store.Delete(r.Context(), id)

	if existed {
		s.broadcast(CandidateEvent(EventCandidateDeleted, id))
	}
	// deleting an unknown id is a no-op, not an error
	respondJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// ============================================================================
// Notes and tags
// ============================================================================

func (s *Server) addNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body NoteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	note := s.deps.Store.AddNote(r.Context(), id, body.Content, body.CreatedBy)
	if note == nil {
		respondError(w, http.StatusNotFound, "candidate not found")
		return
	}

	s.broadcast(CandidateEvent(EventCandidateUpdated, id))
	respondJSON(w, http.StatusCreated, note)
}

func (s *Server) addTag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body TagRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Tag == "" {
		respondError(w, http.StatusBadRequest, "tag is required")
		return
	}

	if _, ok := s.deps.Store.Get(id); !ok {
		respondError(w, http.StatusNotFound, "candidate not found")
		return
	}

	s.deps.Store.AddTag(r.Context(), id, body.Tag)
	s.broadcast(CandidateEvent(EventCandidateUpdated, id))
	respondJSON(w, http.StatusOK, StatusResponse{Status: "tagged"})
}

func (s *Server) removeTag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tag := chi.URLParam(r, "tag")

	if _, ok := s.deps.Store.Get(id); !ok {
		respondError(w, http.StatusNotFound, "candidate not found")
		return
	}

	s.deps.Store.RemoveTag(r.Context(), id, tag)
	s.broadcast(CandidateEvent(EventCandidateUpdated, id))
	respondJSON(w, http.StatusOK, StatusResponse{Status: "untagged"})
}

// ============================================================================
// CV import
// ============================================================================

func (s *Server) importCV(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	cand, err := s.deps.Store.ImportFromCV(r.Context(), header.Filename, file, func(percent int) {
		s.broadcast(WSEvent{
			Type:    EventImportProgress,
			Payload: ImportProgressPayload{Filename: header.Filename, Percent: percent},
		})
	})
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.broadcast(CandidateEvent(EventCandidateCreated, cand.ID))
	respondJSON(w, http.StatusCreated, cand)
}

// ============================================================================
// Sync
// ============================================================================

func (s *Server) syncCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cand := s.deps.Store.SyncLinkedIn(r.Context(), id)
	if cand == nil {
		respondError(w, http.StatusNotFound, "candidate not found")
		return
	}

	s.broadcast(CandidateEvent(EventCandidateUpdated, id))
	respondJSON(w, http.StatusOK, cand)
}

func (s *Server) startBulkSync(w http.ResponseWriter, _ *http.Request) {
	if err := s.deps.Manager.Start(); err != nil {
		if errors.Is(err, store.ErrSyncRunning) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusAccepted, StatusResponse{
		Status:  "started",
		Message: "Bulk LinkedIn sync started",
	})
}

func (s *Server) stopBulkSync(w http.ResponseWriter, _ *http.Request) {
	s.deps.Manager.Stop()
	respondJSON(w, http.StatusOK, StatusResponse{Status: "stopped"})
}

func (s *Server) syncStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"progress": s.deps.Manager.Progress(),
		"schedule": s.deps.Scheduler.Status(),
	})
}

func (s *Server) flushPending(w http.ResponseWriter, r *http.Request) {
	synced, err := s.deps.Store.FlushPending(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, FlushResponse{
		Synced:  synced,
		Pending: len(s.deps.Store.PendingSync()),
	})
}

func (s *Server) getSyncConfig(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.deps.Scheduler.Config())
}

func (s *Server) updateSyncConfig(w http.ResponseWriter, r *http.Request) {
	var body SyncConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg, err := s.deps.Scheduler.Update(body.Enabled, body.Frequency)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

// ============================================================================
// Aggregates and vocabularies
// ============================================================================

func (s *Server) getStats(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.deps.Store.Stats())
}

func (s *Server) listSkills(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, SkillsResponse{Skills: s.deps.Store.AllSkills()})
}

func (s *Server) listTags(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, TagsResponse{Tags: s.deps.Store.AllTags()})
}
