package api

import (
	"github.com/alegonzalezz/ATS/internal/model"
)

// ============================================================================
// Requests
// ============================================================================

// CandidateCreateRequest is the POST /candidates body.
type CandidateCreateRequest struct {
	Name         string  `json:"name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone,omitempty"`
	Location     *string `json:"location,omitempty"`
	LinkedIn     *string `json:"linkedin,omitempty"`
	EnglishLevel string  `json:"english_level,omitempty"`

	CurrentRole    *string `json:"currentRole,omitempty"`
	CurrentCompany *string `json:"currentCompany,omitempty"`
	Summary        *string `json:"summary,omitempty"`

	Skills []string `json:"skills,omitempty"`
	Tags   []string `json:"tags,omitempty"`

	Status model.CandidateStatus `json:"status,omitempty"`
	Source model.CandidateSource `json:"source,omitempty"`

	OpenToWork bool `json:"openToWork,omitempty"`
}

// NoteCreateRequest is the POST /candidates/{id}/notes body.
type NoteCreateRequest struct {
	Content   string `json:"content"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// TagRequest is the POST /candidates/{id}/tags body.
type TagRequest struct {
	Tag string `json:"tag"`
}

// SyncConfigRequest is the PUT /sync/config body.
type SyncConfigRequest struct {
	Enabled   bool                `json:"enabled"`
	Frequency model.SyncFrequency `json:"frequency"`
}

// ============================================================================
// Responses
// ============================================================================

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse carries a single error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse acknowledges a state-changing call.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CandidatesListResponse wraps a candidate listing.
type CandidatesListResponse struct {
	Candidates []model.Candidate `json:"candidates"`
	Total      int               `json:"total"`
}

// SkillsResponse is the distinct-skills vocabulary.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// TagsResponse is the distinct-tags vocabulary.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// FlushResponse reports a pending-sync flush.
type FlushResponse struct {
	Synced  int `json:"synced"`
	Pending int `json:"pending"`
}
