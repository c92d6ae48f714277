package store

import (
	"strings"
	"time"

	"github.com/alegonzalezz/ATS/internal/model"
)

// Search returns the candidates matching every active filter, preserving
// collection order. Empty filters match everything.
func (s *Store) Search(filters model.SearchFilters) []model.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := []model.Candidate{}
	for i := range s.candidates {
		if matches(&s.candidates[i], &filters, now) {
			out = append(out, s.candidates[i])
		}
	}
	return out
}

func matches(c *model.Candidate, f *model.SearchFilters, now time.Time) bool {
	if f.Query != "" && !matchesQuery(c, f.Query) {
		return false
	}

	if len(f.Status) > 0 && !containsStatus(f.Status, c.Status) {
		return false
	}

	// skills: candidate must have all, compared case-insensitively
	for _, want := range f.Skills {
		if !hasSkill(c.Skills, want) {
			return false
		}
	}

	if f.Location != "" {
		if c.Location == nil ||
			!strings.Contains(strings.ToLower(*c.Location), strings.ToLower(f.Location)) {
			return false
		}
	}

	if !f.Experience.Contains(c.TotalExperienceYears(now)) {
		return false
	}

	if f.OpenToWork != nil && c.OpenToWork != *f.OpenToWork {
		return false
	}

	// tags: candidate must carry all, exact match
	for _, want := range f.Tags {
		if !c.HasTag(want) {
			return false
		}
	}

	if len(f.Source) > 0 && !containsSource(f.Source, c.Source) {
		return false
	}

	return true
}

func matchesQuery(c *model.Candidate, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.FullName()), q) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Email), q) {
		return true
	}
	if c.CurrentRole != nil && strings.Contains(strings.ToLower(*c.CurrentRole), q) {
		return true
	}
	if c.CurrentCompany != nil && strings.Contains(strings.ToLower(*c.CurrentCompany), q) {
		return true
	}
	for _, skill := range c.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}

func hasSkill(skills []string, want string) bool {
	for _, s := range skills {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}

func containsStatus(list []model.CandidateStatus, status model.CandidateStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

func containsSource(list []model.CandidateSource, source model.CandidateSource) bool {
	for _, s := range list {
		if s == source {
			return true
		}
	}
	return false
}
