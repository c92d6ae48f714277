package store

import (
	"sort"

	"github.com/alegonzalezz/ATS/internal/model"
)

const topSkillsLimit = 10

// Stats derives dashboard aggregates from current state. Nothing is
// cached; callers get a fresh computation every time. "Recent" windows
// use a strictly-after comparison against now minus 7/30 days.
func (s *Store) Stats() model.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	stats := model.DashboardStats{
		TotalCandidates: len(s.candidates),
		ByStatus:        make(map[model.CandidateStatus]int, len(model.AllStatuses)),
		BySource:        make(map[model.CandidateSource]int, len(model.AllSources)),
		TopSkills:       []model.SkillCount{},
	}
	for _, st := range model.AllStatuses {
		stats.ByStatus[st] = 0
	}
	for _, src := range model.AllSources {
		stats.BySource[src] = 0
	}

	skillCounts := make(map[string]int)
	var skillOrder []string // first-seen order breaks count ties

	for i := range s.candidates {
		c := &s.candidates[i]

		stats.ByStatus[c.Status]++
		stats.BySource[c.Source]++

		if c.OpenToWork {
			stats.OpenToWorkCount++
		}
		if c.CreatedAt.After(weekAgo) {
			stats.NewThisWeek++
		}
		if c.CreatedAt.After(monthAgo) {
			stats.NewThisMonth++
		}

		for _, skill := range c.Skills {
			if _, seen := skillCounts[skill]; !seen {
				skillOrder = append(skillOrder, skill)
			}
			skillCounts[skill]++
		}

		for _, change := range c.ChangeHistory {
			if change.Date.After(weekAgo) {
				stats.RecentChanges++
			}
		}
	}

	top := make([]model.SkillCount, len(skillOrder))
	for i, name := range skillOrder {
		top[i] = model.SkillCount{Name: name, Count: skillCounts[name]}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > topSkillsLimit {
		top = top[:topSkillsLimit]
	}
	stats.TopSkills = top

	return stats
}
