package model

// SkillCount is one entry of the top-skills ranking.
type SkillCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardStats is a fully derived aggregate over the candidate
// collection. It is recomputed on demand and never stored.
type DashboardStats struct {
	TotalCandidates int                         `json:"totalCandidates"`
	NewThisWeek     int                         `json:"newThisWeek"`
	NewThisMonth    int                         `json:"newThisMonth"`
	OpenToWorkCount int                         `json:"openToWorkCount"`
	ByStatus        map[CandidateStatus]int     `json:"byStatus"`
	BySource        map[CandidateSource]int     `json:"bySource"`
	TopSkills       []SkillCount                `json:"topSkills"`
	RecentChanges   int                         `json:"recentChanges"`
}

// SyncFrequency is how often the scheduled LinkedIn sync runs.
type SyncFrequency string

const (
	SyncWeekly  SyncFrequency = "weekly"
	SyncMonthly SyncFrequency = "monthly"
)

// Days returns the sync interval in days.
func (f SyncFrequency) Days() int {
	if f == SyncMonthly {
		return 30
	}
	return 7
}

// LinkedInSyncConfig holds the scheduled-sync settings persisted
// alongside the candidate snapshot.
type LinkedInSyncConfig struct {
	Enabled   bool          `json:"enabled"`
	Frequency SyncFrequency `json:"frequency"`
	LastSync  *string       `json:"lastSync"`
	NextSync  *string       `json:"nextSync"`
}
