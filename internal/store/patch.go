package store

import (
	"time"

	"github.com/alegonzalezz/ATS/internal/model"
)

// CandidatePatch is a typed partial update for a candidate. Nil fields
// are left untouched; slice fields replace the whole collection when
// non-nil.
type CandidatePatch struct {
	Name           *string                `json:"name,omitempty"`
	LastName       *string                `json:"last_name,omitempty"`
	Email          *string                `json:"email,omitempty"`
	Phone          *string                `json:"phone,omitempty"`
	Location       *string                `json:"location,omitempty"`
	LinkedIn       *string                `json:"linkedin,omitempty"`
	CurrentRole    *string                `json:"currentRole,omitempty"`
	CurrentCompany *string                `json:"currentCompany,omitempty"`
	Summary        *string                `json:"summary,omitempty"`
	Status         *model.CandidateStatus `json:"status,omitempty"`
	Source         *model.CandidateSource `json:"source,omitempty"`
	OpenToWork     *bool                  `json:"openToWork,omitempty"`

	Skills     []string           `json:"skills,omitempty"`
	Tags       []string           `json:"tags,omitempty"`
	Experience []model.Experience `json:"experience,omitempty"`
	Education  []model.Education  `json:"education,omitempty"`
	Languages  []model.Language   `json:"languages,omitempty"`

	CVFileName *string `json:"cvFileName,omitempty"`
	CVContent  *string `json:"cvContent,omitempty"`

	LastLinkedInSync *time.Time `json:"lastLinkedInSync,omitempty"`
	PendingSync      *bool      `json:"pendingSync,omitempty"`
}

// apply merges the patch into the candidate. Change detection runs before
// this, against the pre-merge state.
func (p *CandidatePatch) apply(c *model.Candidate) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = p.Phone
	}
	if p.Location != nil {
		c.Location = p.Location
	}
	if p.LinkedIn != nil {
		c.LinkedIn = p.LinkedIn
	}
	if p.CurrentRole != nil {
		c.CurrentRole = p.CurrentRole
	}
	if p.CurrentCompany != nil {
		c.CurrentCompany = p.CurrentCompany
	}
	if p.Summary != nil {
		c.Summary = p.Summary
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Source != nil {
		c.Source = *p.Source
	}
	if p.OpenToWork != nil {
		c.OpenToWork = *p.OpenToWork
	}
	if p.Skills != nil {
		c.Skills = p.Skills
	}
	if p.Tags != nil {
		c.Tags = p.Tags
	}
	if p.Experience != nil {
		c.Experience = p.Experience
	}
	if p.Education != nil {
		c.Education = p.Education
	}
	if p.Languages != nil {
		c.Languages = p.Languages
	}
	if p.CVFileName != nil {
		c.CVFileName = p.CVFileName
	}
	if p.CVContent != nil {
		c.CVContent = p.CVContent
	}
	if p.LastLinkedInSync != nil {
		c.LastLinkedInSync = p.LastLinkedInSync
	}
	if p.PendingSync != nil {
		c.PendingSync = *p.PendingSync
	}
}
