package model

import (
	"strings"
	"time"
)

// CandidateStatus represents a candidate's position in the hiring pipeline.
type CandidateStatus string

// Pipeline stages, in order.
const (
	StatusNuevo      CandidateStatus = "nuevo"
	StatusEnRevision CandidateStatus = "en_revision"
	StatusEntrevista CandidateStatus = "entrevista"
	StatusOferta     CandidateStatus = "oferta"
	StatusContratado CandidateStatus = "contratado"
	StatusRechazado  CandidateStatus = "rechazado"
	StatusArchivado  CandidateStatus = "archivado"
)

// AllStatuses lists every pipeline stage, in pipeline order.
var AllStatuses = []CandidateStatus{
	StatusNuevo,
	StatusEnRevision,
	StatusEntrevista,
	StatusOferta,
	StatusContratado,
	StatusRechazado,
	StatusArchivado,
}

var validStatuses = map[CandidateStatus]bool{
	StatusNuevo:      true,
	StatusEnRevision: true,
	StatusEntrevista: true,
	StatusOferta:     true,
	StatusContratado: true,
	StatusRechazado:  true,
	StatusArchivado:  true,
}

// IsValid checks if the status is a known pipeline stage.
func (s CandidateStatus) IsValid() bool {
	return validStatuses[s]
}

// CandidateSource indicates how a candidate entered the system.
type CandidateSource string

const (
	SourceCV       CandidateSource = "cv"
	SourceLinkedIn CandidateSource = "linkedin"
	SourceManual   CandidateSource = "manual"
)

// AllSources lists every candidate source.
var AllSources = []CandidateSource{SourceCV, SourceLinkedIn, SourceManual}

// IsValid checks if the source is known.
func (s CandidateSource) IsValid() bool {
	return s == SourceCV || s == SourceLinkedIn || s == SourceManual
}

// LanguageLevel is a proficiency level for a spoken language.
type LanguageLevel string

const (
	LevelBasico     LanguageLevel = "Básico"
	LevelIntermedio LanguageLevel = "Intermedio"
	LevelAvanzado   LanguageLevel = "Avanzado"
	LevelNativo     LanguageLevel = "Nativo"
)

// Language is a spoken language with proficiency.
type Language struct {
	Name  string        `json:"name"`
	Level LanguageLevel `json:"level"`
}

// Experience is a single work history entry.
type Experience struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    *string `json:"location,omitempty"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	Current     bool    `json:"current"`
	Description *string `json:"description,omitempty"`
}

// Education is a single education history entry.
type Education struct {
	ID          string  `json:"id"`
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	Field       *string `json:"field,omitempty"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
}

// ChangeType categorizes entries in a candidate's change history.
type ChangeType string

const (
	ChangeJobChange     ChangeType = "job_change"
	ChangeStatusUpdate  ChangeType = "status_update"
	ChangeProfileUpdate ChangeType = "profile_update"
	ChangeOpenToWork    ChangeType = "open_to_work"
	ChangeOther         ChangeType = "other"
)

// ChangeRecord is a single append-only audit entry for a candidate.
type ChangeRecord struct {
	ID          string     `json:"id"`
	Date        time.Time  `json:"date"`
	Type        ChangeType `json:"type"`
	Description string     `json:"description"`
	OldValue    *string    `json:"oldValue,omitempty"`
	NewValue    *string    `json:"newValue,omitempty"`
}

// Note is a free-form recruiter note attached to a candidate.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// Candidate is the central entity: a person tracked through the pipeline.
// ChangeHistory and Notes are newest-first and only ever grow.
type Candidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Location    *string `json:"location,omitempty"`
	LinkedIn    *string `json:"linkedin,omitempty"`

	CurrentRole    *string `json:"currentRole,omitempty"`
	CurrentCompany *string `json:"currentCompany,omitempty"`
	Summary        *string `json:"summary,omitempty"`

	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
	Languages  []Language   `json:"languages"`
	Tags       []string     `json:"tags"`

	Status CandidateStatus `json:"status"`
	Source CandidateSource `json:"source"`

	CVFileName *string `json:"cvFileName,omitempty"`
	CVContent  *string `json:"cvContent,omitempty"`

	OpenToWork bool `json:"openToWork"`

	// PendingSync marks candidates created locally while the remote
	// gateway was unreachable. They stay pending until a retry succeeds.
	PendingSync bool `json:"pendingSync,omitempty"`

	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	LastLinkedInSync *time.Time `json:"lastLinkedInSync,omitempty"`

	ChangeHistory []ChangeRecord `json:"changeHistory"`
	Notes         []Note         `json:"notes"`
}

// FullName derives the display name from the name parts.
func (c *Candidate) FullName() string {
	return strings.TrimSpace(c.Name + " " + c.LastName)
}

// HasTag reports whether the candidate already carries the tag.
func (c *Candidate) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TotalExperienceYears sums the candidate's work history into whole years.
// Open-ended and current positions count up to now.
func (c *Candidate) TotalExperienceYears(now time.Time) int {
	totalMonths := 0
	for _, exp := range c.Experience {
		start, err := time.Parse(time.RFC3339, exp.StartDate)
		if err != nil {
			// date-only entries are common in imported CVs
			start, err = time.Parse("2006-01-02", exp.StartDate)
			if err != nil {
				continue
			}
		}
		end := now
		if !exp.Current && exp.EndDate != nil {
			if parsed, err := time.Parse(time.RFC3339, *exp.EndDate); err == nil {
				end = parsed
			} else if parsed, err := time.Parse("2006-01-02", *exp.EndDate); err == nil {
				end = parsed
			}
		}
		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if months > 0 {
			totalMonths += months
		}
	}
	return totalMonths / 12
}
