package gateway

import (
	"strings"
	"time"

	"github.com/alegonzalezz/ATS/internal/model"
)

// MapEnglishLevel normalizes the gateway's free-form english field into a
// language level, defaulting to Básico for anything unrecognized.
func MapEnglishLevel(level string) model.LanguageLevel {
	switch strings.ToLower(level) {
	case "basic":
		return model.LevelBasico
	case "intermediate":
		return model.LevelIntermedio
	case "advanced":
		return model.LevelAvanzado
	case "native":
		return model.LevelNativo
	default:
		return model.LevelBasico
	}
}

// ToCandidate translates the remote applicant shape into the internal
// candidate shape. Fields the gateway does not track start empty; a
// deactivated applicant arrives archived and not open to work.
func (a *Applicant) ToCandidate(now time.Time) model.Candidate {
	c := model.Candidate{
		ID:            a.ID,
		Name:          a.Name,
		LastName:      a.LastName,
		Email:         a.Email,
		Status:        model.StatusNuevo,
		Source:        model.SourceManual,
		OpenToWork:    a.DeactiveAt == nil,
		Experience:    []model.Experience{},
		Education:     []model.Education{},
		Skills:        []string{},
		Languages:     []model.Language{},
		Tags:          []string{},
		ChangeHistory: []model.ChangeRecord{},
		Notes:         []model.Note{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if a.Phone != "" {
		phone := a.Phone
		c.Phone = &phone
	}
	if a.City != "" {
		city := a.City
		c.Location = &city
	}
	if a.LinkedIn != "" {
		linkedin := a.LinkedIn
		c.LinkedIn = &linkedin
	}
	if a.English != "" {
		c.Languages = []model.Language{{Name: "Inglés", Level: MapEnglishLevel(a.English)}}
	}
	if a.DeactiveAt != nil {
		c.Status = model.StatusArchivado
	}
	if a.CreatedAt != nil {
		c.CreatedAt = *a.CreatedAt
	}
	if a.UpdatedAt != nil {
		c.UpdatedAt = *a.UpdatedAt
	}

	return c
}
