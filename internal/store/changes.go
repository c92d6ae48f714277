package store

import (
	"fmt"
	"strconv"

	"github.com/alegonzalezz/ATS/internal/model"
)

// changeRule inspects a pending patch against the current candidate state
// and fires at most one change record. The store stamps ID and Date.
type changeRule func(old *model.Candidate, p *CandidatePatch) *model.ChangeRecord

// changeRules are evaluated in order on every update. Role and company
// rules keep the historical truthiness gate: clearing a field to empty
// does not fire a record.
var changeRules = []changeRule{
	detectRoleChange,
	detectCompanyChange,
	detectOpenToWorkChange,
}

func detectRoleChange(old *model.Candidate, p *CandidatePatch) *model.ChangeRecord {
	if p.CurrentRole == nil || *p.CurrentRole == "" {
		return nil
	}
	if old.CurrentRole != nil && *old.CurrentRole == *p.CurrentRole {
		return nil
	}
	return &model.ChangeRecord{
		Type:        model.ChangeJobChange,
		Description: fmt.Sprintf("Cambio de puesto: %s → %s", orNA(old.CurrentRole), *p.CurrentRole),
		OldValue:    old.CurrentRole,
		NewValue:    p.CurrentRole,
	}
}

func detectCompanyChange(old *model.Candidate, p *CandidatePatch) *model.ChangeRecord {
	if p.CurrentCompany == nil || *p.CurrentCompany == "" {
		return nil
	}
	if old.CurrentCompany != nil && *old.CurrentCompany == *p.CurrentCompany {
		return nil
	}
	return &model.ChangeRecord{
		Type:        model.ChangeJobChange,
		Description: fmt.Sprintf("Cambio de empresa: %s → %s", orNA(old.CurrentCompany), *p.CurrentCompany),
		OldValue:    old.CurrentCompany,
		NewValue:    p.CurrentCompany,
	}
}

func detectOpenToWorkChange(old *model.Candidate, p *CandidatePatch) *model.ChangeRecord {
	if p.OpenToWork == nil || *p.OpenToWork == old.OpenToWork {
		return nil
	}
	desc := "Ya no está buscando activamente"
	if *p.OpenToWork {
		desc = "Ahora está abierto a nuevas oportunidades"
	}
	oldVal := strconv.FormatBool(old.OpenToWork)
	newVal := strconv.FormatBool(*p.OpenToWork)
	return &model.ChangeRecord{
		Type:        model.ChangeOpenToWork,
		Description: desc,
		OldValue:    &oldVal,
		NewValue:    &newVal,
	}
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
