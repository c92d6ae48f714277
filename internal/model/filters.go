package model

// ExperienceBucket groups candidates by total years of experience.
type ExperienceBucket string

const (
	ExperienceAny       ExperienceBucket = "any"
	ExperienceJunior    ExperienceBucket = "0-2"
	ExperienceMid       ExperienceBucket = "2-5"
	ExperienceSenior    ExperienceBucket = "5-10"
	ExperiencePrincipal ExperienceBucket = "10+"
)

// Contains reports whether the given years fall inside the bucket.
func (b ExperienceBucket) Contains(years int) bool {
	switch b {
	case ExperienceAny, "":
		return true
	case ExperienceJunior:
		return years >= 0 && years <= 2
	case ExperienceMid:
		return years >= 2 && years <= 5
	case ExperienceSenior:
		return years >= 5 && years <= 10
	case ExperiencePrincipal:
		return years >= 10
	default:
		return true
	}
}

// SearchFilters is a transient query object over the candidate collection.
// Multi-select skill and tag filters use AND semantics: a candidate must
// carry every requested value. OpenToWork is tri-state; nil means don't care.
type SearchFilters struct {
	Query      string            `json:"query"`
	Status     []CandidateStatus `json:"status"`
	Skills     []string          `json:"skills"`
	Location   string            `json:"location"`
	Experience ExperienceBucket  `json:"experience"`
	OpenToWork *bool             `json:"openToWork"`
	Tags       []string          `json:"tags"`
	Source     []CandidateSource `json:"source"`
}
