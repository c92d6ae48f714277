package gateway

import (
	"encoding/json"
	"time"
)

// Applicant is the remote wire shape for a person. It is deliberately
// flatter than the internal candidate: the backend tracks contact data
// and an activation timestamp, nothing else.
type Applicant struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	LinkedIn   string     `json:"linkedin,omitempty"`
	City       string     `json:"city,omitempty"`
	English    string     `json:"english,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	DeactiveAt *time.Time `json:"deactive_at,omitempty"`
}

// CreateApplicantRequest is the payload for creating an applicant.
type CreateApplicantRequest struct {
	Name     string `json:"name"`
	LastName string `json:"last_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	City     string `json:"city,omitempty"`
	English  string `json:"english,omitempty"`
}

// UpdateApplicantRequest is the payload for updating an applicant.
// Nil fields are left untouched by the backend.
type UpdateApplicantRequest struct {
	Name     *string `json:"name,omitempty"`
	LastName *string `json:"last_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	City     *string `json:"city,omitempty"`
	English  *string `json:"english,omitempty"`
}

// SearchParams are the field-specific query params of the search endpoint.
type SearchParams struct {
	Name  string
	Email string
	Phone string
}

// envelope is the response wrapper every gateway endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}
