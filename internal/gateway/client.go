// Package gateway is the REST client for the remote applicant service,
// the upstream source of truth for candidate records.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alegonzalezz/ATS/internal/logger"
)

// Client talks to the applicants resource of the remote gateway.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// List returns all applicants. Soft-deleted records are included only
// when includeInactive is set.
func (c *Client) List(ctx context.Context, includeInactive bool) ([]Applicant, error) {
	path := fmt.Sprintf("/api/applicants?include_inactive=%t", includeInactive)

	var applicants []Applicant
	if err := c.do(ctx, http.MethodGet, path, nil, &applicants); err != nil {
		return nil, err
	}
	return applicants, nil
}

// Search queries applicants by name, email or phone.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Applicant, error) {
	q := url.Values{}
	if params.Name != "" {
		q.Set("name", params.Name)
	}
	if params.Email != "" {
		q.Set("email", params.Email)
	}
	if params.Phone != "" {
		q.Set("phone", params.Phone)
	}

	path := "/api/applicants/search"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var applicants []Applicant
	if err := c.do(ctx, http.MethodGet, path, nil, &applicants); err != nil {
		return nil, err
	}
	return applicants, nil
}

// GetByID returns a single applicant.
func (c *Client) GetByID(ctx context.Context, id string) (*Applicant, error) {
	var applicant Applicant
	if err := c.do(ctx, http.MethodGet, "/api/applicants/"+url.PathEscape(id), nil, &applicant); err != nil {
		return nil, err
	}
	return &applicant, nil
}

// Create creates a new applicant and returns the stored record.
func (c *Client) Create(ctx context.Context, req CreateApplicantRequest) (*Applicant, error) {
	var applicant Applicant
	if err := c.do(ctx, http.MethodPost, "/api/applicants", req, &applicant); err != nil {
		return nil, err
	}

	c.log.Info().
		Str("id", applicant.ID).
		Str("email", applicant.Email).
		Msg("created applicant")

	return &applicant, nil
}

// Update updates an applicant and returns the stored record.
func (c *Client) Update(ctx context.Context, id string, req UpdateApplicantRequest) (*Applicant, error) {
	var applicant Applicant
	if err := c.do(ctx, http.MethodPut, "/api/applicants/"+url.PathEscape(id), req, &applicant); err != nil {
		return nil, err
	}
	return &applicant, nil
}

// Delete removes an applicant permanently.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/applicants/"+url.PathEscape(id), nil, nil)
}

// Deactivate soft-deletes an applicant.
func (c *Client) Deactivate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/applicants/"+url.PathEscape(id)+"/deactivate", struct{}{}, nil)
}

// Reactivate restores a soft-deleted applicant.
func (c *Client) Reactivate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/applicants/"+url.PathEscape(id)+"/reactivate", struct{}{}, nil)
}

// do performs one request and unwraps the response envelope into out.
// Any non-2xx status or non-JSON body is an error; callers fall back to
// local state on it.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s %s: decode response (status %d): %w", method, path, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if env.Data == nil {
		return fmt.Errorf("%s %s: empty data in response", method, path)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode data: %w", method, path, err)
	}
	return nil
}
