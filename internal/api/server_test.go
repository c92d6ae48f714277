package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alegonzalezz/ATS/internal/batch"
	"github.com/alegonzalezz/ATS/internal/gateway"
	"github.com/alegonzalezz/ATS/internal/linkedin"
	"github.com/alegonzalezz/ATS/internal/logger"
	"github.com/alegonzalezz/ATS/internal/model"
	"github.com/alegonzalezz/ATS/internal/snapshot"
	"github.com/alegonzalezz/ATS/internal/store"
)

// fakeGateway fails every call so candidates stay fully local.
type fakeGateway struct {
	mu        sync.Mutex
	createErr error
	nextID    int
}

func (g *fakeGateway) List(context.Context, bool) ([]gateway.Applicant, error) {
	return nil, errors.New("gateway offline")
}

func (g *fakeGateway) Create(_ context.Context, req gateway.CreateApplicantRequest) (*gateway.Applicant, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	return &gateway.Applicant{
		ID:       fmt.Sprintf("srv-%d", g.nextID),
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
	}, nil
}

type testEnv struct {
	server *Server
	store  *store.Store
	gw     *fakeGateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gw := &fakeGateway{createErr: errors.New("gateway offline")}
	snap := snapshot.NewMemoryStore()
	log := logger.Nop()

	st := store.New(gw, snap, log).WithRunner(batch.NewRunner(10000, 100))
	require.NoError(t, st.Load(context.Background()))

	srv := NewServer(&Config{Port: 0}, &Dependencies{
		Store:     st,
		Manager:   store.NewBulkSyncManager(st),
		Scheduler: linkedin.NewScheduler(snap, log),
		Log:       log,
	})

	return &testEnv{server: srv, store: st, gw: gw}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	health := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
}

func TestCreateAndGetCandidate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/candidates", CandidateCreateRequest{
		Name:     "Ana",
		LastName: "Gomez",
		Email:    "ana@x.com",
		Skills:   []string{"Go"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[model.Candidate](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.PendingSync, "gateway is offline in this env")

	rec = env.do(t, http.MethodGet, "/api/v1/candidates/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[model.Candidate](t, rec)
	assert.Equal(t, "Ana", got.Name)
}

func TestCreateCandidate_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/candidates", CandidateCreateRequest{Email: "x@y.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/candidates", CandidateCreateRequest{
		Name:   "Ana",
		Status: "flying",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCandidate_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/candidates/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCandidates_WithFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.store.Add(ctx, store.AddParams{Name: "Ana", Skills: []string{"Go", "SQL"}, Status: model.StatusEntrevista})
	env.store.Add(ctx, store.AddParams{Name: "Luis", Skills: []string{"Figma"}})

	rec := env.do(t, http.MethodGet, "/api/v1/candidates?skills=go,sql&status=entrevista", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[CandidatesListResponse](t, rec)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Ana", list.Candidates[0].Name)
}

func TestUpdateCandidate(t *testing.T) {
	env := newTestEnv(t)

	cand := env.store.Add(context.Background(), store.AddParams{Name: "Ana"})

	rec := env.do(t, http.MethodPatch, "/api/v1/candidates/"+cand.ID, map[string]string{
		"currentRole": "Engineer",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decode[model.Candidate](t, rec)
	require.Len(t, updated.ChangeHistory, 1)
	assert.Equal(t, model.ChangeJobChange, updated.ChangeHistory[0].Type)
}

func TestUpdateCandidate_NotFoundAndInvalid(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPatch, "/api/v1/candidates/ghost", map[string]string{"name": "X"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	cand := env.store.Add(context.Background(), store.AddParams{Name: "Ana"})
	rec = env.do(t, http.MethodPatch, "/api/v1/candidates/"+cand.ID, map[string]string{"status": "flying"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCandidate_UnknownIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/api/v1/candidates/ghost", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotes(t *testing.T) {
	env := newTestEnv(t)

	cand := env.store.Add(context.Background(), store.AddParams{Name: "Ana"})

	rec := env.do(t, http.MethodPost, "/api/v1/candidates/"+cand.ID+"/notes", NoteCreateRequest{Content: "called"})
	require.Equal(t, http.StatusCreated, rec.Code)
	note := decode[model.Note](t, rec)
	assert.Equal(t, "Usuario", note.CreatedBy)

	rec = env.do(t, http.MethodPost, "/api/v1/candidates/"+cand.ID+"/notes", NoteCreateRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/candidates/ghost/notes", NoteCreateRequest{Content: "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cand := env.store.Add(ctx, store.AddParams{Name: "Ana"})

	rec := env.do(t, http.MethodPost, "/api/v1/candidates/"+cand.ID+"/tags", TagRequest{Tag: "senior"})
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ := env.store.Get(cand.ID)
	assert.Equal(t, []string{"senior"}, got.Tags)

	rec = env.do(t, http.MethodDelete, "/api/v1/candidates/"+cand.ID+"/tags/senior", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ = env.store.Get(cand.ID)
	assert.Empty(t, got.Tags)
}

func TestImportCV(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "ana.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Ana Gomez\nana@x.com\nSkills: Go, Docker"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	env.server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	cand := decode[model.Candidate](t, rec)
	assert.Equal(t, model.SourceCV, cand.Source)
	assert.Equal(t, "ana@x.com", cand.Email)
	assert.Contains(t, cand.Skills, "Go")
}

func TestImportCV_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates/import", strings.NewReader(""))
	rec := httptest.NewRecorder()
	env.server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncCandidate(t *testing.T) {
	env := newTestEnv(t)

	cand := env.store.Add(context.Background(), store.AddParams{Name: "Ana", LinkedIn: strPtr("ana-g")})

	rec := env.do(t, http.MethodPost, "/api/v1/candidates/"+cand.ID+"/sync", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	synced := decode[model.Candidate](t, rec)
	assert.NotNil(t, synced.LastLinkedInSync)

	rec = env.do(t, http.MethodPost, "/api/v1/candidates/ghost/sync", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkSyncLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/sync/bulk", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/sync/bulk", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/sync/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFlushPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.store.Add(ctx, store.AddParams{Name: "Ana"})

	// gateway recovers
	env.gw.mu.Lock()
	env.gw.createErr = nil
	env.gw.mu.Unlock()

	rec := env.do(t, http.MethodPost, "/api/v1/sync/flush", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	flush := decode[FlushResponse](t, rec)
	assert.Equal(t, 1, flush.Synced)
	assert.Zero(t, flush.Pending)
}

func TestSyncConfig(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/sync/config", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cfg := decode[model.LinkedInSyncConfig](t, rec)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, model.SyncWeekly, cfg.Frequency)

	rec = env.do(t, http.MethodPut, "/api/v1/sync/config", SyncConfigRequest{Enabled: true, Frequency: model.SyncMonthly})
	require.Equal(t, http.StatusOK, rec.Code)
	cfg = decode[model.LinkedInSyncConfig](t, rec)
	assert.True(t, cfg.Enabled)
	assert.NotNil(t, cfg.NextSync)

	rec = env.do(t, http.MethodPut, "/api/v1/sync/config", SyncConfigRequest{Enabled: true, Frequency: "daily"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsAndVocabularies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.store.Add(ctx, store.AddParams{Name: "Ana", Skills: []string{"Go"}, Tags: []string{"senior"}})

	rec := env.do(t, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[model.DashboardStats](t, rec)
	assert.Equal(t, 1, stats.TotalCandidates)

	rec = env.do(t, http.MethodGet, "/api/v1/skills", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	skills := decode[SkillsResponse](t, rec)
	assert.Equal(t, []string{"Go"}, skills.Skills)

	rec = env.do(t, http.MethodGet, "/api/v1/tags", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tags := decode[TagsResponse](t, rec)
	assert.Equal(t, []string{"senior"}, tags.Tags)
}

func strPtr(s string) *string { return &s }
