package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockNotesUpdater struct {
	rows  int64
	err   error
	id    uint
	notes string
	calls int
}

func (m *mockNotesUpdater) UpdateNotes(_ context.Context, id uint, notes string) (int64, error) {
	m.calls++
	m.id = id
	m.notes = notes
	return m.rows, m.err
}

type mockStrategyUpdater struct {
	rows           int64
	err            error
	id             uint
	strategy       string
	customStrategy string
}

func (m *mockStrategyUpdater) UpdateStrategy(_ context.Context, id uint, strategy, customStrategy string) (int64, error) {
	m.id = id
	m.strategy = strategy
	m.customStrategy = customStrategy
	return m.rows, m.err
}

func notesRouter(repo notesUpdater) http.Handler {
	r := chi.NewRouter()
	r.Put("/api/update-trade-notes/{id}", UpdateTradeNotesHandler(repo))
	return r
}

func TestUpdateTradeNotesHandler_InvalidID(t *testing.T) {
	repo := &mockNotesUpdater{}
	req := httptest.NewRequest(http.MethodPut, "/api/update-trade-notes/abc", strings.NewReader(`{"notes":"x"}`))
	rr := httptest.NewRecorder()

	notesRouter(repo).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, repo.calls)
}

func TestUpdateTradeNotesHandler_NotFound(t *testing.T) {
	repo := &mockNotesUpdater{rows: 0}
	req := httptest.NewRequest(http.MethodPut, "/api/update-trade-notes/99", strings.NewReader(`{"notes":"x"}`))
	rr := httptest.NewRecorder()

	notesRouter(repo).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Trade not found")
}

func TestUpdateTradeNotesHandler_RepoError(t *testing.T) {
	repo := &mockNotesUpdater{err: assert.AnError}
	req := httptest.NewRequest(http.MethodPut, "/api/update-trade-notes/1", strings.NewReader(`{"notes":"x"}`))
	rr := httptest.NewRecorder()

	notesRouter(repo).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestUpdateTradeNotesHandler_Success(t *testing.T) {
	repo := &mockNotesUpdater{rows: 1}
	req := httptest.NewRequest(http.MethodPut, "/api/update-trade-notes/7", strings.NewReader(`{"notes":"held through the news spike"}`))
	rr := httptest.NewRecorder()

	notesRouter(repo).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, uint(7), repo.id)
	assert.Equal(t, "held through the news spike", repo.notes)
	assert.Contains(t, rr.Body.String(), "Trade notes updated successfully")
}

func TestUpdateTradeStrategyHandler_Success(t *testing.T) {
	repo := &mockStrategyUpdater{rows: 1}
	r := chi.NewRouter()
	r.Put("/api/update-trade-strategy/{id}", UpdateTradeStrategyHandler(repo))

	req := httptest.NewRequest(http.MethodPut, "/api/update-trade-strategy/3",
		strings.NewReader(`{"strategy":"breakout","customStrategy":"london open"}`))
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, uint(3), repo.id)
	assert.Equal(t, "breakout", repo.strategy)
	assert.Equal(t, "london open", repo.customStrategy)
}

func TestUpdateTradeStrategyHandler_NotFound(t *testing.T) {
	repo := &mockStrategyUpdater{rows: 0}
	r := chi.NewRouter()
	r.Put("/api/update-trade-strategy/{id}", UpdateTradeStrategyHandler(repo))

	req := httptest.NewRequest(http.MethodPut, "/api/update-trade-strategy/3", strings.NewReader(`{"strategy":"x"}`))
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
