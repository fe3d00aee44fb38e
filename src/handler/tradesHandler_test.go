package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/src/model"
)

type mockTradeLister struct {
	trades []model.Trade
	err    error
}

func (m *mockTradeLister) FindAll(_ context.Context) ([]model.Trade, error) {
	return m.trades, m.err
}

type mockTradesByDateFinder struct {
	trades []model.Trade
	err    error
	date   string
}

func (m *mockTradesByDateFinder) FindClosedByDate(_ context.Context, date string) ([]model.Trade, error) {
	m.date = date
	return m.trades, m.err
}

func TestListTradesHandler_Success(t *testing.T) {
	repo := &mockTradeLister{trades: []model.Trade{
		{ID: 1, Market: "EURUSD", Total: 1200},
	}}
	handler := ListTradesHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got []model.Trade
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "EURUSD", got[0].Market)
}

func TestListTradesHandler_EmptyIsJSONArray(t *testing.T) {
	handler := ListTradesHandler(&mockTradeLister{})

	req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestTradesByDateHandler_PassesDate(t *testing.T) {
	repo := &mockTradesByDateFinder{trades: []model.Trade{{ID: 2}}}
	r := chi.NewRouter()
	r.Get("/api/trades-by-date/{date}", TradesByDateHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/trades-by-date/2024-02-01", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "2024-02-01", repo.date)
}

func TestTradesByDateHandler_RepoError(t *testing.T) {
	repo := &mockTradesByDateFinder{err: assert.AnError}
	r := chi.NewRouter()
	r.Get("/api/trades-by-date/{date}", TradesByDateHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/trades-by-date/2024-02-01", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
