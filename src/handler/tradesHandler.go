package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
	"tradejournal/src/repository"
)

type tradeLister interface {
	FindAll(ctx context.Context) ([]model.Trade, error)
}

type tradesByDateFinder interface {
	FindClosedByDate(ctx context.Context, date string) ([]model.Trade, error)
}

// ListTradesHandler returns every stored trade, most recently opened first.
func ListTradesHandler(repo tradeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trades, err := repo.FindAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if trades == nil {
			trades = []model.Trade{}
		}
		writeJSON(w, http.StatusOK, trades)
	}
}

// TradesByDateHandler returns the closed trades for one calendar date
// (yyyy-mm-dd), the drill-down behind a calendar day cell.
func TradesByDateHandler(repo tradesByDateFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")

		trades, err := repo.FindClosedByDate(r.Context(), date)
		if err != nil {
			logger.WithField("date", date).WithError(err).Error("failed to fetch trades by date")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if trades == nil {
			trades = []model.Trade{}
		}
		writeJSON(w, http.StatusOK, trades)
	}
}

// DefaultListTradesHandler wires the handler to the production repository.
func DefaultListTradesHandler() http.HandlerFunc {
	return ListTradesHandler(repository.NewTradeRepository())
}

// DefaultTradesByDateHandler wires the handler to the production repository.
func DefaultTradesByDateHandler() http.HandlerFunc {
	return TradesByDateHandler(repository.NewTradeRepository())
}
