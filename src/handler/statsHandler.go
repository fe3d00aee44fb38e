package handler

import (
	"context"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
	"tradejournal/src/repository"
	"tradejournal/src/stats"
)

type closedTradeFinder interface {
	FindClosed(ctx context.Context) ([]model.Trade, error)
}

type dailyStatsFinder interface {
	DailyStats(ctx context.Context) ([]model.DailyStat, error)
}

// StatisticsHandler computes the aggregate statistics over all closed trades.
func StatisticsHandler(repo closedTradeFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trades, err := repo.FindClosed(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to fetch closed trades for statistics")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stats.Compute(trades))
	}
}

// DailyStatsHandler returns the per-day P&L aggregates feeding the calendar.
func DailyStatsHandler(repo dailyStatsFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		daily, err := repo.DailyStats(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to aggregate daily stats")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if daily == nil {
			daily = []model.DailyStat{}
		}
		writeJSON(w, http.StatusOK, daily)
	}
}

// DefaultStatisticsHandler wires the handler to the production repository.
func DefaultStatisticsHandler() http.HandlerFunc {
	return StatisticsHandler(repository.NewTradeRepository())
}

// DefaultDailyStatsHandler wires the handler to the production repository.
func DefaultDailyStatsHandler() http.HandlerFunc {
	return DailyStatsHandler(repository.NewTradeRepository())
}
