package handler

import (
	"context"
	"encoding/json"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/repository"
)

type notesUpdater interface {
	UpdateNotes(ctx context.Context, id uint, notes string) (int64, error)
}

type strategyUpdater interface {
	UpdateStrategy(ctx context.Context, id uint, strategy, customStrategy string) (int64, error)
}

// UpdateTradeNotesHandler sets the free-text notes annotation of one trade.
// Annotations never touch the financial fields.
func UpdateTradeNotesHandler(repo notesUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tradeIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid trade id")
			return
		}

		var body struct {
			Notes string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rows, err := repo.UpdateNotes(r.Context(), id, body.Notes)
		if err != nil {
			logger.WithField("id", id).WithError(err).Error("failed to update trade notes")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if rows == 0 {
			writeError(w, http.StatusNotFound, "Trade not found")
			return
		}

		writeMessage(w, "Trade notes updated successfully")
	}
}

// UpdateTradeStrategyHandler sets the strategy annotations of one trade.
func UpdateTradeStrategyHandler(repo strategyUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tradeIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid trade id")
			return
		}

		var body struct {
			Strategy       string `json:"strategy"`
			CustomStrategy string `json:"customStrategy"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rows, err := repo.UpdateStrategy(r.Context(), id, body.Strategy, body.CustomStrategy)
		if err != nil {
			logger.WithField("id", id).WithError(err).Error("failed to update trade strategy")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if rows == 0 {
			writeError(w, http.StatusNotFound, "Trade not found")
			return
		}

		writeMessage(w, "Trade strategy updated successfully")
	}
}

// DefaultUpdateTradeNotesHandler wires the handler to the production repository.
func DefaultUpdateTradeNotesHandler() http.HandlerFunc {
	return UpdateTradeNotesHandler(repository.NewTradeRepository())
}

// DefaultUpdateTradeStrategyHandler wires the handler to the production repository.
func DefaultUpdateTradeStrategyHandler() http.HandlerFunc {
	return UpdateTradeStrategyHandler(repository.NewTradeRepository())
}
