package handler

import (
	"context"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/repository"
)

type databaseClearer interface {
	ClearAll(ctx context.Context) error
}

// ClearDatabaseHandler wipes every stored trade. Trades are otherwise never
// deleted individually; this is the only destruction path.
func ClearDatabaseHandler(repo databaseClearer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := repo.ClearAll(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeMessage(w, "Database cleared successfully")
	}
}

// ShutdownHandler acknowledges the request, then asks the server to go
// through the same graceful shutdown path as SIGINT/SIGTERM.
func ShutdownHandler(requestShutdown func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Info("Shutdown request received")
		writeMessage(w, "Server shutting down...")
		go requestShutdown()
	}
}

// DefaultClearDatabaseHandler wires the handler to the production repository.
func DefaultClearDatabaseHandler() http.HandlerFunc {
	return ClearDatabaseHandler(repository.NewTradeRepository())
}
