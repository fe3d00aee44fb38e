package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/handler"
)

func StartServer(port string) {
	config := GetConfig()

	// Shutdown on SIGINT, SIGTERM or the shutdown endpoint
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	requestShutdown := func() {
		select {
		case stop <- syscall.SIGTERM:
		default:
		}
	}

	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("\"/healthcheck\" error")
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload-csv", handler.DefaultUploadCSVHandler())
		r.Get("/trades", handler.DefaultListTradesHandler())
		r.Get("/trades-by-date/{date}", handler.DefaultTradesByDateHandler())
		r.Get("/statistics", handler.DefaultStatisticsHandler())
		r.Get("/daily-stats", handler.DefaultDailyStatsHandler())
		r.Put("/update-trade-notes/{id}", handler.DefaultUpdateTradeNotesHandler())
		r.Put("/update-trade-strategy/{id}", handler.DefaultUpdateTradeStrategyHandler())
		r.Post("/upload-trade-image/{id}", handler.DefaultUploadTradeImageHandler())
		r.Delete("/delete-trade-image/{id}", handler.DefaultDeleteTradeImageHandler())
		r.Delete("/clear-database", handler.DefaultClearDatabaseHandler())
		r.Post("/shutdown", handler.ShutdownHandler(requestShutdown))
	})

	// Stored trade screenshots. The journal UI itself is served elsewhere.
	imagesDir := filepath.Join(config.PublicDir, "uploads")
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(imagesDir))))

	// Graceful server
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
