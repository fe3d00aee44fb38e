package handler

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/cleaner"
	"tradejournal/src/ingest"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

// csvFileField is the multipart form field carrying the broker export.
const csvFileField = "csvFile"

type csvCleaner interface {
	Clean(ctx context.Context, inputPath, outputPath string) error
}

type tradeIngestor interface {
	Ingest(ctx context.Context, candidates []model.Trade) ingest.Summary
}

type uploadResponse struct {
	Message             string `json:"message"`
	NewTrades           int    `json:"newTrades"`
	SkippedClosedTrades int    `json:"skippedClosedTrades"`
	TotalProcessed      int    `json:"totalProcessed"`
}

// UploadCSVHandler returns the handler for the CSV ingestion pipeline: store
// the raw upload, run the external cleaning step, normalize the cleaned
// output and reconcile the candidates against the journal.
func UploadCSVHandler(c csvCleaner, ingestor tradeIngestor, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile(csvFileField)
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer file.Close()

		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			logger.WithError(err).Error("failed to create upload directory")
			writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
			return
		}

		inputPath := filepath.Join(uploadDir, uuid.NewString()+".csv")
		outputPath := inputPath + "_cleaned.csv"

		// Both artifacts are transient; release them however the request
		// ends.
		defer func() {
			removeQuietly(inputPath)
			removeQuietly(outputPath)
		}()

		if err := saveUpload(file, inputPath); err != nil {
			logger.WithError(err).Error("failed to store uploaded file")
			writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
			return
		}

		if err := c.Clean(r.Context(), inputPath, outputPath); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to clean CSV file")
			return
		}

		data, err := os.ReadFile(outputPath)
		if err != nil {
			logger.WithError(err).Error("failed to read cleaned CSV")
			writeError(w, http.StatusInternalServerError, "Failed to read cleaned CSV")
			return
		}

		candidates := ingest.ParseRecords(string(data))
		if len(candidates) == 0 {
			writeJSON(w, http.StatusOK, uploadResponse{
				Message: "CSV processed successfully - no closed trades found",
			})
			return
		}

		summary := ingestor.Ingest(r.Context(), candidates)

		writeJSON(w, http.StatusOK, uploadResponse{
			Message:             "CSV processed successfully",
			NewTrades:           summary.NewTrades,
			SkippedClosedTrades: summary.SkippedClosedTrades,
			TotalProcessed:      summary.TotalProcessed,
		})
	}
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.WithField("path", path).WithError(err).Warn("failed to remove temporary file")
	}
}

// DefaultUploadCSVHandler wires the handler to the production cleaner,
// repository and reconciler.
func DefaultUploadCSVHandler() http.HandlerFunc {
	return UploadCSVHandler(
		cleaner.New(),
		ingest.NewReconciler(repository.NewTradeRepository()),
		GetConfig().UploadDir,
	)
}
