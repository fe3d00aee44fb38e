package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
	"tradejournal/src/repository"
)

// tradeImageField is the multipart form field carrying the trade screenshot.
const tradeImageField = "tradeImage"

type imageStore interface {
	FindByID(ctx context.Context, id uint) (*model.Trade, error)
	UpdateImagePath(ctx context.Context, id uint, path *string) (int64, error)
}

// UploadTradeImageHandler attaches a screenshot to one trade. A fresh file is
// stored under the public uploads directory and any previous image file for
// the trade is discarded.
func UploadTradeImageHandler(repo imageStore, publicDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tradeIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid trade id")
			return
		}

		file, header, err := r.FormFile(tradeImageField)
		if err != nil {
			writeError(w, http.StatusBadRequest, "No image uploaded")
			return
		}
		defer file.Close()

		trade, err := repo.FindByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if trade == nil {
			writeError(w, http.StatusNotFound, "Trade not found")
			return
		}

		relativePath, err := saveTradeImage(file, header, publicDir, id)
		if err != nil {
			logger.WithField("id", id).WithError(err).Error("failed to save trade image")
			writeError(w, http.StatusInternalServerError, "Failed to save image")
			return
		}

		if _, err := repo.UpdateImagePath(r.Context(), id, &relativePath); err != nil {
			removeQuietly(filepath.Join(publicDir, relativePath))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		// The previous screenshot, if any, is no longer referenced.
		if trade.ImagePath != "" {
			removeQuietly(filepath.Join(publicDir, trade.ImagePath))
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message":   "Image uploaded successfully",
			"imagePath": relativePath,
		})
	}
}

// DeleteTradeImageHandler removes the stored screenshot of one trade, both
// the file and the database reference.
func DeleteTradeImageHandler(repo imageStore, publicDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tradeIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid trade id")
			return
		}

		trade, err := repo.FindByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if trade == nil {
			writeError(w, http.StatusNotFound, "Trade not found")
			return
		}

		if trade.ImagePath != "" {
			removeQuietly(filepath.Join(publicDir, trade.ImagePath))
		}

		if _, err := repo.UpdateImagePath(r.Context(), id, nil); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeMessage(w, "Image deleted successfully")
	}
}

func saveTradeImage(src io.Reader, header *multipart.FileHeader, publicDir string, tradeID uint) (string, error) {
	uploadsDir := filepath.Join(publicDir, "uploads")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(filepath.Base(header.Filename))
	fileName := "trade_" + strconv.FormatUint(uint64(tradeID), 10) + "_" + uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(uploadsDir, fileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", fileName)), nil
}

// DefaultUploadTradeImageHandler wires the handler to the production repository.
func DefaultUploadTradeImageHandler() http.HandlerFunc {
	return UploadTradeImageHandler(repository.NewTradeRepository(), GetConfig().PublicDir)
}

// DefaultDeleteTradeImageHandler wires the handler to the production repository.
func DefaultDeleteTradeImageHandler() http.HandlerFunc {
	return DeleteTradeImageHandler(repository.NewTradeRepository(), GetConfig().PublicDir)
}
