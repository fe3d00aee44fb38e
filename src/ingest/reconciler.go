package ingest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/model"
)

// tradeStore is the slice of the trade repository the reconciler needs.
type tradeStore interface {
	FindByNaturalKey(ctx context.Context, openingRef, closingRef, closed string) (*model.Trade, error)
	Create(ctx context.Context, trade *model.Trade) error
}

// Summary reports the outcome of one ingestion run. Errored rows count
// toward TotalProcessed but never toward NewTrades; the field stays out of
// the upload response contract.
type Summary struct {
	TotalProcessed      int `json:"totalProcessed"`
	NewTrades           int `json:"newTrades"`
	SkippedClosedTrades int `json:"skippedClosedTrades"`
	Errored             int `json:"-"`
}

// maxConcurrentInserts bounds the per-candidate fan-out. Uploads are small;
// this only guards against pathological files.
const maxConcurrentInserts = 8

// Reconciler persists normalized trade candidates, skipping any candidate
// whose natural key (opening ref, closing ref, closed) is already stored.
type Reconciler struct {
	store tradeStore
}

// NewReconciler creates a reconciler over the given trade store.
func NewReconciler(store tradeStore) *Reconciler {
	return &Reconciler{store: store}
}

// Ingest decides the fate of every candidate independently: an existing
// natural key is skipped and left untouched, a fresh one is inserted with
// empty annotations. Candidates are processed concurrently and a store
// failure on one row never aborts the rest.
func (r *Reconciler) Ingest(ctx context.Context, candidates []model.Trade) Summary {
	if len(candidates) == 0 {
		return Summary{}
	}

	var (
		newTrades atomic.Int64
		skipped   atomic.Int64
		errored   atomic.Int64
		wg        sync.WaitGroup
		sem       = make(chan struct{}, maxConcurrentInserts)
	)

	for i := range candidates {
		wg.Add(1)
		sem <- struct{}{}

		go func(trade model.Trade) {
			defer wg.Done()
			defer func() { <-sem }()

			switch r.reconcile(ctx, &trade) {
			case outcomeNew:
				newTrades.Add(1)
			case outcomeSkipped:
				skipped.Add(1)
			default:
				errored.Add(1)
			}
		}(candidates[i])
	}
	wg.Wait()

	summary := Summary{
		TotalProcessed:      len(candidates),
		NewTrades:           int(newTrades.Load()),
		SkippedClosedTrades: int(skipped.Load()),
		Errored:             int(errored.Load()),
	}

	logger.WithFields(map[string]interface{}{
		"total":   summary.TotalProcessed,
		"new":     summary.NewTrades,
		"skipped": summary.SkippedClosedTrades,
		"errored": summary.Errored,
	}).Info("CSV ingestion complete")

	return summary
}

type outcome int

const (
	outcomeNew outcome = iota
	outcomeSkipped
	outcomeErrored
)

func (r *Reconciler) reconcile(ctx context.Context, trade *model.Trade) outcome {
	existing, err := r.store.FindByNaturalKey(ctx, trade.OpeningRef, trade.ClosingRef, trade.Closed)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"opening_ref": trade.OpeningRef,
			"closing_ref": trade.ClosingRef,
			"closed":      trade.Closed,
		}).WithError(err).Error("Failed to look up trade by natural key")

		return outcomeErrored
	}

	if existing != nil {
		logger.WithFields(map[string]interface{}{
			"opening_ref": trade.OpeningRef,
			"closed":      trade.Closed,
		}).Info("Skipping existing closed trade")

		return outcomeSkipped
	}

	if err := r.store.Create(ctx, trade); err != nil {
		// A concurrent identical insert lost the race against the unique
		// natural-key index. Same outcome as finding the record up front.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.WithFields(map[string]interface{}{
				"opening_ref": trade.OpeningRef,
				"closed":      trade.Closed,
			}).Info("Trade already inserted by a concurrent upload, skipping")

			return outcomeSkipped
		}

		logger.WithFields(map[string]interface{}{
			"opening_ref": trade.OpeningRef,
			"closed":      trade.Closed,
		}).WithError(err).Error("Failed to insert trade")

		return outcomeErrored
	}

	logger.WithFields(map[string]interface{}{
		"opening_ref": trade.OpeningRef,
		"closed":      trade.Closed,
	}).Info("Added new closed trade")

	return outcomeNew
}
