package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// isoClosedDateExpr rewrites the export's dd/mm/yyyy hh:mm closing timestamp
// into an ISO yyyy-mm-dd date, portable across sqlite and postgres.
const isoClosedDateExpr = `SUBSTR(closed, 7, 4) || '-' || SUBSTR(closed, 4, 2) || '-' || SUBSTR(closed, 1, 2)`

// closedTradesCond selects only legs that have actually been closed.
const closedTradesCond = `closing_ref <> ? AND closed IS NOT NULL AND closed <> ''`

// TradeRepository handles read/write operations for journal trades.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new repository instance using the main
// read/write database.
func NewTradeRepository() *TradeRepository {
	logger.WithField("component", "TradeRepository").
		Info("Creating new TradeRepository with MainDB")

	return &TradeRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *TradeRepository) WithDB(db *gorm.DB) *TradeRepository {
	logger.WithField("component", "TradeRepository").
		Debug("Creating TradeRepository with custom DB instance")

	return &TradeRepository{db: db}
}

// Create inserts a new trade into the database. The given trade will be
// updated with the generated ID and timestamps.
func (r *TradeRepository) Create(ctx context.Context, trade *model.Trade) error {
	logger.WithFields(map[string]interface{}{
		"repo":        "TradeRepository",
		"op":          "Create",
		"opening_ref": trade.OpeningRef,
		"closing_ref": trade.ClosingRef,
		"market":      trade.Market,
	}).Debug("Creating new trade")

	if err := r.db.WithContext(ctx).Create(trade).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create trade")
		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "Create",
		"trade_id": trade.ID,
	}).Info("Trade created successfully")

	return nil
}

// FindByNaturalKey fetches the trade identified by the
// (opening_ref, closing_ref, closed) triple.
// Returns (nil, nil) if no such trade is stored.
func (r *TradeRepository) FindByNaturalKey(ctx context.Context, openingRef, closingRef, closed string) (*model.Trade, error) {
	logger.WithFields(map[string]interface{}{
		"repo":        "TradeRepository",
		"op":          "FindByNaturalKey",
		"opening_ref": openingRef,
		"closing_ref": closingRef,
		"closed":      closed,
	}).Debug("Fetching trade by natural key")

	var trade model.Trade
	err := r.db.WithContext(ctx).
		Where("opening_ref = ? AND closing_ref = ? AND closed = ?", openingRef, closingRef, closed).
		First(&trade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo":        "TradeRepository",
			"op":          "FindByNaturalKey",
			"opening_ref": openingRef,
		}).WithError(err).Error("Failed to fetch trade by natural key")
		return nil, err
	}

	return &trade, nil
}

// FindByID fetches a single trade by its primary ID.
// Returns (nil, nil) if the trade is not found.
func (r *TradeRepository) FindByID(ctx context.Context, id uint) (*model.Trade, error) {
	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "FindByID",
		"id":   id,
	}).Debug("Fetching trade by ID")

	var trade model.Trade
	err := r.db.WithContext(ctx).First(&trade, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithFields(map[string]interface{}{
				"repo": "TradeRepository",
				"op":   "FindByID",
				"id":   id,
			}).Info("Trade not found")
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch trade by ID")
		return nil, err
	}

	return &trade, nil
}

// FindAll returns every stored trade, most recently opened first.
func (r *TradeRepository) FindAll(ctx context.Context) ([]model.Trade, error) {
	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "FindAll",
	}).Debug("Fetching all trades")

	var trades []model.Trade
	err := r.db.WithContext(ctx).
		Order("opened DESC").
		Find(&trades).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindAll",
		}).WithError(err).Error("Failed to fetch trades")
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "TradeRepository",
		"op":          "FindAll",
		"rows_return": len(trades),
	}).Info("Trades fetched")

	return trades, nil
}

// FindClosed returns every closed trade leg, the population behind the
// statistics and calendar aggregates.
func (r *TradeRepository) FindClosed(ctx context.Context) ([]model.Trade, error) {
	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "FindClosed",
	}).Debug("Fetching closed trades")

	var trades []model.Trade
	err := r.db.WithContext(ctx).
		Where(closedTradesCond, model.ClosingRefOpen).
		Find(&trades).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindClosed",
		}).WithError(err).Error("Failed to fetch closed trades")
		return nil, err
	}

	return trades, nil
}

// FindClosedByDate returns the closed trades whose closing timestamp falls on
// the given ISO (yyyy-mm-dd) date, ordered by closing time.
func (r *TradeRepository) FindClosedByDate(ctx context.Context, date string) ([]model.Trade, error) {
	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "FindClosedByDate",
		"date": date,
	}).Debug("Fetching closed trades for date")

	var trades []model.Trade
	err := r.db.WithContext(ctx).
		Where("closing_ref <> ? AND "+isoClosedDateExpr+" = ?", model.ClosingRefOpen, date).
		Order("closed").
		Find(&trades).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindClosedByDate",
			"date": date,
		}).WithError(err).Error("Failed to fetch trades for date")
		return nil, err
	}

	return trades, nil
}

// DailyStats aggregates the closed trades per calendar closing date: summed
// totals and leg count, ordered by date. Derived on read, never persisted.
func (r *TradeRepository) DailyStats(ctx context.Context) ([]model.DailyStat, error) {
	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "DailyStats",
	}).Debug("Aggregating daily stats")

	var stats []model.DailyStat
	err := r.db.WithContext(ctx).
		Raw(`SELECT `+isoClosedDateExpr+` AS date,
			SUM(total) AS daily_pnl,
			COUNT(*) AS trade_count
		FROM trades
		WHERE closing_ref <> ? AND closed IS NOT NULL AND closed <> ''
		GROUP BY `+isoClosedDateExpr+`
		ORDER BY date`, model.ClosingRefOpen).
		Scan(&stats).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "DailyStats",
		}).WithError(err).Error("Failed to aggregate daily stats")
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "TradeRepository",
		"op":          "DailyStats",
		"rows_return": len(stats),
	}).Info("Daily stats aggregated")

	return stats, nil
}

// UpdateNotes updates only the notes annotation of the given trade ID and
// reports how many rows matched.
func (r *TradeRepository) UpdateNotes(ctx context.Context, id uint, notes string) (int64, error) {
	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "UpdateNotes",
		"id":   id,
	}).Debug("Updating trade notes")

	res := r.db.WithContext(ctx).
		Model(&model.Trade{}).
		Where("id = ?", id).
		Update("trade_notes", notes)
	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "UpdateNotes",
			"id":   id,
		}).WithError(res.Error).Error("Failed to update trade notes")
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

// UpdateStrategy updates the strategy annotations of the given trade ID and
// reports how many rows matched.
func (r *TradeRepository) UpdateStrategy(ctx context.Context, id uint, strategy, customStrategy string) (int64, error) {
	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "UpdateStrategy",
		"id":       id,
		"strategy": strategy,
	}).Debug("Updating trade strategy")

	res := r.db.WithContext(ctx).
		Model(&model.Trade{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"strategy":        strategy,
			"custom_strategy": customStrategy,
		})
	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "UpdateStrategy",
			"id":   id,
		}).WithError(res.Error).Error("Failed to update trade strategy")
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

// UpdateImagePath sets (or clears, when path is nil) the stored image path of
// the given trade ID and reports how many rows matched.
func (r *TradeRepository) UpdateImagePath(ctx context.Context, id uint, path *string) (int64, error) {
	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "UpdateImagePath",
		"id":   id,
	}).Debug("Updating trade image path")

	res := r.db.WithContext(ctx).
		Model(&model.Trade{}).
		Where("id = ?", id).
		Update("image_path", path)
	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "UpdateImagePath",
			"id":   id,
		}).WithError(res.Error).Error("Failed to update trade image path")
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

// ClearAll deletes every trade. Destructive, only reachable through the
// explicit clear-database endpoint.
func (r *TradeRepository) ClearAll(ctx context.Context) error {
	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "ClearAll",
	}).Warn("Clearing all trades")

	if err := r.db.WithContext(ctx).Exec(`DELETE FROM trades`).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "ClearAll",
		}).WithError(err).Error("Failed to clear trades")
		return err
	}

	return nil
}
