package model

import "time"

// ClosingRefOpen is the sentinel the broker export uses as closing reference
// for positions that are still open.
const ClosingRefOpen = "OPEN"

// Trade represents one closed (or still-open) position leg imported from a
// broker CSV export. The natural key of a trade is the triple
// (opening_ref, closing_ref, closed): two rows sharing it are the same
// economic event, which the unique index below rejects at the storage layer.
type Trade struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ClosingRef     string    `gorm:"size:60;uniqueIndex:ux_trades_natural_key,priority:2" json:"closing_ref"`
	Closed         string    `gorm:"size:60;uniqueIndex:ux_trades_natural_key,priority:3" json:"closed"`
	OpeningRef     string    `gorm:"size:60;uniqueIndex:ux_trades_natural_key,priority:1" json:"opening_ref"`
	Opened         string    `gorm:"size:60" json:"opened"`
	Market         string    `gorm:"size:255" json:"market"`
	Size           float64   `json:"size"`
	OpeningPrice   float64   `json:"opening_price"`
	ClosingPrice   float64   `json:"closing_price"`
	Pnl            float64   `json:"pnl"`
	Total          float64   `json:"total"`
	TradeDate      string    `gorm:"size:20;index" json:"trade_date"`
	IsOpen         bool      `gorm:"not null;default:false" json:"is_open"`
	ImagePath      string    `gorm:"size:512" json:"image_path"`
	TradeNotes     string    `json:"trade_notes"`
	Strategy       string    `gorm:"size:100" json:"strategy"`
	CustomStrategy string    `gorm:"size:255" json:"custom_strategy"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName allows you to control the exact table name for trades.
func (Trade) TableName() string {
	return "trades"
}

// IsClosed reports whether the leg has actually been closed. The export marks
// open positions with the OPEN sentinel or an empty/"-" closing timestamp.
func (t Trade) IsClosed() bool {
	return t.ClosingRef != ClosingRefOpen && t.Closed != "" && t.Closed != "-"
}
