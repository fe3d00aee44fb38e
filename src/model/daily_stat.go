package model

// DailyStat is the derived calendar aggregate for one closing date: the sum
// of trade totals and the number of legs closed that day. It is recomputed
// from the trades table on every read, never persisted on its own.
type DailyStat struct {
	Date       string  `json:"date"`
	DailyPnl   float64 `json:"daily_pnl"`
	TradeCount int     `json:"trade_count"`
}
