package stats

import (
	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

// Statistics is the aggregate view over all closed trades.
type Statistics struct {
	TotalPnL      float64 `json:"totalPnL"`
	BestTrade     float64 `json:"bestTrade"`
	WorstTrade    float64 `json:"worstTrade"`
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	WinRate       float64 `json:"winRate"`
	AverageWin    float64 `json:"averageWin"`
	AverageLoss   float64 `json:"averageLoss"`
}

// Compute aggregates closed trades grouped by (opening ref, opened) so that
// multiple partial closures of one position count as a single economic trade.
// Sums run on decimals; floats only appear at the JSON edge.
func Compute(trades []model.Trade) Statistics {
	groups := make(map[string]decimal.Decimal)
	for _, t := range trades {
		key := t.OpeningRef + "_" + t.Opened
		groups[key] = groups[key].Add(decimal.NewFromFloat(t.Total))
	}

	var (
		totalPnL decimal.Decimal
		best     decimal.Decimal // floors at zero, like worst
		worst    decimal.Decimal
		winSum   decimal.Decimal
		lossSum  decimal.Decimal
		wins     int
		losses   int
	)

	for _, total := range groups {
		totalPnL = totalPnL.Add(total)

		if total.GreaterThan(best) {
			best = total
		}
		if total.LessThan(worst) {
			worst = total
		}

		switch {
		case total.IsPositive():
			wins++
			winSum = winSum.Add(total)
		case total.IsNegative():
			losses++
			lossSum = lossSum.Add(total)
		}
	}

	s := Statistics{
		TotalTrades:   len(groups),
		WinningTrades: wins,
		LosingTrades:  losses,
	}
	s.TotalPnL, _ = totalPnL.Float64()
	s.BestTrade, _ = best.Float64()
	s.WorstTrade, _ = worst.Float64()

	if len(groups) > 0 {
		s.WinRate = float64(wins) / float64(len(groups)) * 100
	}
	if wins > 0 {
		s.AverageWin, _ = winSum.Div(decimal.NewFromInt(int64(wins))).Float64()
	}
	if losses > 0 {
		s.AverageLoss, _ = lossSum.Div(decimal.NewFromInt(int64(losses))).Float64()
	}

	return s
}
