package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradejournal/src/model"
)

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)

	assert.Zero(t, s.TotalTrades)
	assert.Zero(t, s.TotalPnL)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.BestTrade)
	assert.Zero(t, s.WorstTrade)
}

func TestComputeGroupsPartialClosures(t *testing.T) {
	// Two legs of one position plus a standalone loser: the partial
	// closures collapse into a single winning trade.
	trades := []model.Trade{
		{OpeningRef: "O1", Opened: "31/01/2024 09:15", Total: 60},
		{OpeningRef: "O1", Opened: "31/01/2024 09:15", Total: 40},
		{OpeningRef: "O2", Opened: "01/02/2024 10:00", Total: -30},
	}

	s := Compute(trades)

	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 1, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.InDelta(t, 70, s.TotalPnL, 1e-9)
	assert.InDelta(t, 100, s.BestTrade, 1e-9)
	assert.InDelta(t, -30, s.WorstTrade, 1e-9)
	assert.InDelta(t, 50, s.WinRate, 1e-9)
	assert.InDelta(t, 100, s.AverageWin, 1e-9)
	assert.InDelta(t, -30, s.AverageLoss, 1e-9)
}

func TestComputeSameRefDifferentOpenIsSeparate(t *testing.T) {
	trades := []model.Trade{
		{OpeningRef: "O1", Opened: "31/01/2024 09:15", Total: 10},
		{OpeningRef: "O1", Opened: "01/02/2024 09:15", Total: 20},
	}

	s := Compute(trades)
	assert.Equal(t, 2, s.TotalTrades)
}

func TestComputeBestWorstFloorAtZero(t *testing.T) {
	// All losers: best stays at zero. All winners: worst stays at zero.
	losers := Compute([]model.Trade{
		{OpeningRef: "O1", Opened: "a", Total: -10},
		{OpeningRef: "O2", Opened: "b", Total: -20},
	})
	assert.Zero(t, losers.BestTrade)
	assert.InDelta(t, -20, losers.WorstTrade, 1e-9)
	assert.Zero(t, losers.WinRate)

	winners := Compute([]model.Trade{
		{OpeningRef: "O1", Opened: "a", Total: 10},
	})
	assert.Zero(t, winners.WorstTrade)
	assert.InDelta(t, 10, winners.BestTrade, 1e-9)
	assert.InDelta(t, 100, winners.WinRate, 1e-9)
}

func TestComputeBreakEvenIsNeitherWinNorLoss(t *testing.T) {
	s := Compute([]model.Trade{
		{OpeningRef: "O1", Opened: "a", Total: 50},
		{OpeningRef: "O1", Opened: "a", Total: -50},
	})

	assert.Equal(t, 1, s.TotalTrades)
	assert.Zero(t, s.WinningTrades)
	assert.Zero(t, s.LosingTrades)
	assert.Zero(t, s.WinRate)
}
