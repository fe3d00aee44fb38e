package ingest

import (
	"strings"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

// minFields is the column count of the cleaned export: closing ref, closed,
// opening ref, opened, market, opening price, closing price, P/L, total.
const minFields = 9

// SplitLine splits one line of the cleaned export into fields. A double
// quote toggles quoted mode, a comma outside quotes ends the current field
// and the final field is flushed at end of line, so a quoted amount like
// "1,234.56" stays a single field. Fields are whitespace-trimmed.
func SplitLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// ParseAmount coerces a CSV token into a float. Quotes and thousands
// separators are stripped first; anything that still does not parse becomes
// 0, so a malformed amount never fails the row.
func ParseAmount(token string) float64 {
	cleaned := strings.NewReplacer(`"`, "", ",", "").Replace(token)
	if cleaned == "" {
		return 0
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}

	f, _ := d.Float64()
	return f
}

// ParseLine maps one cleaned export line onto a Trade candidate. Lines with
// fewer than nine fields are not data rows and are discarded (ok=false).
func ParseLine(line string) (*model.Trade, bool) {
	values := SplitLine(line)
	if len(values) < minFields {
		return nil, false
	}

	trade := &model.Trade{
		ClosingRef:   values[0],
		Closed:       values[1],
		OpeningRef:   values[2],
		Opened:       values[3],
		Market:       values[4],
		Size:         0, // not present in the cleaned export
		OpeningPrice: ParseAmount(values[5]),
		ClosingPrice: ParseAmount(values[6]),
		Pnl:          ParseAmount(values[7]),
		Total:        ParseAmount(values[8]),
	}
	if trade.Opened != "" {
		trade.TradeDate = strings.SplitN(trade.Opened, " ", 2)[0]
	}

	return trade, true
}

// ParseRecords parses a whole cleaned file (header line included) and
// returns the closed-trade candidates for persistence. Malformed rows and
// open positions are dropped silently; neither counts as an error.
func ParseRecords(data string) []model.Trade {
	lines := strings.Split(strings.TrimSpace(data), "\n")

	var trades []model.Trade
	for i, line := range lines {
		if i == 0 {
			// header written by the cleaning step
			continue
		}

		trade, ok := ParseLine(strings.TrimRight(line, "\r"))
		if !ok {
			logger.WithField("line", i+1).Debug("Discarding row with too few fields")
			continue
		}

		if !trade.IsClosed() {
			logger.WithFields(map[string]interface{}{
				"opening_ref": trade.OpeningRef,
				"market":      trade.Market,
			}).Debug("Dropping open position")
			continue
		}

		trade.IsOpen = false
		trades = append(trades, *trade)
	}

	return trades
}
