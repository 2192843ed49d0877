package calculator

import (
	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// Summary describes a price series over its whole range.
type Summary struct {
	Bars      int             `json:"bars"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	FirstOpen decimal.Decimal `json:"first_open"`
	LastClose decimal.Decimal `json:"last_close"`
	Change    decimal.Decimal `json:"change"`
	ChangePct decimal.Decimal `json:"change_pct"` // percent, 2 decimals
}

// CalculateRange scans every bar and returns the highest high and lowest low.
func CalculateRange(bars []model.PriceBar) (high, low decimal.Decimal, ok bool) {
	if len(bars) == 0 {
		return decimal.Zero, decimal.Zero, false
	}
	high, low = bars[0].High, bars[0].Low
	for _, b := range bars[1:] {
		if b.High.GreaterThan(high) {
			high = b.High
		}
		if b.Low.LessThan(low) {
			low = b.Low
		}
	}
	return high, low, true
}

// Summarize computes the range summary. An empty series gives a zero Summary.
func Summarize(series model.PriceSeries) Summary {
	high, low, ok := CalculateRange(series.Bars)
	if !ok {
		return Summary{}
	}
	first := series.Bars[0].Open
	last := series.Bars[len(series.Bars)-1].Close
	s := Summary{
		Bars:      len(series.Bars),
		High:      high,
		Low:       low,
		FirstOpen: first,
		LastClose: last,
		Change:    last.Sub(first),
	}
	if !first.IsZero() {
		s.ChangePct = s.Change.Div(first).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return s
}
