package model

import "github.com/shopspring/decimal"

// PriceBar is one trading day of a PriceSeries.
type PriceBar struct {
	Date  Date            `json:"date"`
	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
}

// PriceSeries holds the daily bars of one symbol over one requested range,
// ordered by date ascending. It is built once per submit and only read after.
type PriceSeries struct {
	Symbol string     `json:"symbol"`
	Start  Date       `json:"start"`
	End    Date       `json:"end"`
	Bars   []PriceBar `json:"bars"`
}

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Empty reports whether the series holds no bars.
func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }
