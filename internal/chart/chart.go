// Package chart builds the candlestick figure shown on the Graphs tab.
package chart

import (
	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

const (
	TitleSuffix = " Candlestick chart"
	YAxisTitle  = "Share Price"
	Height      = 800
	XAxisNTicks = 10

	white     = "#ffffff"
	black     = "#000000"
	lightGrey = "#e5e5e5"
)

// Build turns series into a candlestick trace plus a close-price line on the
// same x values. Only the range slider depends on the caller.
func Build(series model.PriceSeries, symbol string, rangeSlider bool) model.ChartSpec {
	n := len(series.Bars)
	dates := make([]model.Date, n)
	opens := make([]decimal.Decimal, n)
	highs := make([]decimal.Decimal, n)
	lows := make([]decimal.Decimal, n)
	closes := make([]decimal.Decimal, n)
	for i, b := range series.Bars {
		dates[i] = b.Date
		opens[i] = b.Open
		highs[i] = b.High
		lows[i] = b.Low
		closes[i] = b.Close
	}

	return model.ChartSpec{
		Candlestick: model.CandlestickTrace{
			Name:  symbol,
			X:     dates,
			Open:  opens,
			High:  highs,
			Low:   lows,
			Close: closes,
		},
		Line: model.LineTrace{
			Name: "Close",
			X:    dates,
			Y:    closes,
		},
		Layout: Layout(symbol, rangeSlider),
	}
}

// Layout returns the fixed light-theme layout.
func Layout(symbol string, rangeSlider bool) model.Layout {
	return model.Layout{
		Title:        symbol + TitleSuffix,
		Height:       Height,
		PaperBgColor: white,
		PlotBgColor:  white,
		XAxis: model.Axis{
			Color:                black,
			LineColor:            black,
			GridColor:            white,
			NTicks:               XAxisNTicks,
			RangeSelectorBgColor: lightGrey,
		},
		YAxis: model.Axis{
			Title:     YAxisTitle,
			Color:     black,
			LineColor: black,
			GridColor: white,
		},
		RangeSliderVisible: rangeSlider,
	}
}
