package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Column describes one grid column. ID and Name are both the field name so
// the grid binds record keys to columns directly.
type Column struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Record is one grid row keyed by column ID.
type Record map[string]any

// TableView is the grid projection of a PriceSeries.
type TableView struct {
	Columns []Column `json:"columns"`
	Rows    []Record `json:"rows"`
}

// CandlestickTrace holds the four parallel price sequences keyed by X.
type CandlestickTrace struct {
	Name  string
	X     []Date
	Open  []decimal.Decimal
	High  []decimal.Decimal
	Low   []decimal.Decimal
	Close []decimal.Decimal
}

// LineTrace is the closing-price overlay drawn on the candlestick axes.
type LineTrace struct {
	Name string
	X    []Date
	Y    []decimal.Decimal
}

// Axis holds per-axis styling.
type Axis struct {
	Title                string
	Color                string
	LineColor            string
	GridColor            string
	NTicks               int
	RangeSelectorBgColor string
}

// Layout holds the chart layout directives.
type Layout struct {
	Title              string
	Height             int
	PaperBgColor       string
	PlotBgColor        string
	XAxis              Axis
	YAxis              Axis
	RangeSliderVisible bool
}

// ChartSpec is the declarative chart bundle: candlestick, close line, layout.
// It encodes to a Plotly figure ({"data": [...], "layout": {...}}).
type ChartSpec struct {
	Candlestick CandlestickTrace
	Line        LineTrace
	Layout      Layout
}

type plotlyTitle struct {
	Text string `json:"text"`
}

type plotlyTrace struct {
	Type  string            `json:"type"`
	Name  string            `json:"name,omitempty"`
	Mode  string            `json:"mode,omitempty"`
	X     []Date            `json:"x"`
	Y     []decimal.Decimal `json:"y,omitempty"`
	Open  []decimal.Decimal `json:"open,omitempty"`
	High  []decimal.Decimal `json:"high,omitempty"`
	Low   []decimal.Decimal `json:"low,omitempty"`
	Close []decimal.Decimal `json:"close,omitempty"`
}

type plotlyAxis struct {
	Title         *plotlyTitle `json:"title,omitempty"`
	Color         string       `json:"color,omitempty"`
	LineColor     string       `json:"linecolor,omitempty"`
	GridColor     string       `json:"gridcolor,omitempty"`
	NTicks        int          `json:"nticks,omitempty"`
	RangeSelector *struct {
		BgColor string `json:"bgcolor"`
	} `json:"rangeselector,omitempty"`
	RangeSlider *struct {
		Visible bool `json:"visible"`
	} `json:"rangeslider,omitempty"`
}

type plotlyLayout struct {
	Title        plotlyTitle `json:"title"`
	Height       int         `json:"height"`
	PaperBgColor string      `json:"paper_bgcolor"`
	PlotBgColor  string      `json:"plot_bgcolor"`
	XAxis        plotlyAxis  `json:"xaxis"`
	YAxis        plotlyAxis  `json:"yaxis"`
}

type plotlyFigure struct {
	Data   []plotlyTrace `json:"data"`
	Layout plotlyLayout  `json:"layout"`
}

func toPlotlyAxis(a Axis) plotlyAxis {
	pa := plotlyAxis{
		Color:     a.Color,
		LineColor: a.LineColor,
		GridColor: a.GridColor,
		NTicks:    a.NTicks,
	}
	if a.Title != "" {
		pa.Title = &plotlyTitle{Text: a.Title}
	}
	if a.RangeSelectorBgColor != "" {
		pa.RangeSelector = &struct {
			BgColor string `json:"bgcolor"`
		}{BgColor: a.RangeSelectorBgColor}
	}
	return pa
}

func nonNilDates(d []Date) []Date {
	if d == nil {
		return []Date{}
	}
	return d
}

// MarshalJSON encodes the chart as a Plotly figure.
func (c ChartSpec) MarshalJSON() ([]byte, error) {
	xaxis := toPlotlyAxis(c.Layout.XAxis)
	xaxis.RangeSlider = &struct {
		Visible bool `json:"visible"`
	}{Visible: c.Layout.RangeSliderVisible}

	fig := plotlyFigure{
		Data: []plotlyTrace{
			{
				Type:  "candlestick",
				Name:  c.Candlestick.Name,
				X:     nonNilDates(c.Candlestick.X),
				Open:  c.Candlestick.Open,
				High:  c.Candlestick.High,
				Low:   c.Candlestick.Low,
				Close: c.Candlestick.Close,
			},
			{
				Type: "scatter",
				Mode: "lines",
				Name: c.Line.Name,
				X:    nonNilDates(c.Line.X),
				Y:    c.Line.Y,
			},
		},
		Layout: plotlyLayout{
			Title:        plotlyTitle{Text: c.Layout.Title},
			Height:       c.Layout.Height,
			PaperBgColor: c.Layout.PaperBgColor,
			PlotBgColor:  c.Layout.PlotBgColor,
			XAxis:        xaxis,
			YAxis:        toPlotlyAxis(c.Layout.YAxis),
		},
	}
	return json.Marshal(fig)
}
