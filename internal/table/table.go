// Package table projects a price series onto a generic data grid.
package table

import "StockDashboard/internal/model"

// Field names double as column ids and record keys.
const (
	FieldDate  = "Date"
	FieldOpen  = "Open"
	FieldHigh  = "High"
	FieldLow   = "Low"
	FieldClose = "Close"
)

// Fields lists the grid columns in display order.
var Fields = []string{FieldDate, FieldOpen, FieldHigh, FieldLow, FieldClose}

// Columns returns the column descriptors; each id equals its name.
func Columns() []model.Column {
	cols := make([]model.Column, len(Fields))
	for i, f := range Fields {
		cols[i] = model.Column{ID: f, Name: f}
	}
	return cols
}

// Project returns one record per bar in series order.
func Project(series model.PriceSeries) model.TableView {
	rows := make([]model.Record, len(series.Bars))
	for i, b := range series.Bars {
		rows[i] = model.Record{
			FieldDate:  b.Date.String(),
			FieldOpen:  b.Open,
			FieldHigh:  b.High,
			FieldLow:   b.Low,
			FieldClose: b.Close,
		}
	}
	return model.TableView{Columns: Columns(), Rows: rows}
}
