package export

import (
	"io"

	"StockDashboard/internal/model"

	"github.com/parquet-go/parquet-go"
)

// Row is the flat parquet record of one bar. Prices are stored as float64;
// the exact decimal text is kept in the CSV and JSON exports.
type Row struct {
	Date  string  `parquet:"date"`
	Open  float64 `parquet:"open"`
	High  float64 `parquet:"high"`
	Low   float64 `parquet:"low"`
	Close float64 `parquet:"close"`
}

// ParquetExporter writes the series as a parquet file.
type ParquetExporter struct{}

func (ParquetExporter) Extension() string   { return "parquet" }
func (ParquetExporter) ContentType() string { return "application/vnd.apache.parquet" }

func (ParquetExporter) Write(w io.Writer, series model.PriceSeries) error {
	rows := make([]Row, len(series.Bars))
	for i, b := range series.Bars {
		rows[i] = Row{
			Date:  b.Date.String(),
			Open:  b.Open.InexactFloat64(),
			High:  b.High.InexactFloat64(),
			Low:   b.Low.InexactFloat64(),
			Close: b.Close.InexactFloat64(),
		}
	}
	return parquet.Write(w, rows)
}
