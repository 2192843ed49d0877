package export

import (
	"encoding/csv"
	"io"

	"StockDashboard/internal/model"
)

// CSVExporter writes a header row Date,Open,High,Low,Close then one row per bar.
type CSVExporter struct{}

func (CSVExporter) Extension() string   { return "csv" }
func (CSVExporter) ContentType() string { return "text/csv" }

func (CSVExporter) Write(w io.Writer, series model.PriceSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Open", "High", "Low", "Close"}); err != nil {
		return err
	}
	for _, b := range series.Bars {
		if err := cw.Write([]string{
			b.Date.String(),
			b.Open.String(),
			b.High.String(),
			b.Low.String(),
			b.Close.String(),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
