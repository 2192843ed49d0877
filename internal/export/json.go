package export

import (
	"encoding/json"
	"io"

	"StockDashboard/internal/model"
)

// JSONExporter writes the series as indented JSON.
type JSONExporter struct{}

func (JSONExporter) Extension() string   { return "json" }
func (JSONExporter) ContentType() string { return "application/json" }

func (JSONExporter) Write(w io.Writer, series model.PriceSeries) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(series)
}
