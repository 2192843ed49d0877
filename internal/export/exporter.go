// Package export writes a normalized price series as a downloadable file.
package export

import (
	"io"
	"strings"

	"StockDashboard/internal/model"
)

// Exporter encodes a series in one file format.
type Exporter interface {
	Write(w io.Writer, series model.PriceSeries) error
	Extension() string
	ContentType() string
}

// New returns the exporter for format (csv, json, parquet), or nil if the
// format is not supported.
func New(format string) Exporter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVExporter{}
	case "json":
		return JSONExporter{}
	case "parquet":
		return ParquetExporter{}
	default:
		return nil
	}
}

// Filename builds the download name, e.g. GSPC_2021-01-01_to_2021-02-02.csv.
func Filename(series model.PriceSeries, e Exporter) string {
	sym := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return -1
		}
	}, series.Symbol)
	if sym == "" {
		sym = "series"
	}
	return sym + "_" + series.Start.String() + "_to_" + series.End.String() + "." + e.Extension()
}
