package collector

import (
	"context"
	"log"

	"StockDashboard/internal/model"
)

// Collector orchestrates data fetching and row normalization.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches daily bars and normalizes them. A provider failure is
// reported as an OutcomeFetchError with an empty series; an empty provider
// answer is OutcomeEmpty.
func (c *Collector) Collect(ctx context.Context, symbol string, start, end model.Date) (model.PriceSeries, model.Outcome) {
	req := FetchRequest{Symbol: symbol, Start: start, End: end, Interval: IntervalDaily}
	resp, err := c.Fetcher.FetchDailyBars(ctx, req)
	if err != nil {
		log.Printf("[WARN] %s fetch %s %s..%s failed: %v", c.Fetcher.Name(), symbol, start, end, err)
		return Normalize(req, nil), model.Outcome{Status: model.OutcomeFetchError, Reason: err.Error()}
	}
	series := Normalize(req, resp)
	if series.Empty() {
		return series, model.Outcome{Status: model.OutcomeEmpty}
	}
	return series, model.Outcome{Status: model.OutcomeOK}
}
