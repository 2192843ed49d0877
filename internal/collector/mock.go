package collector

import (
	"context"
	"sync/atomic"
	"time"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Rows  []RawRow // returned verbatim when set
	Err   error    // returned when set

	Calls atomic.Int64 // fetches served, safe for concurrent use
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, req FetchRequest) (*RawResponse, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Rows != nil {
		return &RawResponse{Symbol: req.Symbol, Rows: m.Rows}, nil
	}
	return &RawResponse{Symbol: req.Symbol, Rows: generateMockRows(m.Price, req.Start, req.End)}, nil
}

// isTradingDay skips weekends and the two fixed-date market holidays.
func isTradingDay(d model.Date) bool {
	switch d.In(time.UTC).Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if (d.Month == time.January && d.Day == 1) || (d.Month == time.December && d.Day == 25) {
		return false
	}
	return true
}

func generateMockRows(basePrice float64, start, end model.Date) []RawRow {
	var rows []RawRow
	i := 0
	for d := start; !d.After(end); d = d.AddDays(1) {
		if !isTradingDay(d) {
			continue
		}
		p := decimal.NewFromFloat(basePrice * (1 + float64(i)*0.001)).Round(2)
		rows = append(rows, RawRow{
			Timestamp: d.In(time.UTC).Add(14*time.Hour + 30*time.Minute),
			Open:      p.Mul(decimal.RequireFromString("0.999")).Round(2),
			High:      p.Mul(decimal.RequireFromString("1.005")).Round(2),
			Low:       p.Mul(decimal.RequireFromString("0.995")).Round(2),
			Close:     p,
			AdjClose:  p,
			Volume:    1000000,
		})
		i++
	}
	return rows
}
