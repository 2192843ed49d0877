package collector

import (
	"context"
	"errors"
	"time"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// IntervalDaily is the only bar interval the dashboard requests.
const IntervalDaily = "1d"

var (
	// ErrSymbolNotFound is returned when the provider rejects the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrProvider wraps any other provider-side failure.
	ErrProvider = errors.New("provider error")
)

// FetchRequest identifies one daily-bar request. End is inclusive.
type FetchRequest struct {
	Symbol   string
	Start    model.Date
	End      model.Date
	Interval string
}

// RawRow is one provider row with every field the provider supplies.
type RawRow struct {
	Timestamp   time.Time       `json:"timestamp"`
	Open        decimal.Decimal `json:"open"`
	High        decimal.Decimal `json:"high"`
	Low         decimal.Decimal `json:"low"`
	Close       decimal.Decimal `json:"close"`
	AdjClose    decimal.Decimal `json:"adj_close"`
	Volume      int64           `json:"volume"`
	Dividends   decimal.Decimal `json:"dividends"`
	StockSplits decimal.Decimal `json:"stock_splits"`
}

// RawResponse is the provider's tabular answer, rows in provider order.
type RawResponse struct {
	Symbol string   `json:"symbol"`
	Rows   []RawRow `json:"rows"`
}

// Fetcher defines the interface for fetching market data.
// An unknown range or a range without trading days yields an empty response
// and a nil error; only provider failures return an error.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, req FetchRequest) (*RawResponse, error)
	Name() string
}
