package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// FinanceGoFetcher implements Fetcher with the piquette/finance-go chart client.
type FinanceGoFetcher struct {
	Location *time.Location
}

// NewFinanceGoFetcher creates a fetcher whose dates are resolved in loc.
func NewFinanceGoFetcher(loc *time.Location) *FinanceGoFetcher {
	if loc == nil {
		loc = time.UTC
	}
	return &FinanceGoFetcher{Location: loc}
}

func (f *FinanceGoFetcher) Name() string { return "financego" }

func (f *FinanceGoFetcher) FetchDailyBars(ctx context.Context, req FetchRequest) (*RawResponse, error) {
	start := req.Start.In(f.Location)
	end := req.End.AddDays(1).In(f.Location)
	interval := datetime.Interval(req.Interval)
	if interval == "" {
		interval = datetime.OneDay
	}

	iter := chart.Get(&chart.Params{
		Symbol:   req.Symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: interval,
	})

	out := &RawResponse{Symbol: req.Symbol}
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := iter.Bar()
		out.Rows = append(out.Rows, RawRow{
			Timestamp: time.Unix(int64(b.Timestamp), 0).In(f.Location),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			AdjClose:  b.AdjClose,
			Volume:    int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: financego: %v", ErrProvider, err)
	}
	return out, nil
}
