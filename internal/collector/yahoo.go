package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultYahooBaseURL is the Yahoo Finance chart API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	Location  *time.Location    // exchange location used to turn dates into period bounds
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(baseURL, proxyURL string, timeout time.Duration, loc *time.Location) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	if loc == nil {
		loc = time.UTC
	}
	return &YahooFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Location: loc,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GmtOffset            int    `json:"gmtoffset"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp []int64 `json:"timestamp"`
			Events    struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
				Splits map[string]struct {
					Date        int64   `json:"date"`
					Numerator   float64 `json:"numerator"`
					Denominator float64 `json:"denominator"`
				} `json:"splits"`
			} `json:"events"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

func toDecimal(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

func (f *YahooFetcher) chartURL(req FetchRequest) string {
	interval := req.Interval
	if interval == "" {
		interval = IntervalDaily
	}
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(req.Start.In(f.Location).Unix(), 10))
	// End is inclusive: ask for everything before the next midnight.
	q.Set("period2", strconv.FormatInt(req.End.AddDays(1).In(f.Location).Unix(), 10))
	q.Set("interval", interval)
	q.Set("events", "div,splits")
	q.Set("includeAdjustedClose", "true")
	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(f.yahooSymbol(req.Symbol)), q.Encode())
}

func (f *YahooFetcher) FetchDailyBars(ctx context.Context, req FetchRequest) (*RawResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, f.chartURL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo fetch: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo read body: %v", ErrProvider, err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: yahoo: status %d, body: %s", ErrProvider, resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: yahoo decode: %v", ErrProvider, err)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%w: yahoo: %s", ErrSymbolNotFound, chart.Chart.Error.Description)
		}
		return nil, fmt.Errorf("%w: yahoo api error: %s", ErrProvider, chart.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: yahoo: status %d", ErrProvider, resp.StatusCode)
	}

	out := &RawResponse{Symbol: req.Symbol}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return out, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return out, nil
	}
	quote := result.Indicators.Quote[0]
	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}
	loc := time.FixedZone(result.Meta.ExchangeTimezoneName, result.Meta.GmtOffset)

	dividends := make(map[model.Date]decimal.Decimal)
	for _, d := range result.Events.Dividends {
		dividends[model.DateOf(time.Unix(d.Date, 0).In(loc))] = decimal.NewFromFloat(d.Amount)
	}
	splits := make(map[model.Date]decimal.Decimal)
	for _, s := range result.Events.Splits {
		if s.Denominator != 0 {
			splits[model.DateOf(time.Unix(s.Date, 0).In(loc))] = decimal.NewFromFloat(s.Numerator / s.Denominator)
		}
	}

	out.Rows = make([]RawRow, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == nil && h == nil && l == nil && c == nil {
			continue // skip null bars (holidays etc.)
		}
		stamp := time.Unix(ts, 0).In(loc)
		row := RawRow{
			Timestamp:   stamp,
			Open:        toDecimal(o),
			High:        toDecimal(h),
			Low:         toDecimal(l),
			Close:       toDecimal(c),
			AdjClose:    toDecimal(at(adj, i)),
			Dividends:   dividends[model.DateOf(stamp)],
			StockSplits: splits[model.DateOf(stamp)],
		}
		if v := at(quote.Volume, i); v != nil {
			row.Volume = int64(*v)
		}
		out.Rows = append(out.Rows, row)
	}

	sort.SliceStable(out.Rows, func(i, j int) bool { return out.Rows[i].Timestamp.Before(out.Rows[j].Timestamp) })
	return out, nil
}
