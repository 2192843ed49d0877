package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RESTFetcher implements Fetcher against a self-hosted bars API.
type RESTFetcher struct {
	BaseURL  string
	APIKey   string
	Client   *http.Client
	Location *time.Location
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration, loc *time.Location) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Location: loc,
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API.
type restBar struct {
	Timestamp int64           `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    float64         `json:"volume"`
}

func (f *RESTFetcher) FetchDailyBars(ctx context.Context, req FetchRequest) (*RawResponse, error) {
	q := url.Values{}
	q.Set("symbol", req.Symbol)
	q.Set("start", req.Start.String())
	q.Set("end", req.End.String())
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?%s", f.BaseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("rest build request: %w", err)
	}
	if f.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch bars: %v", ErrProvider, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: rest: %s", ErrSymbolNotFound, req.Symbol)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: fetch bars: status %d, body: %s", ErrProvider, resp.StatusCode, string(body))
	}
	var bars []restBar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, fmt.Errorf("%w: decode bars: %v", ErrProvider, err)
	}
	out := &RawResponse{Symbol: req.Symbol, Rows: make([]RawRow, len(bars))}
	for i, b := range bars {
		out.Rows[i] = RawRow{
			Timestamp: time.Unix(b.Timestamp, 0).In(f.Location),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    int64(b.Volume),
		}
	}
	// Ensure chronological order
	sort.SliceStable(out.Rows, func(i, j int) bool { return out.Rows[i].Timestamp.Before(out.Rows[j].Timestamp) })
	return out, nil
}
