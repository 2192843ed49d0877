package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"StockDashboard/internal/collector"
	"StockDashboard/internal/model"
	"StockDashboard/internal/recorder"
)

// memRecorder keeps submissions in memory.
type memRecorder struct {
	subs []recorder.Submission
	err  error
}

func (m *memRecorder) RecordSubmit(s *recorder.Submission) error {
	if m.err != nil {
		return m.err
	}
	m.subs = append(m.subs, *s)
	return nil
}

func (m *memRecorder) Recent(limit int) ([]recorder.Submission, error) {
	if limit > len(m.subs) {
		limit = len(m.subs)
	}
	return m.subs[len(m.subs)-limit:], nil
}

func (m *memRecorder) Prune(time.Time) (int64, error) { return 0, nil }
func (m *memRecorder) Close() error                   { return nil }

func newController(f collector.Fetcher, rec recorder.Recorder) *Controller {
	return NewController(collector.NewCollector(f), rec, Defaults{})
}

func weekRequest(symbol string) SubmitRequest {
	return SubmitRequest{
		Symbol:      symbol,
		Start:       model.MustParseDate("2021-01-01"),
		End:         model.MustParseDate("2021-01-08"),
		RangeSlider: true,
	}
}

func TestSwitchTab(t *testing.T) {
	c := newController(&collector.MockFetcher{}, nil)
	tests := []struct {
		in      string
		tab     Tab
		message string
		show    bool
		display string
	}{
		{"Data", TabData, "", false, "none"},
		{"data view", TabData, "", false, "none"},
		{"Graphs", TabGraphs, "Turn on Range Slider", true, "block"},
		{"chart view", TabGraphs, "Turn on Range Slider", true, "block"},
		{"anything", TabGraphs, "Turn on Range Slider", true, "block"},
	}
	for _, tt := range tests {
		got := c.SwitchTab(ParseTab(tt.in))
		if got.Tab != tt.tab || got.Message != tt.message || got.ShowRangeSliderOption != tt.show || got.Display != tt.display {
			t.Errorf("tab %q: unexpected state %+v", tt.in, got)
		}
	}
}

func TestSwitchTab_DoesNotFetch(t *testing.T) {
	m := &collector.MockFetcher{}
	c := newController(m, nil)
	c.SwitchTab(TabGraphs)
	c.SwitchTab(TabData)
	if m.Calls.Load() != 0 {
		t.Errorf("tab switch fetched data %d times", m.Calls.Load())
	}
}

func TestSubmit_WeekScenario(t *testing.T) {
	m := &collector.MockFetcher{Price: 3700}
	rec := &memRecorder{}
	c := newController(m, rec)

	resp := c.Submit(context.Background(), weekRequest("^GSPC"))
	if m.Calls.Load() != 1 {
		t.Errorf("expected exactly one fetch per submit, got %d", m.Calls.Load())
	}
	if resp.Outcome.Status != model.OutcomeOK || resp.Message != "" {
		t.Errorf("unexpected outcome %+v / %q", resp.Outcome, resp.Message)
	}
	if len(resp.Table.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(resp.Table.Rows))
	}
	var cols []string
	for _, col := range resp.Table.Columns {
		cols = append(cols, col.ID)
	}
	if strings.Join(cols, ",") != "Date,Open,High,Low,Close" {
		t.Errorf("unexpected columns %v", cols)
	}
	if len(resp.Chart.Candlestick.X) != 5 || len(resp.Chart.Line.Y) != 5 {
		t.Errorf("expected 5-point traces")
	}
	if resp.Chart.Layout.Title != "^GSPC Candlestick chart" || resp.Chart.Layout.Height != 800 {
		t.Errorf("unexpected layout %+v", resp.Chart.Layout)
	}
	if !resp.Chart.Layout.RangeSliderVisible {
		t.Error("range slider flag not honoured")
	}
	if resp.Summary.Bars != 5 {
		t.Errorf("expected summary over 5 bars, got %d", resp.Summary.Bars)
	}
	if resp.RequestID == "" {
		t.Error("expected a request id")
	}

	if len(rec.subs) != 1 || rec.subs[0].RequestID != resp.RequestID || rec.subs[0].Rows != 5 || rec.subs[0].Outcome != "ok" {
		t.Errorf("unexpected recorded submission %+v", rec.subs)
	}
}

func TestSubmit_ConcurrentSharedFetcher(t *testing.T) {
	m := &collector.MockFetcher{Price: 3700}
	c := newController(m, nil)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := c.Submit(context.Background(), weekRequest("^GSPC"))
			if len(resp.Table.Rows) != 5 {
				t.Errorf("expected 5 rows, got %d", len(resp.Table.Rows))
			}
		}()
	}
	wg.Wait()

	if got := m.Calls.Load(); got != workers {
		t.Errorf("expected %d fetches, got %d", workers, got)
	}
}

func TestSubmit_TableAndChartAgree(t *testing.T) {
	c := newController(&collector.MockFetcher{Price: 100}, nil)
	resp := c.Submit(context.Background(), weekRequest("AAPL"))
	for i, row := range resp.Table.Rows {
		if row["Date"] != resp.Chart.Candlestick.X[i].String() {
			t.Errorf("row %d: table date %v, chart date %s", i, row["Date"], resp.Chart.Candlestick.X[i])
		}
	}
}

func TestSubmit_InvalidSymbolFetchError(t *testing.T) {
	m := &collector.MockFetcher{Err: fmt.Errorf("%w: yahoo: No data found", collector.ErrSymbolNotFound)}
	rec := &memRecorder{}
	c := newController(m, rec)

	resp := c.Submit(context.Background(), weekRequest("ZZZZ_INVALID"))
	if !resp.Outcome.Failed() {
		t.Fatalf("expected fetch_error, got %+v", resp.Outcome)
	}
	if !strings.HasPrefix(resp.Message, "Failed to fetch ZZZZ_INVALID: ") {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if len(resp.Table.Rows) != 0 || len(resp.Chart.Candlestick.X) != 0 || len(resp.Chart.Line.X) != 0 {
		t.Error("expected empty views on failure")
	}
	if resp.Chart.Layout.Title != "ZZZZ_INVALID Candlestick chart" {
		t.Errorf("failure must keep fixed layout, got %q", resp.Chart.Layout.Title)
	}
	if len(rec.subs) != 1 || rec.subs[0].Outcome != "fetch_error" || rec.subs[0].Error == "" {
		t.Errorf("unexpected recorded submission %+v", rec.subs)
	}
}

func TestSubmit_EmptyResult(t *testing.T) {
	c := newController(&collector.MockFetcher{Rows: []collector.RawRow{}}, nil)
	resp := c.Submit(context.Background(), weekRequest("ZZZZ_INVALID"))
	if resp.Outcome.Status != model.OutcomeEmpty {
		t.Fatalf("expected empty outcome, got %+v", resp.Outcome)
	}
	if resp.Message != "No data for ZZZZ_INVALID between 2021-01-01 and 2021-01-08" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if len(resp.Table.Rows) != 0 || len(resp.Chart.Candlestick.X) != 0 {
		t.Error("expected empty views")
	}
}

func TestSubmit_RecorderFailureIsNotSurfaced(t *testing.T) {
	c := newController(&collector.MockFetcher{Price: 10}, &memRecorder{err: errors.New("disk full")})
	resp := c.Submit(context.Background(), weekRequest("AAPL"))
	if resp.Outcome.Status != model.OutcomeOK {
		t.Errorf("recorder failure leaked into outcome: %+v", resp.Outcome)
	}
}

func TestSubmit_IdempotentViews(t *testing.T) {
	c := newController(&collector.MockFetcher{Price: 3700}, nil)
	a := c.Submit(context.Background(), weekRequest("^GSPC"))
	b := c.Submit(context.Background(), weekRequest("^GSPC"))
	for _, pair := range [][2]any{{a.Table, b.Table}, {a.Chart, b.Chart}} {
		x, _ := json.Marshal(pair[0])
		y, _ := json.Marshal(pair[1])
		if string(x) != string(y) {
			t.Errorf("views differ between identical submits:\n%s\n%s", x, y)
		}
	}
}

func TestHistory_DefaultLimit(t *testing.T) {
	rec := &memRecorder{}
	c := newController(&collector.MockFetcher{Price: 1}, rec)
	for i := 0; i < 3; i++ {
		c.Submit(context.Background(), weekRequest("AAPL"))
	}
	got, err := c.History(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 entries, got %d", len(got))
	}
}
