package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	ts := time.Date(2021, 1, 4, 9, 30, 0, 0, ny)
	if got := DateOf(ts).String(); got != "2021-01-04" {
		t.Errorf("expected 2021-01-04, got %s", got)
	}
	// Same instant in UTC falls on the same day; late evening does not.
	late := time.Date(2021, 1, 4, 22, 0, 0, 0, ny)
	if got := DateOf(late.UTC()).String(); got != "2021-01-05" {
		t.Errorf("expected 2021-01-05 in UTC, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2021-01-01", "2021-01-01", false},
		{"2021-02-28", "2021-02-28", false},
		{"2021-02-30", "", true},
		{"01/02/2021", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if d.String() != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.in, tt.want, d)
		}
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := MustParseDate("2021-02-28")
	if got := d.AddDays(1).String(); got != "2021-03-01" {
		t.Errorf("expected 2021-03-01, got %s", got)
	}
	if !d.Before(d.AddDays(1)) || !d.AddDays(1).After(d) {
		t.Error("ordering broken")
	}
	if !(Date{}).IsZero() || d.IsZero() {
		t.Error("IsZero broken")
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(MustParseDate("2021-01-08"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2021-01-08"` {
		t.Fatalf("unexpected encoding %s", b)
	}
	var d Date
	if err := json.Unmarshal(b, &d); err != nil {
		t.Fatal(err)
	}
	if d != MustParseDate("2021-01-08") {
		t.Errorf("round trip mismatch: %s", d)
	}
	if err := json.Unmarshal([]byte(`20210108`), &d); err == nil {
		t.Error("expected error for numeric date")
	}
}

func TestChartSpec_MarshalPlotlyFigure(t *testing.T) {
	x := []Date{MustParseDate("2021-01-04")}
	c := ChartSpec{
		Candlestick: CandlestickTrace{
			X:     x,
			Open:  []decimal.Decimal{decimal.RequireFromString("3764.61")},
			High:  []decimal.Decimal{decimal.RequireFromString("3769.99")},
			Low:   []decimal.Decimal{decimal.RequireFromString("3662.71")},
			Close: []decimal.Decimal{decimal.RequireFromString("3700.65")},
		},
		Line:   LineTrace{X: x, Y: []decimal.Decimal{decimal.RequireFromString("3700.65")}},
		Layout: Layout{Title: "^GSPC Candlestick chart", Height: 800, RangeSliderVisible: true},
	}
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	var fig struct {
		Data []struct {
			Type string   `json:"type"`
			X    []string `json:"x"`
		} `json:"data"`
		Layout struct {
			Title  struct{ Text string } `json:"title"`
			Height int                   `json:"height"`
			XAxis  struct {
				RangeSlider struct{ Visible bool } `json:"rangeslider"`
			} `json:"xaxis"`
		} `json:"layout"`
	}
	if err := json.Unmarshal(b, &fig); err != nil {
		t.Fatal(err)
	}
	if len(fig.Data) != 2 || fig.Data[0].Type != "candlestick" || fig.Data[1].Type != "scatter" {
		t.Fatalf("unexpected traces: %+v", fig.Data)
	}
	if fig.Data[0].X[0] != "2021-01-04" || fig.Data[1].X[0] != "2021-01-04" {
		t.Errorf("unexpected x values: %+v", fig.Data)
	}
	if fig.Layout.Title.Text != "^GSPC Candlestick chart" || fig.Layout.Height != 800 {
		t.Errorf("unexpected layout: %+v", fig.Layout)
	}
	if !fig.Layout.XAxis.RangeSlider.Visible {
		t.Error("expected visible range slider")
	}
}

func TestChartSpec_MarshalEmptyKeepsXArrays(t *testing.T) {
	b, err := json.Marshal(ChartSpec{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), `"x":null`) {
		t.Errorf("empty chart must encode x as [], got %s", b)
	}
}
