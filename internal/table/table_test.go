package table

import (
	"encoding/json"
	"testing"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

func weekSeries() model.PriceSeries {
	s := model.PriceSeries{
		Symbol: "^GSPC",
		Start:  model.MustParseDate("2021-01-01"),
		End:    model.MustParseDate("2021-01-08"),
	}
	for i, d := range []string{"2021-01-04", "2021-01-05", "2021-01-06", "2021-01-07", "2021-01-08"} {
		p := decimal.NewFromInt(int64(3700 + i*10))
		s.Bars = append(s.Bars, model.PriceBar{
			Date:  model.MustParseDate(d),
			Open:  p,
			High:  p.Add(decimal.NewFromInt(20)),
			Low:   p.Sub(decimal.NewFromInt(20)),
			Close: p.Add(decimal.NewFromInt(5)),
		})
	}
	return s
}

func TestProject_Columns(t *testing.T) {
	v := Project(weekSeries())
	want := []string{"Date", "Open", "High", "Low", "Close"}
	if len(v.Columns) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(v.Columns))
	}
	for i, c := range v.Columns {
		if c.ID != want[i] || c.Name != want[i] {
			t.Errorf("column %d: expected id=name=%s, got %+v", i, want[i], c)
		}
	}
}

func TestProject_RowsPreserveOrder(t *testing.T) {
	s := weekSeries()
	v := Project(s)
	if len(v.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(v.Rows))
	}
	for i, r := range v.Rows {
		if r[FieldDate] != s.Bars[i].Date.String() {
			t.Errorf("row %d: expected date %s, got %v", i, s.Bars[i].Date, r[FieldDate])
		}
		if len(r) != len(Fields) {
			t.Errorf("row %d: expected %d keys, got %d", i, len(Fields), len(r))
		}
		if c, ok := r[FieldClose].(decimal.Decimal); !ok || !c.Equal(s.Bars[i].Close) {
			t.Errorf("row %d: close not copied verbatim: %v", i, r[FieldClose])
		}
	}
}

func TestProject_Empty(t *testing.T) {
	v := Project(model.PriceSeries{Symbol: "ZZZZ_INVALID"})
	if len(v.Rows) != 0 || len(v.Columns) != 5 {
		t.Errorf("expected 0 rows and 5 columns, got %d/%d", len(v.Rows), len(v.Columns))
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"columns":[{"id":"Date","name":"Date"},{"id":"Open","name":"Open"},{"id":"High","name":"High"},{"id":"Low","name":"Low"},{"id":"Close","name":"Close"}],"rows":[]}` {
		t.Errorf("unexpected encoding %s", b)
	}
}

func TestProject_Idempotent(t *testing.T) {
	a, _ := json.Marshal(Project(weekSeries()))
	b, _ := json.Marshal(Project(weekSeries()))
	if string(a) != string(b) {
		t.Errorf("projection not idempotent:\n%s\n%s", a, b)
	}
}
