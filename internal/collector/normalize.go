package collector

import "StockDashboard/internal/model"

// Normalize keeps the date and the four prices of every provider row, in
// provider order. A nil or empty response yields an empty series.
func Normalize(req FetchRequest, resp *RawResponse) model.PriceSeries {
	series := model.PriceSeries{
		Symbol: req.Symbol,
		Start:  req.Start,
		End:    req.End,
		Bars:   []model.PriceBar{},
	}
	if resp == nil {
		return series
	}
	series.Bars = make([]model.PriceBar, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		series.Bars = append(series.Bars, model.PriceBar{
			Date:  model.DateOf(r.Timestamp),
			Open:  r.Open,
			High:  r.High,
			Low:   r.Low,
			Close: r.Close,
		})
	}
	return series
}
