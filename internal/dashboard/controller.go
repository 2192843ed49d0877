// Package dashboard holds the view controller: the tab-switch and submit
// reactions of the dashboard page.
package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockDashboard/internal/calculator"
	"StockDashboard/internal/chart"
	"StockDashboard/internal/collector"
	"StockDashboard/internal/model"
	"StockDashboard/internal/recorder"
	"StockDashboard/internal/table"

	"github.com/google/uuid"
)

// Defaults seed the input surface of the page.
type Defaults struct {
	Symbol      string     `json:"symbol"`
	Start       model.Date `json:"start"`
	End         model.Date `json:"end"`
	RangeSlider bool       `json:"range_slider"`
	Tab         Tab        `json:"tab"`
}

// SubmitRequest carries the held input fields at the time of a submit.
type SubmitRequest struct {
	Symbol      string     `json:"symbol"`
	Start       model.Date `json:"start"`
	End         model.Date `json:"end"`
	RangeSlider bool       `json:"range_slider"`
}

// SubmitResponse carries both views, built from the same series.
type SubmitResponse struct {
	RequestID string             `json:"request_id"`
	Symbol    string             `json:"symbol"`
	Start     model.Date         `json:"start"`
	End       model.Date         `json:"end"`
	Outcome   model.Outcome      `json:"outcome"`
	Message   string             `json:"message"`
	Table     model.TableView    `json:"table"`
	Chart     model.ChartSpec    `json:"chart"`
	Summary   calculator.Summary `json:"summary"`
}

// Controller is the application object handed to the transport layer.
type Controller struct {
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Defaults  Defaults

	now func() time.Time
}

// NewController creates a Controller. A nil recorder records nothing.
func NewController(col *collector.Collector, rec recorder.Recorder, defaults Defaults) *Controller {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Controller{
		Collector: col,
		Recorder:  rec,
		Defaults:  defaults,
		now:       time.Now,
	}
}

// Series fetches and normalizes one request without building views.
func (c *Controller) Series(ctx context.Context, symbol string, start, end model.Date) (model.PriceSeries, model.Outcome) {
	return c.Collector.Collect(ctx, symbol, start, end)
}

// Submit runs one fetch and projects the resulting series into the table and
// the chart. A failed fetch yields empty views and an explanatory message.
func (c *Controller) Submit(ctx context.Context, req SubmitRequest) *SubmitResponse {
	started := c.now()
	series, outcome := c.Collector.Collect(ctx, req.Symbol, req.Start, req.End)

	resp := &SubmitResponse{
		RequestID: uuid.NewString(),
		Symbol:    req.Symbol,
		Start:     req.Start,
		End:       req.End,
		Outcome:   outcome,
		Message:   statusMessage(req, outcome),
		Table:     table.Project(series),
		Chart:     chart.Build(series, req.Symbol, req.RangeSlider),
		Summary:   calculator.Summarize(series),
	}

	elapsed := c.now().Sub(started)
	log.Printf("[INFO] submit %s symbol=%q range=%s..%s outcome=%s rows=%d took=%v",
		resp.RequestID, req.Symbol, req.Start, req.End, outcome.Status, series.Len(), elapsed.Round(time.Millisecond))

	if err := c.Recorder.RecordSubmit(&recorder.Submission{
		RequestID: resp.RequestID,
		Timestamp: started,
		Symbol:    req.Symbol,
		StartDate: req.Start.String(),
		EndDate:   req.End.String(),
		Outcome:   string(outcome.Status),
		Rows:      series.Len(),
		Error:     outcome.Reason,
		Duration:  elapsed,
	}); err != nil {
		log.Printf("[ERROR] record submit %s: %v", resp.RequestID, err)
	}
	return resp
}

func statusMessage(req SubmitRequest, o model.Outcome) string {
	switch o.Status {
	case model.OutcomeEmpty:
		return fmt.Sprintf("No data for %s between %s and %s", req.Symbol, req.Start, req.End)
	case model.OutcomeFetchError:
		return fmt.Sprintf("Failed to fetch %s: %s", req.Symbol, o.Reason)
	default:
		return ""
	}
}

// History returns the most recent submits.
func (c *Controller) History(limit int) ([]recorder.Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	return c.Recorder.Recent(limit)
}
