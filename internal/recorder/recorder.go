package recorder

import "time"

// Submission is one handled submit, kept for the history view.
type Submission struct {
	RequestID  string        `json:"request_id"`
	Timestamp  time.Time     `json:"timestamp"`
	Symbol     string        `json:"symbol"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Outcome    string        `json:"outcome"`
	Rows       int           `json:"rows"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// Recorder persists submit history.
type Recorder interface {
	RecordSubmit(s *Submission) error
	Recent(limit int) ([]Submission, error)
	Prune(before time.Time) (int64, error)
	Close() error
}
