package model

// OutcomeStatus classifies the result of one fetch.
type OutcomeStatus string

const (
	OutcomeOK         OutcomeStatus = "ok"
	OutcomeEmpty      OutcomeStatus = "empty"
	OutcomeFetchError OutcomeStatus = "fetch_error"
)

// Outcome is the tagged result of fetching and normalizing one request.
// Reason is set only for OutcomeFetchError.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`
}

// Failed reports whether the provider call itself failed.
func (o Outcome) Failed() bool { return o.Status == OutcomeFetchError }
