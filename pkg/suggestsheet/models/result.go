package models

import "time"

// Outcome classifies how a run ended.
type Outcome string

const (
	// OutcomeSuccess means every keyword row was fetched and written.
	OutcomeSuccess Outcome = "success"
	// OutcomePartialFailure means the document was saved but one or more fetches failed.
	OutcomePartialFailure Outcome = "partial_failure"
	// OutcomeSetupFailure means the run aborted before any row was processed.
	OutcomeSetupFailure Outcome = "setup_failure"
	// OutcomeAborted means row processing stopped early; the document was not saved.
	OutcomeAborted Outcome = "aborted"
	// OutcomePersistFailure means rows were processed but the document could not be saved.
	OutcomePersistFailure Outcome = "persist_failure"
)

// Failed reports whether the outcome is fatal for the run.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeSetupFailure, OutcomeAborted, OutcomePersistFailure:
		return true
	}
	return false
}

// RowResult is the per-row record of a run.
type RowResult struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// Keyword is the input keyword.
	Keyword string `json:"keyword"`
	// Suggestions holds the fetched suggestion texts in presentation order.
	Suggestions []string `json:"suggestions,omitempty"`
	// Longest and Shortest are empty when no suggestion was found.
	Longest  string `json:"longest,omitempty"`
	Shortest string `json:"shortest,omitempty"`
	// Skipped is set for rows without a keyword.
	Skipped bool `json:"skipped,omitempty"`
	// Err is the recoverable fetch error for this row, if any.
	Err error `json:"-"`
}

// RunResult represents the outcome of one workflow run.
type RunResult struct {
	RunID     string      `json:"run_id"`
	Weekday   string      `json:"weekday"`
	SheetName string      `json:"sheet_name,omitempty"`
	BookPath  string      `json:"book_path"`
	Started   time.Time   `json:"started"`
	Finished  time.Time   `json:"finished"`
	Outcome   Outcome     `json:"outcome"`
	Rows      []RowResult `json:"rows,omitempty"`
	Err       error       `json:"-"`
}

// Counts returns the number of processed, skipped and failed rows.
func (r *RunResult) Counts() (processed, skipped, failed int) {
	for _, row := range r.Rows {
		switch {
		case row.Skipped:
			skipped++
		case row.Err != nil:
			failed++
			processed++
		default:
			processed++
		}
	}
	return processed, skipped, failed
}
