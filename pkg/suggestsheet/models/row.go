// Package models defines data structures for keyword suggestion runs.
package models

// KeywordRow represents a single keyword row of the weekday sheet.
type KeywordRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// Keyword is the text of column 1. Empty means the row is skipped.
	Keyword string `json:"keyword"`
}

// Empty reports whether the row has no keyword to process.
func (r KeywordRow) Empty() bool {
	return r.Keyword == ""
}
