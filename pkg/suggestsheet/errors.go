package suggestsheet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/suggestsheet-go/pkg/suggestsheet/sheet"
)

// ErrFileNotFound indicates the workbook does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrSheetNotFound indicates the workbook has no sheet for today's weekday.
var ErrSheetNotFound = sheet.ErrNotFound

// Stage names the part of a run that failed.
type Stage string

const (
	StageInit    Stage = "init"
	StageIterate Stage = "iterate"
	StagePersist Stage = "persist"
)

// RunError represents a fatal error that ended a run.
type RunError struct {
	Stage Stage
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run failed during %s: %v", e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// NewRunError creates a new RunError.
func NewRunError(stage Stage, err error) *RunError {
	return &RunError{
		Stage: stage,
		Err:   err,
	}
}
