package sheet

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrNotFound indicates the workbook has no sheet named for the weekday.
var ErrNotFound = errors.New("weekday sheet not found")

// Select returns the name of the sheet matching the weekday of now
// ("Monday" ... "Sunday"). The name must match exactly.
func Select(f *excelize.File, now time.Time) (string, error) {
	name := now.Weekday().String()
	if !slices.Contains(f.GetSheetList(), name) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return name, nil
}
