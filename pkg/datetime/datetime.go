// Package datetime provides date utility functions for labeling ledger months.
package datetime

import (
	"time"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/constants"
)

// DateTimeLayout is the format expected for start dates and is also the output
// date label format.
const DateTimeLayout = constants.DateTimeLayout

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// MonthLabel maps a 1-indexed simulation month onto a calendar label relative
// to the given start date. Month 1 is the start date itself.
func MonthLabel(startDate string, month int) (string, error) {
	return OffsetDate(startDate, DateTimeLayout, month-1)
}

// ValidateDate reports whether a date string matches the expected layout.
func ValidateDate(date string) error {
	_, err := time.Parse(DateTimeLayout, date)
	return err
}
