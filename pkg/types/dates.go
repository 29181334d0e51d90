package types

import (
	"fmt"
	"time"
)

// DateLayout is the storage form of every date column.
const DateLayout = "2006-01-02"

// ParseDate parses s as YYYY-MM-DD. Anything else, including the empty
// string and trailing characters, returns ErrBadDate.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil || len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: '%s' is not a valid date-formatted string", ErrBadDate, s)
	}
	return d, nil
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}
