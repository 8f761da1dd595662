// Package numerator provides day-scoped transaction code generation.
//
// Codes follow the pattern PREFIX-YYYYMMDD-NNNN (e.g. IN-20240115-0007).
// The sequence number is NOT a reserved counter: it is the count of
// same-kind transactions already recorded for that calendar day, plus one.
// Callers must compute the count and insert the new row inside the same
// serializable transaction, otherwise two concurrent transactions on the
// same day can collide on a sequence number.
package numerator

import (
	"fmt"
	"time"
)

// PadWidth is the zero-pad width of the sequence suffix.
const PadWidth = 4

// StartOfDay truncates t to midnight local time.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayRange returns the half-open interval [dayStart, dayStart+24h) covering t.
func DayRange(t time.Time) (from, to time.Time) {
	from = StartOfDay(t)
	return from, from.AddDate(0, 0, 1)
}

// Format builds the transaction code for the given prefix, day and sequence.
func Format(prefix string, day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%0*d", prefix, day.Format("20060102"), PadWidth, seq)
}
