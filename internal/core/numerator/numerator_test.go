package numerator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	assert.Equal(t, "IN-20240115-0007", Format("IN", day, 7))
	assert.Equal(t, "PROD-20240115-0001", Format("PROD", day, 1))
	assert.Equal(t, "OUT-20240115-12345", Format("OUT", day, 12345))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 1, 17, 42, 9, 123, time.Local)

	day := StartOfDay(ts)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), day)
}

func TestDayRange(t *testing.T) {
	ts := time.Date(2024, 3, 1, 17, 42, 9, 0, time.Local)

	from, to := DayRange(ts)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), from)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local), to)
	assert.True(t, ts.After(from) && ts.Before(to))
}
