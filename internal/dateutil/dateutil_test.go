package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC on May 1st is already May 2nd in Berlin.
	instant := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-05-01", DateKey(instant, time.UTC))
	assert.Equal(t, "2024-05-02", DateKey(instant, berlin))
	assert.Equal(t, "2024-05-01", DateKey(instant, nil), "nil location falls back to UTC")
}

func TestDateKeyZeroPadded(t *testing.T) {
	instant := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-05", DateKey(instant, time.UTC))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
		ok   bool
	}{
		{"same day", "2024-05-01", "2024-05-01", 0, true},
		{"consecutive", "2024-05-01", "2024-05-02", 1, true},
		{"gap", "2024-05-01", "2024-05-05", 4, true},
		{"negative", "2024-05-05", "2024-05-01", -4, true},
		{"across month", "2024-04-30", "2024-05-01", 1, true},
		{"across year", "2023-12-31", "2024-01-01", 1, true},
		{"leap day", "2024-02-28", "2024-03-01", 2, true},
		{"malformed a", "yesterday", "2024-05-01", 0, false},
		{"malformed b", "2024-05-01", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DaysBetween(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekWindow(t *testing.T) {
	// 2024-05-01 is a Wednesday; the ISO week runs Mon 04-29 .. Sun 05-05.
	start, end, ok := WeekWindow("2024-05-01")
	require.True(t, ok)
	assert.Equal(t, "2024-04-29", start)
	assert.Equal(t, "2024-05-05", end)

	// A Monday starts its own week.
	start, end, ok = WeekWindow("2024-04-29")
	require.True(t, ok)
	assert.Equal(t, "2024-04-29", start)
	assert.Equal(t, "2024-05-05", end)

	// A Sunday ends it.
	start, end, ok = WeekWindow("2024-05-05")
	require.True(t, ok)
	assert.Equal(t, "2024-04-29", start)
	assert.Equal(t, "2024-05-05", end)
}

func TestMonthWindow(t *testing.T) {
	start, end, ok := MonthWindow("2024-02-15")
	require.True(t, ok)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end, "2024 is a leap year")

	start, end, ok = MonthWindow("2023-02-01")
	require.True(t, ok)
	assert.Equal(t, "2023-02-01", start)
	assert.Equal(t, "2023-02-28", end)

	_, _, ok = MonthWindow("not-a-key")
	assert.False(t, ok)
}

func TestAddDays(t *testing.T) {
	got, ok := AddDays("2024-05-01", -1)
	require.True(t, ok)
	assert.Equal(t, "2024-04-30", got)

	_, ok = AddDays("bogus", 1)
	assert.False(t, ok)
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange("2024-05-01", "2024-05-01", "2024-05-31"))
	assert.True(t, InRange("2024-05-31", "2024-05-01", "2024-05-31"))
	assert.False(t, InRange("2024-04-30", "2024-05-01", "2024-05-31"))
	assert.False(t, InRange("2024-06-01", "2024-05-01", "2024-05-31"))
}
