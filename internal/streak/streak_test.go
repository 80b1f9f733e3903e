package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestAdvanceFirstLogin(t *testing.T) {
	res := Advance(nil, 0, "2024-05-01")

	assert.Equal(t, 1, res.NewStreak)
	assert.False(t, res.RolloverNeeded)
	assert.Equal(t, "2024-05-01", res.NewLastLoginKey)
}

func TestAdvanceSameDayIsNoOp(t *testing.T) {
	res := Advance(strPtr("2024-05-01"), 4, "2024-05-01")

	assert.Equal(t, 4, res.NewStreak)
	assert.False(t, res.RolloverNeeded)
	assert.Equal(t, "2024-05-01", res.NewLastLoginKey)

	// Re-running the same-day case keeps yielding the same state.
	again := Advance(strPtr(res.NewLastLoginKey), res.NewStreak, "2024-05-01")
	assert.Equal(t, res, again)
}

func TestAdvanceConsecutiveDay(t *testing.T) {
	// Scenario A: streak 4 on 05-01, login on 05-02.
	res := Advance(strPtr("2024-05-01"), 4, "2024-05-02")

	assert.Equal(t, 5, res.NewStreak)
	assert.True(t, res.RolloverNeeded)
	assert.Equal(t, "2024-05-02", res.NewLastLoginKey)
}

func TestAdvanceGapResets(t *testing.T) {
	// Scenario B: 3-day gap.
	res := Advance(strPtr("2024-05-01"), 4, "2024-05-05")

	assert.Equal(t, 1, res.NewStreak)
	assert.True(t, res.RolloverNeeded, "rollover still closes out the last active day")
	assert.Equal(t, "2024-05-05", res.NewLastLoginKey)
}

func TestAdvanceClockSkewResets(t *testing.T) {
	// Last login is in the future relative to today: client clock skew.
	res := Advance(strPtr("2024-05-10"), 7, "2024-05-08")

	assert.Equal(t, 1, res.NewStreak)
	assert.True(t, res.RolloverNeeded)
	assert.Equal(t, "2024-05-08", res.NewLastLoginKey)
}

func TestAdvanceMalformedKeyTreatedAsGap(t *testing.T) {
	res := Advance(strPtr("not a date"), 9, "2024-05-08")

	assert.Equal(t, 1, res.NewStreak)
	assert.True(t, res.RolloverNeeded)
	assert.Equal(t, "2024-05-08", res.NewLastLoginKey)
}

func TestAdvanceEmptyKeyCountsAsFirstLogin(t *testing.T) {
	res := Advance(strPtr(""), 3, "2024-05-08")

	assert.Equal(t, 1, res.NewStreak)
	assert.False(t, res.RolloverNeeded)
}

func TestStreakMonotonicity(t *testing.T) {
	// Consecutive-day logins increase the streak by exactly 1 each day.
	last := "2024-05-01"
	streak := 1

	days := []string{"2024-05-02", "2024-05-03", "2024-05-04", "2024-05-05"}
	for i, day := range days {
		res := Advance(&last, streak, day)
		assert.Equal(t, streak+1, res.NewStreak)
		assert.True(t, res.RolloverNeeded)
		last = res.NewLastLoginKey
		streak = res.NewStreak
		assert.Equal(t, i+2, streak)
	}
}
