//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"coach-booking-api/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	return loc
}

func TestRuleCovers(t *testing.T) {
	loc := mustLocation(t)
	// Monday 09:00-12:00
	rule := schedule.Rule{Weekday: time.Monday, Start: 9 * 60, End: 12 * 60, Active: true}

	monday := func(hour, minute int) time.Time {
		return time.Date(2025, 1, 6, hour, minute, 0, 0, loc)
	}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "start of window", at: monday(9, 0), want: true},
		{name: "mid window", at: monday(10, 30), want: true},
		{name: "last covered start", at: monday(11, 30), want: true},
		{name: "end is exclusive", at: monday(12, 0), want: false},
		{name: "before window", at: monday(8, 30), want: false},
		{name: "wrong weekday", at: time.Date(2025, 1, 7, 10, 0, 0, 0, loc), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rule.Covers(tc.at))
		})
	}

	t.Run("inactive rule covers nothing", func(t *testing.T) {
		inactive := rule
		inactive.Active = false
		assert.False(t, inactive.Covers(monday(10, 0)))
	})
}

func TestCandidates(t *testing.T) {
	loc := mustLocation(t)
	rules := []schedule.Rule{
		{Weekday: time.Monday, Start: 9 * 60, End: 12 * 60, Active: true},
	}

	t.Run("a three hour window yields six half-hour starts", func(t *testing.T) {
		from := time.Date(2025, 1, 6, 0, 0, 0, 0, loc)
		to := from

		slots := schedule.Candidates(from, to, rules, schedule.BlockedDates{}, 30*time.Minute, loc)

		require.Len(t, slots, 6)
		assert.Equal(t, time.Date(2025, 1, 6, 9, 0, 0, 0, loc), slots[0])
		assert.Equal(t, time.Date(2025, 1, 6, 11, 30, 0, 0, loc), slots[5])
	})

	t.Run("blocked date removes the whole day", func(t *testing.T) {
		from := time.Date(2025, 1, 6, 0, 0, 0, 0, loc)
		blocked := schedule.NewBlockedDates([]time.Time{from})

		slots := schedule.Candidates(from, from, rules, blocked, 30*time.Minute, loc)

		assert.Empty(t, slots)
	})

	t.Run("multi-day range only yields covered weekdays", func(t *testing.T) {
		from := time.Date(2025, 1, 6, 0, 0, 0, 0, loc) // Monday
		to := time.Date(2025, 1, 12, 0, 0, 0, 0, loc)  // Sunday

		slots := schedule.Candidates(from, to, rules, schedule.BlockedDates{}, 30*time.Minute, loc)

		require.Len(t, slots, 6)
		for _, s := range slots {
			assert.Equal(t, time.Monday, s.Weekday())
		}
	})

	t.Run("reversed range yields nothing", func(t *testing.T) {
		from := time.Date(2025, 1, 6, 0, 0, 0, 0, loc)
		to := from.AddDate(0, 0, -1)

		assert.Empty(t, schedule.Candidates(from, to, rules, schedule.BlockedDates{}, 30*time.Minute, loc))
	})
}

func TestRuleValidate(t *testing.T) {
	assert.NoError(t, schedule.Rule{Weekday: time.Monday, Start: 540, End: 720}.Validate())
	assert.ErrorIs(t, schedule.Rule{Weekday: time.Monday, Start: 720, End: 720}.Validate(), schedule.ErrInvalidRule)
	assert.ErrorIs(t, schedule.Rule{Weekday: time.Monday, Start: 720, End: 540}.Validate(), schedule.ErrInvalidRule)
}

func TestCoveredByAny(t *testing.T) {
	loc := mustLocation(t)
	rules := []schedule.Rule{
		{Weekday: time.Monday, Start: 9 * 60, End: 12 * 60, Active: true},
		{Weekday: time.Wednesday, Start: 14 * 60, End: 17 * 60, Active: true},
	}

	assert.True(t, schedule.CoveredByAny(rules, time.Date(2025, 1, 8, 15, 0, 0, 0, loc)))
	assert.False(t, schedule.CoveredByAny(rules, time.Date(2025, 1, 8, 12, 0, 0, 0, loc)))
	assert.False(t, schedule.CoveredByAny(nil, time.Date(2025, 1, 8, 15, 0, 0, 0, loc)))
}
